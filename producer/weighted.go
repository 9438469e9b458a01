package producer

import (
	"fmt"
	"iter"
	"math"

	"github.com/kbukum/pariter/errors"
)

// Weighted wraps p with a uniform per-item cost. The result reports
// Weighted() == true and Cost(n) == n * perItem, which lets a scheduler skip
// splitting slices that are too cheap to be worth a fork.
func Weighted[T any](p Producer[T], perItem float64) Producer[T] {
	CheckWeight(perItem)
	return weightedProducer[T]{base: p, perItem: perItem}
}

// CheckWeight panics with CONTRACT_VIOLATION unless perItem is a
// non-negative number, so Cost stays non-decreasing in n.
func CheckWeight(perItem float64) {
	if math.IsNaN(perItem) || perItem < 0 {
		panic(errors.ContractViolation("weighted",
			fmt.Sprintf("per-item cost must be a non-negative number, got %v", perItem)))
	}
}

type weightedProducer[T any] struct {
	base    Producer[T]
	perItem float64
}

func (p weightedProducer[T]) Len() int { return p.base.Len() }

func (p weightedProducer[T]) Cost(n int) float64 { return float64(n) * p.perItem }

func (p weightedProducer[T]) Weighted() bool { return true }

func (p weightedProducer[T]) SplitAt(index int) (Producer[T], Producer[T]) {
	left, right := p.base.SplitAt(index)
	return weightedProducer[T]{base: left, perItem: p.perItem},
		weightedProducer[T]{base: right, perItem: p.perItem}
}

func (p weightedProducer[T]) Seq() iter.Seq[T] { return p.base.Seq() }
