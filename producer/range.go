package producer

import (
	"iter"
	"math"

	"github.com/kbukum/pariter/errors"
)

// Range returns a Producer over the integers in [start, end). An end below
// start yields an empty producer. Ranges longer than math.MaxInt panic.
func Range(start, end int) Producer[int] {
	if end < start {
		end = start
	}
	if uint(end)-uint(start) > math.MaxInt {
		panic(errors.ContractViolation("range", "length exceeds the maximum index"))
	}
	return rangeProducer{start: start, end: end}
}

type rangeProducer struct {
	start, end int
}

func (p rangeProducer) Len() int { return p.end - p.start }

func (p rangeProducer) Cost(n int) float64 { return float64(n) }

func (p rangeProducer) Weighted() bool { return false }

func (p rangeProducer) SplitAt(index int) (Producer[int], Producer[int]) {
	CheckSplit(index, p.Len())
	mid := p.start + index
	return rangeProducer{start: p.start, end: mid}, rangeProducer{start: mid, end: p.end}
}

func (p rangeProducer) Seq() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := p.start; i < p.end; i++ {
			if !yield(i) {
				return
			}
		}
	}
}
