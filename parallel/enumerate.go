package parallel

import (
	"iter"
	"math"

	"github.com/kbukum/pariter/errors"
	"github.com/kbukum/pariter/producer"
)

// Pair is an item tagged with its absolute position in the sequence.
type Pair[T any] struct {
	Index int
	Value T
}

// Enumerate pairs every item of base with its position, starting at 0.
//
// For every split pattern the pairs produced across all leaves are exactly
// {(i, item_i) : 0 <= i < base.Len()}.
func Enumerate[T any](base Iterator[T]) Iterator[Pair[T]] {
	return enumerateIter[T]{base: base}
}

type enumerateIter[T any] struct {
	base Iterator[T]
}

func (e enumerateIter[T]) Len() int { return e.base.Len() }

func (e enumerateIter[T]) WithProducer(cb Callback[Pair[T]]) {
	e.base.WithProducer(func(p producer.Producer[T]) {
		cb(newEnumerateProducer(p, 0))
	})
}

// enumerateProducer tags the items of base starting at offset, the absolute
// position of base's first item.
type enumerateProducer[T any] struct {
	base   producer.Producer[T]
	offset int
}

func newEnumerateProducer[T any](base producer.Producer[T], offset int) enumerateProducer[T] {
	if offset > math.MaxInt-base.Len() {
		panic(errors.IndexOverflow(offset, base.Len()))
	}
	return enumerateProducer[T]{base: base, offset: offset}
}

func (p enumerateProducer[T]) Len() int { return p.base.Len() }

func (p enumerateProducer[T]) Cost(n int) float64 { return p.base.Cost(n) }

func (p enumerateProducer[T]) Weighted() bool { return p.base.Weighted() }

func (p enumerateProducer[T]) SplitAt(index int) (producer.Producer[Pair[T]], producer.Producer[Pair[T]]) {
	producer.CheckSplit(index, p.Len())
	left, right := p.base.SplitAt(index)
	return newEnumerateProducer(left, p.offset), newEnumerateProducer(right, p.offset+index)
}

func (p enumerateProducer[T]) Seq() iter.Seq[Pair[T]] {
	offset, length := p.offset, p.base.Len()
	items := p.base.Seq()
	return func(yield func(Pair[T]) bool) {
		pos := offset
		exhausted := false
		for v := range items {
			// Only reachable when base yields more than Len() items.
			if exhausted {
				panic(errors.IndexOverflow(offset, length))
			}
			if !yield(Pair[T]{Index: pos, Value: v}) {
				return
			}
			if pos == math.MaxInt {
				exhausted = true
			} else {
				pos++
			}
		}
	}
}
