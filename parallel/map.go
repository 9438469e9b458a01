package parallel

import (
	"iter"

	"github.com/kbukum/pariter/producer"
)

// Map applies fn to every item of base. fn may run concurrently on
// different items and must not depend on call order.
func Map[T, U any](base Iterator[T], fn func(T) U) Iterator[U] {
	return mapIter[T, U]{base: base, fn: fn}
}

type mapIter[T, U any] struct {
	base Iterator[T]
	fn   func(T) U
}

func (m mapIter[T, U]) Len() int { return m.base.Len() }

func (m mapIter[T, U]) WithProducer(cb Callback[U]) {
	m.base.WithProducer(func(p producer.Producer[T]) {
		cb(mapProducer[T, U]{base: p, fn: m.fn})
	})
}

type mapProducer[T, U any] struct {
	base producer.Producer[T]
	fn   func(T) U
}

func (p mapProducer[T, U]) Len() int { return p.base.Len() }

func (p mapProducer[T, U]) Cost(n int) float64 { return p.base.Cost(n) }

func (p mapProducer[T, U]) Weighted() bool { return p.base.Weighted() }

func (p mapProducer[T, U]) SplitAt(index int) (producer.Producer[U], producer.Producer[U]) {
	left, right := p.base.SplitAt(index)
	return mapProducer[T, U]{base: left, fn: p.fn}, mapProducer[T, U]{base: right, fn: p.fn}
}

func (p mapProducer[T, U]) Seq() iter.Seq[U] {
	items, fn := p.base.Seq(), p.fn
	return func(yield func(U) bool) {
		for v := range items {
			if !yield(fn(v)) {
				return
			}
		}
	}
}
