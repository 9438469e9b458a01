package parallel

import "github.com/kbukum/pariter/producer"

// Iterator is an indexed sequence of exactly Len() items.
type Iterator[T any] interface {
	// Len returns the exact number of items.
	Len() int
	// WithProducer builds the producer for the whole sequence and passes it
	// to cb exactly once, before returning.
	WithProducer(cb Callback[T])
}

// Callback receives the producer built by Iterator.WithProducer. It owns
// the producer and may split or iterate it.
type Callback[T any] func(p producer.Producer[T])

// FromSlice returns an Iterator over items. items must not be mutated
// while the iterator is being driven.
func FromSlice[T any](items []T) Iterator[T] {
	return sliceIter[T]{items: items}
}

type sliceIter[T any] struct {
	items []T
}

func (s sliceIter[T]) Len() int { return len(s.items) }

func (s sliceIter[T]) WithProducer(cb Callback[T]) {
	cb(producer.Slice(s.items))
}

// Range returns an Iterator over [start, end). An end below start gives an
// empty iterator.
func Range(start, end int) Iterator[int] {
	n := producer.Range(start, end).Len()
	return rangeIter{start: start, end: start + n}
}

type rangeIter struct {
	start, end int
}

func (r rangeIter) Len() int { return r.end - r.start }

func (r rangeIter) WithProducer(cb Callback[int]) {
	cb(producer.Range(r.start, r.end))
}

// Empty returns an Iterator with no items.
func Empty[T any]() Iterator[T] {
	return sliceIter[T]{}
}

// Weighted attaches a uniform per-item cost to base, so the scheduler stops
// splitting once a slice costs no more than its CostThreshold. It panics if
// perItem is negative or NaN.
func Weighted[T any](base Iterator[T], perItem float64) Iterator[T] {
	producer.CheckWeight(perItem)
	return weightedIter[T]{base: base, perItem: perItem}
}

type weightedIter[T any] struct {
	base    Iterator[T]
	perItem float64
}

func (w weightedIter[T]) Len() int { return w.base.Len() }

func (w weightedIter[T]) WithProducer(cb Callback[T]) {
	w.base.WithProducer(func(p producer.Producer[T]) {
		cb(producer.Weighted(p, w.perItem))
	})
}
