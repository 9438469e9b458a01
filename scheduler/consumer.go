package scheduler

import "iter"

// Consumer folds leaves into results and merges neighbouring results.
type Consumer[T, R any] interface {
	// Consume folds one leaf. It may run on any goroutine.
	Consume(seq iter.Seq[T]) R
	// Combine merges the result of a left slice with the result of the
	// slice immediately to its right.
	Combine(left, right R) R
}

// ConsumerFuncs adapts a pair of functions to Consumer.
type ConsumerFuncs[T, R any] struct {
	ConsumeFunc func(seq iter.Seq[T]) R
	CombineFunc func(left, right R) R
}

func (c ConsumerFuncs[T, R]) Consume(seq iter.Seq[T]) R { return c.ConsumeFunc(seq) }

func (c ConsumerFuncs[T, R]) Combine(left, right R) R { return c.CombineFunc(left, right) }
