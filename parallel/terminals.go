package parallel

import (
	"context"
	"iter"

	"github.com/kbukum/pariter/scheduler"
)

// Collect returns the items of it in order. Each leaf writes straight into
// its own positions of the result, found through Enumerate.
func Collect[T any](ctx context.Context, it Iterator[T], opts ...Option) ([]T, error) {
	out := make([]T, it.Len())
	_, err := Drive[Pair[T], struct{}](withOperation(ctx, "collect"), Enumerate(it), scheduler.ConsumerFuncs[Pair[T], struct{}]{
		ConsumeFunc: func(seq iter.Seq[Pair[T]]) struct{} {
			for p := range seq {
				out[p.Index] = p.Value
			}
			return struct{}{}
		},
		CombineFunc: func(struct{}, struct{}) struct{} { return struct{}{} },
	}, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Reduce folds it with op, which must be associative. identity is called
// once per leaf and must return a value that op treats as neutral.
func Reduce[T any](ctx context.Context, it Iterator[T], identity func() T, op func(a, b T) T, opts ...Option) (T, error) {
	return Drive[T, T](withOperation(ctx, "reduce"), it, scheduler.ConsumerFuncs[T, T]{
		ConsumeFunc: func(seq iter.Seq[T]) T {
			acc := identity()
			for v := range seq {
				acc = op(acc, v)
			}
			return acc
		},
		CombineFunc: op,
	}, opts...)
}

// Count returns how many items satisfy pred.
func Count[T any](ctx context.Context, it Iterator[T], pred func(T) bool, opts ...Option) (int, error) {
	return Drive[T, int](withOperation(ctx, "count"), it, scheduler.ConsumerFuncs[T, int]{
		ConsumeFunc: func(seq iter.Seq[T]) int {
			n := 0
			for v := range seq {
				if pred(v) {
					n++
				}
			}
			return n
		},
		CombineFunc: func(l, r int) int { return l + r },
	}, opts...)
}

// ForEach calls fn for every item. Calls may run concurrently and in any
// order.
func ForEach[T any](ctx context.Context, it Iterator[T], fn func(T), opts ...Option) error {
	_, err := Drive[T, struct{}](withOperation(ctx, "for_each"), it, scheduler.ConsumerFuncs[T, struct{}]{
		ConsumeFunc: func(seq iter.Seq[T]) struct{} {
			for v := range seq {
				fn(v)
			}
			return struct{}{}
		},
		CombineFunc: func(struct{}, struct{}) struct{} { return struct{}{} },
	}, opts...)
	return err
}
