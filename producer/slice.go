package producer

import "iter"

// Slice returns a Producer over items. The slice must not be mutated while
// the producer or any of its splits is alive.
func Slice[T any](items []T) Producer[T] {
	return sliceProducer[T]{items: items}
}

type sliceProducer[T any] struct {
	items []T
}

func (p sliceProducer[T]) Len() int { return len(p.items) }

func (p sliceProducer[T]) Cost(n int) float64 { return float64(n) }

func (p sliceProducer[T]) Weighted() bool { return false }

func (p sliceProducer[T]) SplitAt(index int) (Producer[T], Producer[T]) {
	CheckSplit(index, len(p.items))
	// Full slice expressions cap the left half so an append on one side can
	// never write into the other.
	return sliceProducer[T]{items: p.items[:index:index]},
		sliceProducer[T]{items: p.items[index:]}
}

func (p sliceProducer[T]) Seq() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range p.items {
			if !yield(v) {
				return
			}
		}
	}
}
