package producer

import (
	"iter"

	"github.com/kbukum/pariter/errors"
)

// Producer is a splittable work unit bound to a contiguous slice of an
// indexed sequence. Adaptors implement it by wrapping another Producer.
type Producer[T any] interface {
	// Len returns the exact number of items remaining in this slice.
	Len() int
	// Cost estimates the relative cost of producing n items. It is
	// non-negative, non-decreasing in n, and only used for scheduling.
	Cost(n int) float64
	// Weighted reports whether Cost is meaningful. When false, callers
	// should assume a uniform per-item cost.
	Weighted() bool
	// SplitAt consumes the producer and returns the slices [0, index) and
	// [index, Len()). It panics if index is outside [0, Len()].
	SplitAt(index int) (Producer[T], Producer[T])
	// Seq consumes the producer and yields its items in original order.
	Seq() iter.Seq[T]
}

// CheckSplit panics with a CONTRACT_VIOLATION AppError unless
// 0 <= index <= length.
func CheckSplit(index, length int) {
	if index < 0 || index > length {
		panic(errors.SplitOutOfRange(index, length))
	}
}

// Drain consumes p and returns its items as a slice.
func Drain[T any](p Producer[T]) []T {
	out := make([]T, 0, p.Len())
	for v := range p.Seq() {
		out = append(out, v)
	}
	return out
}
