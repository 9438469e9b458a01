// Package parallel is the user-facing side of pariter: indexed sequences
// with a statically known length that can be driven to completion on the
// fork-join scheduler.
//
// An Iterator never exposes its producer type. Callers hand WithProducer a
// Callback and the iterator builds its producer chain and passes it in:
//
//	it := parallel.Enumerate(parallel.FromSlice([]string{"a", "b", "c"}))
//	pairs, err := parallel.Collect(ctx, it)
//	// pairs[1] == parallel.Pair[string]{Index: 1, Value: "b"}
//
// Enumerate tags every item with its absolute position. The position of an
// item does not depend on how the sequence was split or which goroutine
// consumed it.
package parallel
