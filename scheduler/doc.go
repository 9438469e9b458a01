// Package scheduler drives producers to completion with fork-join
// parallelism.
//
// A drive recursively halves the producer while the split budget lasts,
// runs the right half on another goroutine when a bulkhead slot is free,
// and folds each leaf sequentially with a Consumer. Leaf results are
// combined left-then-right, so the result matches a sequential fold.
//
//	s, err := scheduler.New(scheduler.Config{Workers: 8})
//	sum, err := scheduler.Drive(ctx, s, producer.Range(0, 1_000_000), scheduler.ConsumerFuncs[int, int]{
//	    ConsumeFunc: func(seq iter.Seq[int]) int { ... },
//	    CombineFunc: func(l, r int) int { return l + r },
//	})
//
// A panic inside a forked goroutine, including a split contract
// violation, is re-raised on the goroutine that called Drive once the
// sibling branch has joined.
package scheduler
