// Package resilience bounds how much concurrent work a drive may start.
//
// A Bulkhead is a fixed pool of worker slots. The scheduler asks for a slot
// every time it forks: with a free slot the right half of a split runs on a
// new goroutine, without one the fork degrades to sequential execution on the
// calling goroutine. Either way the result is the same, only the degree of
// parallelism changes.
//
//	bh := resilience.NewBulkhead(resilience.BulkheadConfig{Name: "drive", MaxConcurrent: 4})
//	if bh.TryAcquire() {
//	    go func() {
//	        defer bh.Release()
//	        work()
//	    }()
//	} else {
//	    work()
//	}
package resilience
