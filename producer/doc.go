// Package producer defines the splittable work-unit protocol that parallel
// iteration is built on.
//
// A Producer owns a contiguous slice of an indexed sequence. A scheduler
// splits producers recursively with SplitAt until the pieces are small enough,
// then iterates each leaf sequentially with Seq. The two halves of a split
// never share mutable state, so they can run on different goroutines without
// synchronization.
//
// # Usage
//
//	p := producer.Slice([]string{"a", "b", "c", "d", "e"})
//	left, right := p.SplitAt(2)
//	producer.Drain(left)  // [a b]
//	producer.Drain(right) // [c d e]
//
// SplitAt and Seq consume their receiver: after either call the producer must
// not be used again.
package producer
