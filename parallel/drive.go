package parallel

import (
	"context"
	"fmt"

	"github.com/kbukum/pariter/errors"
	"github.com/kbukum/pariter/producer"
	"github.com/kbukum/pariter/scheduler"
)

// Option configures a drive.
type Option func(*driveOptions)

type driveOptions struct {
	scheduler *scheduler.Scheduler
}

// WithScheduler drives on s instead of scheduler.Default().
func WithScheduler(s *scheduler.Scheduler) Option {
	return func(o *driveOptions) {
		o.scheduler = s
	}
}

// Drive builds the producer of it and consumes it on the scheduler.
// It panics with CONTRACT_VIOLATION if it does not call the callback
// exactly once with a producer of length it.Len().
func Drive[T, R any](ctx context.Context, it Iterator[T], c scheduler.Consumer[T, R], opts ...Option) (R, error) {
	var o driveOptions
	for _, opt := range opts {
		opt(&o)
	}

	var (
		result R
		err    error
		calls  int
	)
	length := it.Len()
	it.WithProducer(func(p producer.Producer[T]) {
		calls++
		if calls > 1 {
			panic(errors.ContractViolation("with_producer", "callback invoked more than once"))
		}
		if p.Len() != length {
			panic(errors.ContractViolation("with_producer",
				fmt.Sprintf("producer length %d does not match iterator length %d", p.Len(), length)))
		}
		result, err = scheduler.Drive(ctx, o.scheduler, p, c)
	})
	if calls == 0 {
		panic(errors.ContractViolation("with_producer", "callback was not invoked"))
	}
	return result, err
}

func withOperation(ctx context.Context, op string) context.Context {
	if scheduler.OperationFromContext(ctx) != scheduler.DefaultOperation {
		return ctx
	}
	return scheduler.ContextWithOperation(ctx, op)
}
