package scheduler

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/kbukum/pariter/errors"
	"github.com/kbukum/pariter/logger"
	"github.com/kbukum/pariter/observability"
	"github.com/kbukum/pariter/producer"
	"github.com/kbukum/pariter/resilience"
)

// DefaultOperation labels drives whose context carries no operation name.
const DefaultOperation = "drive"

// Scheduler holds the splitting configuration and the fork slot pool
// shared by its drives. It is safe for concurrent use.
type Scheduler struct {
	cfg      Config
	log      *logger.Logger
	metrics  *observability.Metrics
	bulkhead *resilience.Bulkhead
}

// New validates cfg after applying defaults and builds a Scheduler.
func New(cfg Config, opts ...Option) (*Scheduler, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Scheduler{cfg: cfg}
	for _, opt := range opts {
		opt(s)
	}

	if s.log == nil {
		s.log = logger.Get("scheduler")
	}
	if s.metrics == nil {
		m, err := observability.NewMetrics(observability.DriveMeter())
		if err != nil {
			s.log.Warn("metrics disabled", logger.ErrorFields("new_metrics", err))
		}
		s.metrics = m
	}
	// The calling goroutine is one of the workers, so forks get one slot fewer.
	if s.bulkhead == nil && cfg.Workers > 1 {
		s.bulkhead = resilience.NewBulkhead(resilience.BulkheadConfig{
			Name:          "scheduler",
			MaxConcurrent: cfg.Workers - 1,
		})
	}
	return s, nil
}

var defaultScheduler = sync.OnceValue(func() *Scheduler {
	s, err := New(Config{})
	if err != nil {
		panic(errors.Internal(err))
	}
	return s
})

// Default returns the shared scheduler built from the default Config.
func Default() *Scheduler {
	return defaultScheduler()
}

// Config returns the effective configuration.
func (s *Scheduler) Config() Config {
	return s.cfg
}

type operationKey struct{}

// ContextWithOperation labels the drives started with ctx in logs, spans
// and metrics.
func ContextWithOperation(ctx context.Context, op string) context.Context {
	return context.WithValue(ctx, operationKey{}, op)
}

// OperationFromContext returns the operation label carried by ctx.
func OperationFromContext(ctx context.Context) string {
	if op, ok := ctx.Value(operationKey{}).(string); ok && op != "" {
		return op
	}
	return DefaultOperation
}

// Drive consumes p with c and returns the combined result. A nil s uses
// Default(). The only returned error is CANCELED, when ctx ends before
// every leaf has been consumed; partial results are discarded.
func Drive[T, R any](ctx context.Context, s *Scheduler, p producer.Producer[T], c Consumer[T, R]) (result R, err error) {
	if s == nil {
		s = Default()
	}

	id := uuid.NewString()
	length := p.Len()
	dc := observability.NewDriveContext(id, OperationFromContext(ctx), length, s.cfg.Workers, s.metrics)
	ctx = dc.Start(logger.ContextWithDriveID(ctx, id))
	log := s.log.WithContext(ctx).WithFields(logger.Fields(logger.FieldOperation, dc.Operation))

	log.Debug("drive started", logger.Fields(
		logger.FieldLength, length,
		logger.FieldWorkers, s.cfg.Workers,
	))

	defer func() {
		if v := recover(); v != nil {
			perr := errors.FromPanic(v)
			dc.End(ctx, observability.StatusError, perr)
			log.Error("drive panicked", logger.ErrorFields(dc.Operation, perr))
			panic(v)
		}
	}()

	d := &drive[T, R]{ctx: ctx, s: s, dc: dc, consumer: c}
	result, err = d.run(p, s.cfg.budget())

	summary := logger.Fields(
		logger.FieldSplits, dc.Splits(),
		logger.FieldForks, dc.Forks(),
		logger.FieldLeaves, dc.Leaves(),
		logger.FieldDuration, dc.Duration().Milliseconds(),
	)
	if err != nil {
		dc.End(ctx, observability.StatusCanceled, err)
		log.WithError(err).Warn("drive canceled", summary)
		var zero R
		return zero, err
	}
	dc.End(ctx, observability.StatusOK, nil)
	log.Debug("drive finished", summary)
	return result, nil
}

type drive[T, R any] struct {
	ctx      context.Context
	s        *Scheduler
	dc       *observability.DriveContext
	consumer Consumer[T, R]
}

// panicked carries a value recovered from a branch until both branches
// have joined.
type panicked struct {
	value any
}

func (d *drive[T, R]) run(p producer.Producer[T], budget int) (R, error) {
	if err := d.ctx.Err(); err != nil {
		var zero R
		return zero, errors.Canceled(err)
	}

	if !d.s.shouldSplit(p, budget) {
		n := p.Len()
		d.dc.AddLeaf(d.ctx, n)
		return d.consumer.Consume(p.Seq()), nil
	}

	left, right := p.SplitAt(p.Len() / 2)
	budget /= 2

	if d.s.bulkhead != nil && d.s.bulkhead.TryAcquire() {
		d.dc.AddSplit(d.ctx, true)
		return d.fork(left, right, budget)
	}

	d.dc.AddSplit(d.ctx, false)
	l, err := d.run(left, budget)
	if err != nil {
		return l, err
	}
	r, err := d.run(right, budget)
	if err != nil {
		return r, err
	}
	return d.consumer.Combine(l, r), nil
}

// fork runs right on a new goroutine holding the slot acquired by the
// caller, and left inline. Panics from either side are re-raised here,
// left first, after both sides have finished.
func (d *drive[T, R]) fork(left, right producer.Producer[T], budget int) (R, error) {
	var (
		g      errgroup.Group
		r      R
		rPanic *panicked
	)
	g.Go(func() error {
		defer d.s.bulkhead.Release()
		var err error
		r, rPanic, err = d.protect(right, budget)
		return err
	})

	l, lPanic, lErr := d.protect(left, budget)
	rErr := g.Wait()

	if lPanic != nil {
		panic(lPanic.value)
	}
	if rPanic != nil {
		observability.SetSpanAttribute(d.ctx, observability.AttrPanicForked, true)
		panic(rPanic.value)
	}
	if lErr != nil {
		return l, lErr
	}
	if rErr != nil {
		return r, rErr
	}
	return d.consumer.Combine(l, r), nil
}

func (d *drive[T, R]) protect(p producer.Producer[T], budget int) (res R, pv *panicked, err error) {
	defer func() {
		if v := recover(); v != nil {
			pv = &panicked{value: v}
		}
	}()
	res, err = d.run(p, budget)
	return res, nil, err
}

// sizer is the non-generic part of producer.Producer.
type sizer interface {
	Len() int
	Cost(n int) float64
	Weighted() bool
}

// shouldSplit reports whether p is worth halving: the budget is not spent,
// both halves reach MinLen, and a weighted producer is costly enough.
func (s *Scheduler) shouldSplit(p sizer, budget int) bool {
	n := p.Len()
	if budget <= 0 || n/2 < s.cfg.MinLen {
		return false
	}
	if p.Weighted() && p.Cost(n) <= s.cfg.CostThreshold {
		return false
	}
	return true
}
