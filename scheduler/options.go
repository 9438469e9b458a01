package scheduler

import (
	"github.com/kbukum/pariter/logger"
	"github.com/kbukum/pariter/observability"
	"github.com/kbukum/pariter/resilience"
)

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger. Defaults to logger.Get("scheduler").
func WithLogger(l *logger.Logger) Option {
	return func(s *Scheduler) {
		s.log = l
	}
}

// WithMetrics sets the metric instruments. Defaults to instruments on the
// global meter provider.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Scheduler) {
		s.metrics = m
	}
}

// WithBulkhead replaces the fork slot pool. Sharing one bulkhead between
// schedulers bounds their combined parallelism.
func WithBulkhead(b *resilience.Bulkhead) Option {
	return func(s *Scheduler) {
		s.bulkhead = b
	}
}
