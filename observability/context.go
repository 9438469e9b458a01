package observability

import (
	"context"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Drive statuses.
const (
	StatusOK       = "ok"
	StatusCanceled = "canceled"
	StatusError    = "error"
)

// DriveContext holds observability state for one drive. Counters are safe
// for concurrent use by forked workers.
type DriveContext struct {
	ID        string
	Operation string
	Length    int
	Workers   int
	StartTime time.Time
	Metrics   *Metrics

	splits atomic.Int64
	forks  atomic.Int64
	leaves atomic.Int64
}

// NewDriveContext creates a new drive context.
// If metrics is nil, metric recording is silently skipped.
func NewDriveContext(id, operation string, length, workers int, metrics *Metrics) *DriveContext {
	return &DriveContext{
		ID:        id,
		Operation: operation,
		Length:    length,
		Workers:   workers,
		StartTime: time.Now(),
		Metrics:   metrics,
	}
}

type driveContextKey struct{}

// WithDriveContext stores a DriveContext in the context.
func WithDriveContext(ctx context.Context, dc *DriveContext) context.Context {
	return context.WithValue(ctx, driveContextKey{}, dc)
}

// DriveContextFromContext retrieves the DriveContext from context, or nil.
func DriveContextFromContext(ctx context.Context) *DriveContext {
	if dc, ok := ctx.Value(driveContextKey{}).(*DriveContext); ok {
		return dc
	}
	return nil
}

// Start opens the drive span and records the drive start metric. The
// returned context carries both the span and dc.
func (dc *DriveContext) Start(ctx context.Context) context.Context {
	ctx, span := StartSpan(ctx, SpanDrive)
	span.SetAttributes(
		attribute.String(AttrDriveID, dc.ID),
		attribute.String(AttrOperation, dc.Operation),
		attribute.Int(AttrLength, dc.Length),
		attribute.Int(AttrWorkers, dc.Workers),
	)
	dc.Metrics.RecordDriveStart(ctx)
	return WithDriveContext(ctx, dc)
}

// AddSplit counts a split and whether its right half ran on another goroutine.
func (dc *DriveContext) AddSplit(ctx context.Context, forked bool) {
	dc.splits.Add(1)
	if forked {
		dc.forks.Add(1)
	}
	dc.Metrics.RecordSplit(ctx, forked)
}

// AddLeaf counts a leaf of n items.
func (dc *DriveContext) AddLeaf(ctx context.Context, n int) {
	dc.leaves.Add(1)
	dc.Metrics.RecordLeaf(ctx, n)
}

// Splits returns the number of splits so far.
func (dc *DriveContext) Splits() int { return int(dc.splits.Load()) }

// Forks returns the number of splits whose right half was forked.
func (dc *DriveContext) Forks() int { return int(dc.forks.Load()) }

// Leaves returns the number of leaves iterated so far.
func (dc *DriveContext) Leaves() int { return int(dc.leaves.Load()) }

// End ends the span opened by Start on ctx and records drive-end metrics.
func (dc *DriveContext) End(ctx context.Context, status string, err error) {
	duration := time.Since(dc.StartTime)
	span := trace.SpanFromContext(ctx)

	if err != nil {
		SetSpanError(ctx, err)
	}

	span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int(AttrSplits, dc.Splits()),
		attribute.Int(AttrForks, dc.Forks()),
		attribute.Int(AttrLeaves, dc.Leaves()),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	span.End()

	dc.Metrics.RecordDriveEnd(ctx, dc.Operation, status, duration)
}

// Duration returns the elapsed time since drive start.
func (dc *DriveContext) Duration() time.Duration {
	return time.Since(dc.StartTime)
}
