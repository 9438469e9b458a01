// Package observability provides OpenTelemetry tracing and metrics for drives.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("my-service"))
//	defer tp.Shutdown(ctx)
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("my-service"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.DriveMeter())
//	sched, err := scheduler.New(cfg, scheduler.WithMetrics(metrics))
//
// Every drive opens a "pariter.drive" span carrying its ID, length, worker
// count and, on completion, split/fork/leaf counts.
package observability
