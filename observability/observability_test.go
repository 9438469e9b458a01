package observability

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/pariter/version"
)

// recordSpans installs a recording tracer provider for the duration of the test.
func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})
	return rec
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func sumOf(t *testing.T, m metricdata.Metrics) int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("%s: expected Sum[int64], got %T", m.Name, m.Data)
	}
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func attrsOf(t *testing.T, kvs []attribute.KeyValue) map[attribute.Key]attribute.Value {
	t.Helper()
	out := make(map[attribute.Key]attribute.Value, len(kvs))
	for _, kv := range kvs {
		out[kv.Key] = kv.Value
	}
	return out
}

func TestDefaultTracerConfig(t *testing.T) {
	cfg := DefaultTracerConfig("test-service")

	if cfg.ServiceName != "test-service" {
		t.Errorf("expected ServiceName 'test-service', got %s", cfg.ServiceName)
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected Endpoint 'localhost:4318', got %s", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected SampleRate 1.0, got %f", cfg.SampleRate)
	}
	if cfg.Enabled {
		t.Error("export should be off by default")
	}
}

func TestTracerConfigApplyDefaults(t *testing.T) {
	cfg := TracerConfig{Enabled: true, Endpoint: "collector:4318", SampleRate: 0.25}
	cfg.ApplyDefaults("svc")

	if cfg.ServiceName != "svc" || cfg.Environment != "development" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.Endpoint != "collector:4318" || cfg.SampleRate != 0.25 || !cfg.Enabled {
		t.Errorf("explicit values overwritten: %+v", cfg)
	}
}

func TestMeterConfigApplyDefaults(t *testing.T) {
	var cfg MeterConfig
	cfg.ApplyDefaults("svc")

	if cfg.Interval != 15*time.Second {
		t.Errorf("expected Interval 15s, got %v", cfg.Interval)
	}
	if cfg.ServiceName != "svc" {
		t.Errorf("expected ServiceName 'svc', got %s", cfg.ServiceName)
	}
}

func TestSampler(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{1.0, "AlwaysOnSampler"},
		{2.0, "AlwaysOnSampler"},
		{0, "AlwaysOffSampler"},
		{-1, "AlwaysOffSampler"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.rate), func(t *testing.T) {
			if got := sampler(tt.rate).Description(); got != tt.want {
				t.Errorf("sampler(%v) = %s, want %s", tt.rate, got, tt.want)
			}
		})
	}
}

func TestNewMetricsNoop(t *testing.T) {
	metrics, err := NewMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}

	ctx := context.Background()
	metrics.RecordDriveStart(ctx)
	metrics.RecordSplit(ctx, true)
	metrics.RecordLeaf(ctx, 8)
	metrics.RecordDriveEnd(ctx, "collect", StatusOK, 10*time.Millisecond)
}

func TestNilMetricsRecordsNothing(t *testing.T) {
	var metrics *Metrics
	ctx := context.Background()
	metrics.RecordDriveStart(ctx)
	metrics.RecordSplit(ctx, false)
	metrics.RecordLeaf(ctx, 1)
	metrics.RecordDriveEnd(ctx, "collect", StatusOK, time.Millisecond)
}

func TestMetricsRecorded(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = mp.Shutdown(context.Background()) }()

	metrics, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	metrics.RecordDriveStart(ctx)
	metrics.RecordSplit(ctx, true)
	metrics.RecordSplit(ctx, false)
	metrics.RecordLeaf(ctx, 3)
	metrics.RecordLeaf(ctx, 2)
	metrics.RecordLeaf(ctx, 2)
	metrics.RecordDriveEnd(ctx, "collect", StatusOK, 5*time.Millisecond)

	got := collect(t, reader)
	if v := sumOf(t, got[MetricDrivesTotal]); v != 1 {
		t.Errorf("drives total = %d, want 1", v)
	}
	if v := sumOf(t, got[MetricDrivesActive]); v != 0 {
		t.Errorf("drives active = %d, want 0", v)
	}
	if v := sumOf(t, got[MetricSplitsTotal]); v != 2 {
		t.Errorf("splits = %d, want 2", v)
	}
	if v := sumOf(t, got[MetricLeavesTotal]); v != 3 {
		t.Errorf("leaves = %d, want 3", v)
	}

	hist, ok := got[MetricLeafItems].Data.(metricdata.Histogram[int64])
	if !ok || len(hist.DataPoints) != 1 {
		t.Fatalf("unexpected leaf items data: %#v", got[MetricLeafItems].Data)
	}
	if hist.DataPoints[0].Sum != 7 || hist.DataPoints[0].Count != 3 {
		t.Errorf("leaf items sum/count = %d/%d, want 7/3", hist.DataPoints[0].Sum, hist.DataPoints[0].Count)
	}
}

func TestStartSpan(t *testing.T) {
	rec := recordSpans(t)

	ctx, span := StartSpan(context.Background(), "test-operation")
	if !SpanFromContext(ctx).SpanContext().Equal(span.SpanContext()) {
		t.Error("span should be stored in the returned context")
	}
	span.End()

	ended := rec.Ended()
	if len(ended) != 1 || ended[0].Name() != "test-operation" {
		t.Fatalf("unexpected spans: %v", ended)
	}
	scope := ended[0].InstrumentationScope()
	if scope.Name != InstrumentationName || scope.Version != version.Short() {
		t.Errorf("unexpected scope %+v", scope)
	}
}

func TestSetSpanAttributeAndError(t *testing.T) {
	rec := recordSpans(t)

	ctx, span := StartSpan(context.Background(), "test-attrs")
	SetSpanAttribute(ctx, "string-key", "value")
	SetSpanAttribute(ctx, "int-key", 42)
	SetSpanAttribute(ctx, "int64-key", int64(100))
	SetSpanAttribute(ctx, "float-key", 3.14)
	SetSpanAttribute(ctx, "bool-key", true)
	SetSpanAttribute(ctx, "unsupported-key", struct{}{})
	SetSpanError(ctx, fmt.Errorf("test error"))
	span.End()

	s := rec.Ended()[0]
	attrs := attrsOf(t, s.Attributes())
	if len(attrs) != 6 {
		t.Errorf("expected 6 attributes, got %d: %v", len(attrs), attrs)
	}
	if attrs[AttrErrorMessage].AsString() != "test error" {
		t.Errorf("error message = %v", attrs[AttrErrorMessage])
	}
	if s.Status().Code != codes.Error {
		t.Errorf("expected error status, got %v", s.Status())
	}
	if attrs["int-key"].AsInt64() != 42 {
		t.Errorf("int-key = %v", attrs["int-key"])
	}
	if len(s.Events()) != 1 || s.Events()[0].Name != "exception" {
		t.Errorf("expected one exception event, got %v", s.Events())
	}
}

func TestSetSpanNoSpan(t *testing.T) {
	ctx := context.Background()
	SetSpanAttribute(ctx, "key", "value")
	SetSpanError(ctx, fmt.Errorf("no span error"))
}

func TestDriveContextFromContext(t *testing.T) {
	if DriveContextFromContext(context.Background()) != nil {
		t.Error("expected nil when drive context not set")
	}

	dc := NewDriveContext("drive-1", "collect", 10, 4, nil)
	ctx := WithDriveContext(context.Background(), dc)
	if DriveContextFromContext(ctx) != dc {
		t.Error("expected stored drive context")
	}
}

func TestDriveContextSpan(t *testing.T) {
	rec := recordSpans(t)

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = mp.Shutdown(context.Background()) }()
	metrics, _ := NewMetrics(mp.Meter("test"))

	dc := NewDriveContext("drive-1", "collect", 100, 4, metrics)
	ctx := dc.Start(context.Background())
	if DriveContextFromContext(ctx) != dc {
		t.Fatal("Start should attach the drive context")
	}
	dc.AddSplit(ctx, true)
	dc.AddSplit(ctx, false)
	dc.AddLeaf(ctx, 50)
	dc.AddLeaf(ctx, 25)
	dc.AddLeaf(ctx, 25)
	dc.End(ctx, StatusOK, nil)

	if dc.Splits() != 2 || dc.Forks() != 1 || dc.Leaves() != 3 {
		t.Errorf("counters = %d/%d/%d, want 2/1/3", dc.Splits(), dc.Forks(), dc.Leaves())
	}

	ended := rec.Ended()
	if len(ended) != 1 || ended[0].Name() != SpanDrive {
		t.Fatalf("unexpected spans: %v", ended)
	}
	attrs := attrsOf(t, ended[0].Attributes())
	if attrs[AttrDriveID].AsString() != "drive-1" {
		t.Errorf("drive id = %v", attrs[AttrDriveID])
	}
	if attrs[AttrLength].AsInt64() != 100 || attrs[AttrLeaves].AsInt64() != 3 || attrs[AttrForks].AsInt64() != 1 {
		t.Errorf("unexpected attributes: %v", attrs)
	}
	if attrs[AttrStatus].AsString() != StatusOK {
		t.Errorf("status = %v", attrs[AttrStatus])
	}

	got := collect(t, reader)
	if v := sumOf(t, got[MetricDrivesTotal]); v != 1 {
		t.Errorf("drives total = %d, want 1", v)
	}
}

func TestDriveContextEndWithError(t *testing.T) {
	rec := recordSpans(t)

	dc := NewDriveContext("drive-2", "reduce", 4, 1, nil)
	ctx := dc.Start(context.Background())
	dc.End(ctx, StatusCanceled, context.Canceled)

	s := rec.Ended()[0]
	if s.Status().Description != context.Canceled.Error() {
		t.Errorf("unexpected span status %v", s.Status())
	}
	if attrsOf(t, s.Attributes())[AttrStatus].AsString() != StatusCanceled {
		t.Error("expected canceled status attribute")
	}
}

func TestDriveContextDuration(t *testing.T) {
	dc := NewDriveContext("d", "op", 0, 1, nil)
	dc.StartTime = time.Now().Add(-50 * time.Millisecond)

	if d := dc.Duration(); d < 45*time.Millisecond {
		t.Errorf("expected duration around 50ms, got %v", d)
	}
}

func TestInitTracerAndMeter(t *testing.T) {
	prevTP, prevMP := otel.GetTracerProvider(), otel.GetMeterProvider()
	t.Cleanup(func() {
		otel.SetTracerProvider(prevTP)
		otel.SetMeterProvider(prevMP)
	})

	ctx := context.Background()
	tcfg := DefaultTracerConfig("init-test")
	tcfg.Endpoint = "127.0.0.1:1"
	tcfg.SampleRate = 0.5
	tp, err := InitTracer(ctx, tcfg)
	if err != nil {
		t.Fatalf("InitTracer: %v", err)
	}
	if otel.GetTracerProvider() != tp {
		t.Error("InitTracer should install the global tracer provider")
	}

	mcfg := DefaultMeterConfig("init-test")
	mcfg.Endpoint = "127.0.0.1:1"
	mcfg.Interval = time.Hour
	mp, err := InitMeter(ctx, mcfg)
	if err != nil {
		t.Fatalf("InitMeter: %v", err)
	}
	if otel.GetMeterProvider() != mp {
		t.Error("InitMeter should install the global meter provider")
	}

	// Nothing listens on the endpoint; shutdown only has to return.
	shutdownCtx, cancel := context.WithTimeout(ctx, 200*time.Millisecond)
	defer cancel()
	_ = tp.Shutdown(shutdownCtx)
	_ = mp.Shutdown(shutdownCtx)
}
