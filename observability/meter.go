package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/pariter/logger"
	"github.com/kbukum/pariter/version"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// Enabled turns on OTLP export.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// ServiceName is the name of the service.
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	// ServiceVersion is the version of the service.
	ServiceVersion string `mapstructure:"service_version" yaml:"service_version"`
	// Environment is the deployment environment (dev, staging, prod).
	Environment string `mapstructure:"environment" yaml:"environment"`
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint" validate:"required_if=Enabled true"`
	// Insecure allows insecure connections (for development).
	Insecure bool `mapstructure:"insecure" yaml:"insecure"`
	// Interval is the metric export interval.
	Interval time.Duration `mapstructure:"interval" yaml:"interval" validate:"gte=0"`
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// ApplyDefaults fills zero values, keeping Enabled as configured.
func (c *MeterConfig) ApplyDefaults(serviceName string) {
	d := DefaultMeterConfig(serviceName)
	if c.ServiceName == "" {
		c.ServiceName = d.ServiceName
	}
	if c.ServiceVersion == "" {
		c.ServiceVersion = d.ServiceVersion
	}
	if c.Environment == "" {
		c.Environment = d.Environment
	}
	if c.Endpoint == "" {
		c.Endpoint = d.Endpoint
	}
	if c.Interval == 0 {
		c.Interval = d.Interval
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// DriveMeter returns the pariter meter from the global provider. Instruments
// created before InitMeter start recording once a provider is installed.
func DriveMeter() metric.Meter {
	return otel.Meter(InstrumentationName, metric.WithInstrumentationVersion(version.Short()))
}

// Metric instrument names.
const (
	MetricDrivesTotal   = "pariter.drives.total"
	MetricDriveDuration = "pariter.drive.duration"
	MetricDrivesActive  = "pariter.drives.active"
	MetricSplitsTotal   = "pariter.splits.total"
	MetricLeavesTotal   = "pariter.leaves.total"
	MetricLeafItems     = "pariter.leaf.items"
)

// Metrics holds the instruments recorded by the scheduler. A nil *Metrics
// records nothing.
type Metrics struct {
	drivesTotal   metric.Int64Counter
	driveDuration metric.Float64Histogram
	drivesActive  metric.Int64UpDownCounter
	splitsTotal   metric.Int64Counter
	leavesTotal   metric.Int64Counter
	leafItems     metric.Int64Histogram
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	drivesTotal, err := meter.Int64Counter(MetricDrivesTotal,
		metric.WithDescription("Total number of completed drives"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricDrivesTotal, err)
	}

	driveDuration, err := meter.Float64Histogram(MetricDriveDuration,
		metric.WithDescription("Duration of drives in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricDriveDuration, err)
	}

	drivesActive, err := meter.Int64UpDownCounter(MetricDrivesActive,
		metric.WithDescription("Number of drives currently running"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s gauge: %w", MetricDrivesActive, err)
	}

	splitsTotal, err := meter.Int64Counter(MetricSplitsTotal,
		metric.WithDescription("Total producer splits, by whether the right half was forked"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricSplitsTotal, err)
	}

	leavesTotal, err := meter.Int64Counter(MetricLeavesTotal,
		metric.WithDescription("Total leaves iterated sequentially"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricLeavesTotal, err)
	}

	leafItems, err := meter.Int64Histogram(MetricLeafItems,
		metric.WithDescription("Items per leaf"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricLeafItems, err)
	}

	return &Metrics{
		drivesTotal:   drivesTotal,
		driveDuration: driveDuration,
		drivesActive:  drivesActive,
		splitsTotal:   splitsTotal,
		leavesTotal:   leavesTotal,
		leafItems:     leafItems,
	}, nil
}

// RecordDriveStart increments the active drive count.
func (m *Metrics) RecordDriveStart(ctx context.Context) {
	if m == nil {
		return
	}
	m.drivesActive.Add(ctx, 1)
}

// RecordDriveEnd decrements active drives and records the completed drive.
func (m *Metrics) RecordDriveEnd(ctx context.Context, operation, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.drivesActive.Add(ctx, -1)
	m.drivesTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("status", status),
	))
	m.driveDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("operation", operation),
	))
}

// RecordSplit records one producer split.
func (m *Metrics) RecordSplit(ctx context.Context, forked bool) {
	if m == nil {
		return
	}
	m.splitsTotal.Add(ctx, 1, metric.WithAttributes(attribute.Bool("forked", forked)))
}

// RecordLeaf records one sequentially iterated leaf of the given length.
func (m *Metrics) RecordLeaf(ctx context.Context, items int) {
	if m == nil {
		return
	}
	m.leavesTotal.Add(ctx, 1)
	m.leafItems.Record(ctx, int64(items))
}
