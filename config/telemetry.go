package config

import (
	"context"
	stderrors "errors"

	"github.com/kbukum/pariter/logger"
	"github.com/kbukum/pariter/observability"
)

// ShutdownFunc flushes and stops the providers installed by InitTelemetry.
type ShutdownFunc func(ctx context.Context) error

// InitTelemetry installs the OTLP tracer and meter providers for the
// sections that are enabled. The returned shutdown is never nil and stops
// whatever was installed, in reverse order.
func (c *Config) InitTelemetry(ctx context.Context) (ShutdownFunc, error) {
	var stops []ShutdownFunc
	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(stops) - 1; i >= 0; i-- {
			if err := stops[i](ctx); err != nil {
				errs = append(errs, err)
			}
		}
		return stderrors.Join(errs...)
	}

	if c.Tracer.Enabled {
		tp, err := observability.InitTracer(ctx, c.Tracer)
		if err != nil {
			return shutdown, err
		}
		stops = append(stops, tp.Shutdown)
	}

	if c.Meter.Enabled {
		mp, err := observability.InitMeter(ctx, c.Meter)
		if err != nil {
			if serr := shutdown(ctx); serr != nil {
				logger.WithComponent("config").WithError(serr).Warn("telemetry shutdown after failed init")
			}
			stops = nil
			return shutdown, err
		}
		stops = append(stops, mp.Shutdown)
	}

	return shutdown, nil
}
