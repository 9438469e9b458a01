package scheduler

import (
	"math"
	"runtime"

	"github.com/kbukum/pariter/validation"
)

// Defaults applied by Config.ApplyDefaults.
const (
	DefaultMinLen      = 1
	DefaultSplitFactor = 2
	MaxSplitFactor     = 64

	// MaxWorkers keeps Workers * SplitFactor within int.
	MaxWorkers = math.MaxInt / MaxSplitFactor
	// MaxMinLen keeps both halves of a split able to reach MinLen.
	MaxMinLen = math.MaxInt / 2
)

// Config tunes the splitting heuristic.
type Config struct {
	// Workers bounds how many goroutines run leaves of one scheduler at the
	// same time, the caller included. Defaults to GOMAXPROCS.
	Workers int `mapstructure:"workers" yaml:"workers" validate:"gte=0"`
	// MinLen is the smallest leaf length the splitter will produce.
	MinLen int `mapstructure:"min_len" yaml:"min_len" validate:"gte=0"`
	// CostThreshold stops splitting weighted producers whose Cost(Len())
	// is at or below it. Ignored for unweighted producers.
	CostThreshold float64 `mapstructure:"cost_threshold" yaml:"cost_threshold" validate:"gte=0"`
	// SplitFactor scales the initial split budget (Workers * SplitFactor).
	SplitFactor int `mapstructure:"split_factor" yaml:"split_factor" validate:"gte=0"`
}

// ApplyDefaults fills zero values.
func (c *Config) ApplyDefaults() {
	if c.Workers == 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.MinLen == 0 {
		c.MinLen = DefaultMinLen
	}
	if c.SplitFactor == 0 {
		c.SplitFactor = DefaultSplitFactor
	}
}

// Validate checks a defaulted config.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	v := validation.New()
	v.Min("workers", c.Workers, 1).Max("workers", c.Workers, MaxWorkers)
	v.Min("min_len", c.MinLen, 1).Max("min_len", c.MinLen, MaxMinLen)
	v.Range("split_factor", c.SplitFactor, 1, MaxSplitFactor)
	v.NonNegative("cost_threshold", c.CostThreshold)
	return v.Error()
}

// budget is the initial split budget of a drive.
func (c *Config) budget() int {
	return c.Workers * c.SplitFactor
}
