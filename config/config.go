package config

import (
	"github.com/kbukum/pariter/logger"
	"github.com/kbukum/pariter/observability"
	"github.com/kbukum/pariter/scheduler"
	"github.com/kbukum/pariter/validation"
)

// DefaultName is the config name used when none is set.
const DefaultName = "pariter"

// Config is the full pariter configuration.
//
//	name: reports
//	logging:
//	  level: debug
//	scheduler:
//	  workers: 8
//	  min_len: 64
//	tracer:
//	  enabled: true
//	  endpoint: otel-collector:4318
type Config struct {
	Name      string                     `yaml:"name" mapstructure:"name"`
	Logging   logger.Config              `yaml:"logging" mapstructure:"logging"`
	Scheduler scheduler.Config           `yaml:"scheduler" mapstructure:"scheduler"`
	Tracer    observability.TracerConfig `yaml:"tracer" mapstructure:"tracer"`
	Meter     observability.MeterConfig  `yaml:"meter" mapstructure:"meter"`
}

// ApplyDefaults applies defaults to every section.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = DefaultName
	}
	c.Logging.ApplyDefaults()
	c.Scheduler.ApplyDefaults()
	c.Tracer.ApplyDefaults(c.Name)
	c.Meter.ApplyDefaults(c.Name)
}

// Validate validates every section and reports all failures together.
func (c *Config) Validate() error {
	v := validation.New()
	v.Required("name", c.Name)
	v.Merge("logging", c.Logging.Validate())
	v.Merge("scheduler", c.Scheduler.Validate())
	v.Merge("tracer", validation.Validate(c.Tracer))
	v.Merge("meter", validation.Validate(c.Meter))
	return v.Error()
}

// Load reads, defaults and validates the configuration called name.
func Load(name string, opts ...LoaderOption) (*Config, error) {
	cfg := &Config{Name: name}
	if err := LoadConfig(name, cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewScheduler builds a scheduler from the scheduler section, logging
// through a logger built from the logging section.
func (c *Config) NewScheduler(opts ...scheduler.Option) (*scheduler.Scheduler, error) {
	log := logger.New(&c.Logging, c.Name).WithComponent("scheduler")
	return scheduler.New(c.Scheduler, append([]scheduler.Option{scheduler.WithLogger(log)}, opts...)...)
}
