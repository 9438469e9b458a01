// Package config loads pariter configuration with Viper.
//
// Values come from a YAML file (explicit, or found under ./cmd/<name>,
// ./config or the working directory) and are overridden by PARITER_*
// environment variables, optionally read from a .env file:
//
//	cfg, err := config.Load("reports", config.WithConfigFile("config.yml"))
//	shutdown, err := cfg.InitTelemetry(ctx)
//	defer shutdown(ctx)
//	sched, err := cfg.NewScheduler()
//
// PARITER_SCHEDULER_WORKERS=8 sets scheduler.workers.
package config
