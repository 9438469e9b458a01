// Package validation checks configuration values before they reach the
// scheduler.
//
// Struct tag validation (validator/v10) covers the declarative rules on
// config structs; the fluent Validator covers cross-field rules that tags
// cannot express. Both report failures as an INVALID_CONFIG *errors.AppError
// whose Details["fields"] lists every offending field.
//
//	type Config struct {
//	    Workers int `mapstructure:"workers" validate:"gte=0"`
//	}
//	err := validation.Validate(cfg)
//
//	v := validation.New()
//	v.Min("scheduler.min_len", cfg.MinLen, 1)
//	err := v.Error()
package validation
