package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Validate checks the configuration for invalid or inconsistent values.
//
// Struct-level constraints (ranges, enums, required fields) are declared
// via `validate` tags and checked with go-playground/validator. Cross-field
// rules that tags cannot express are checked explicitly afterwards.
//
// Validate does not mutate the configuration. Call ApplyDefaults first to
// fill in missing values.
func Validate(cfg *Config) error {
	validate := validator.New()

	if err := validate.Struct(cfg); err != nil {
		return err
	}

	// Tag validation cannot express "endpoint required only when enabled"
	if cfg.Telemetry.Enabled && cfg.Telemetry.Endpoint == "" {
		return fmt.Errorf("telemetry endpoint is required when telemetry is enabled")
	}
	if cfg.Telemetry.Profiling.Enabled && cfg.Telemetry.Profiling.Endpoint == "" {
		return fmt.Errorf("profiling endpoint is required when profiling is enabled")
	}
	if cfg.Metrics.Enabled && cfg.Metrics.Port == 0 {
		return fmt.Errorf("metrics port is required when metrics are enabled")
	}

	return nil
}
