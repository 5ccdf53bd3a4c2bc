package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a configuration file.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.ApplyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors and compiles the record
// pattern override in place.
func Validate(cfg *Config) error {
	if cfg.Threshold < 0 {
		return fmt.Errorf("threshold: must be >= 0, got %v", cfg.Threshold)
	}

	switch cfg.Timestamps {
	case "", "auto", "required", "none":
	default:
		return fmt.Errorf("timestamps: invalid value %q (must be auto, required, or none)", cfg.Timestamps)
	}

	switch cfg.Output.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("output.format: unknown format %q (use text or json)", cfg.Output.Format)
	}

	if cfg.RecordPattern != "" {
		if err := validateRecordPattern(cfg); err != nil {
			return fmt.Errorf("record_pattern: %w", err)
		}
	}

	return nil
}

func validateRecordPattern(cfg *Config) error {
	re, err := regexp.Compile(cfg.RecordPattern)
	if err != nil {
		return fmt.Errorf("invalid pattern: %w", err)
	}

	var hasSeq, hasTime bool
	for _, name := range re.SubexpNames() {
		switch name {
		case "seq":
			hasSeq = true
		case "time":
			hasTime = true
		}
	}
	if !hasSeq || !hasTime {
		return errors.New(`pattern must have "seq" and "time" capture groups`)
	}

	cfg.compiledRecordPattern = re
	return nil
}
