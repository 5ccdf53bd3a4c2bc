package config

import (
	"os"
	"strconv"
)

// Default values for configuration.
const (
	// DefaultThreshold is the latency threshold in milliseconds.
	DefaultThreshold = 1.0

	// DefaultTimestamps accepts lines with or without a timestamp prefix.
	DefaultTimestamps = "auto"

	// DefaultFormat is the report output format.
	DefaultFormat = "text"
)

// Environment variable names.
const (
	EnvThreshold     = "PINGLOG_THRESHOLD"
	EnvRecordPattern = "PINGLOG_RECORD_PATTERN"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Threshold:  DefaultThreshold,
		Timestamps: DefaultTimestamps,
		Output: OutputConfig{
			Format: DefaultFormat,
		},
	}
}

// ApplyEnvironmentOverrides applies environment variable overrides to the
// config. Load calls this automatically; callers starting from
// DefaultConfig (no config file) must call it themselves.
func (c *Config) ApplyEnvironmentOverrides() {
	if raw := os.Getenv(EnvThreshold); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			c.Threshold = v
		}
	}
	if pattern := os.Getenv(EnvRecordPattern); pattern != "" {
		c.RecordPattern = pattern
	}
}
