// Package config provides configuration loading and validation for pinglog.
package config

import "regexp"

// Config is the root configuration structure loaded from YAML.
// Every field has a sensible default; the config file itself is optional
// and command-line flags override file values.
type Config struct {
	// Threshold is the latency threshold in milliseconds. Records whose
	// round-trip time exceeds it are flagged as high latency.
	Threshold float64 `yaml:"threshold"`

	// SkipTitle disables ping title detection. When false, a missing
	// title line is fatal for the run.
	SkipTitle bool `yaml:"skip_title"`

	// RecordPattern optionally overrides the built-in record pattern.
	// Must contain "seq" and "time" named capture groups.
	RecordPattern string `yaml:"record_pattern,omitempty"`

	// Timestamps controls the bracketed epoch timestamp prefix:
	// auto (accept either), required, or none (ignore).
	Timestamps string `yaml:"timestamps,omitempty"`

	// LogSources optionally lists log files or glob patterns to analyze
	// when no files are given on the command line.
	LogSources []string `yaml:"log_sources,omitempty"`

	// Output configures report rendering.
	Output OutputConfig `yaml:"output,omitempty"`

	// compiledRecordPattern is populated during validation.
	compiledRecordPattern *regexp.Regexp
}

// OutputConfig configures report rendering.
type OutputConfig struct {
	// Format is the report format: text or json.
	Format string `yaml:"format,omitempty"`

	// Chart is an optional path for a PNG latency chart.
	Chart string `yaml:"chart,omitempty"`
}

// CompiledRecordPattern returns the pre-compiled record pattern override,
// or nil when the default pattern is in use.
func (c *Config) CompiledRecordPattern() *regexp.Regexp {
	return c.compiledRecordPattern
}
