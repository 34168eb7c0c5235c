package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all harness settings. File settings are applied first, then
// flag overrides.
type Config struct {
	RunDangerous bool          `mapstructure:"run_dangerous"`
	Timeout      time.Duration `mapstructure:"timeout"`
	Only         []string      `mapstructure:"only"`
	Skip         []string      `mapstructure:"skip"`
	Iterations   int           `mapstructure:"iterations"`
	Rate         int           `mapstructure:"rate"`
	JSONOutput   bool          `mapstructure:"json_output"`
	LogErrors    bool          `mapstructure:"log_errors"`
	List         bool          `mapstructure:"-"`
	Verify       bool          `mapstructure:"verify"`
	Manifest     string        `mapstructure:"manifest"`
	Analyzer     string        `mapstructure:"analyzer"`
	ScratchDir   string        `mapstructure:"scratch_dir"`
	Thresholds   []string      `mapstructure:"thresholds"`
	Tracing      TracingConfig `mapstructure:"tracing"`
	ConfigFile   string        `mapstructure:"-"`
}

// TracingConfig configures the optional OTLP trace export.
type TracingConfig struct {
	Endpoint    string  `mapstructure:"endpoint"`
	Protocol    string  `mapstructure:"protocol"`
	Insecure    bool    `mapstructure:"insecure"`
	SampleRate  float64 `mapstructure:"sample_rate"`
	ServiceName string  `mapstructure:"service_name"`
}

// Enabled reports whether trace export is configured, either directly or via
// the standard OTLP environment variable.
func (t TracingConfig) Enabled() bool {
	return t.Endpoint != "" || os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != ""
}

// ValidationError aggregates configuration issues.
type ValidationError struct {
	issues []string
}

func (e ValidationError) Error() string {
	if len(e.issues) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(e.issues, "; "))
}

// Issues returns the individual validation problems.
func (e ValidationError) Issues() []string {
	return append([]string(nil), e.issues...)
}

// Validate checks the configuration for consistency. Warnings (as opposed to
// hard errors) go to stderr.
func (c Config) Validate() error {
	var issues []string

	if c.Timeout < 0 {
		issues = append(issues, "timeout must not be negative")
	}
	if c.Iterations < 1 {
		issues = append(issues, "iterations must be at least 1")
	}
	if c.Rate < 0 {
		issues = append(issues, "rate must not be negative")
	}
	if c.Verify && strings.TrimSpace(c.Manifest) == "" {
		issues = append(issues, "verify requires a findings manifest (--manifest)")
	}
	if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1.0 {
		issues = append(issues, fmt.Sprintf("tracing sample_rate must be between 0.0 and 1.0, got %g", c.Tracing.SampleRate))
	}

	if c.RunDangerous && c.Timeout == 0 {
		// Not an error: running a deadlock-shaped scenario unbounded is a
		// documented, deliberate choice. Make the operator read it.
		fmt.Fprintln(os.Stderr, "WARNING: --run-dangerous without --timeout: a DANGEROUS scenario may hang until the process is killed externally.")
	}

	if len(issues) > 0 {
		return ValidationError{issues: issues}
	}
	return nil
}
