package config

import (
	"log/slog"
	"strings"
)

// ObservabilityConfig groups logging and metrics settings.
type ObservabilityConfig struct {
	Logging LoggingConfig
	Metrics ObservabilityMetricsConfig
}

// Sanitize applies guardrails to observability sub-configs.
func (c *ObservabilityConfig) Sanitize() {
	c.Logging.Sanitize()
	c.Metrics.Sanitize()
}

// Log output formats.
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// LoggingConfig selects the slog handler. Level accepts slog names with
// offsets, e.g. "debug" or "warn+2".
type LoggingConfig struct {
	Level  slog.Level `env:"LOG_LEVEL"  envDefault:"info"`
	Format string     `env:"LOG_FORMAT" envDefault:"json"`
}

// Sanitize falls back to JSON for unknown formats.
func (c *LoggingConfig) Sanitize() {
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	if c.Format != LogFormatText {
		c.Format = LogFormatJSON
	}
}

// ObservabilityMetricsConfig controls the StatsD sink for console metrics.
type ObservabilityMetricsConfig struct {
	Enabled       bool   `env:"OBSERVABILITY_METRICS_ENABLED"        envDefault:"false"`
	StatsdAddress string `env:"OBSERVABILITY_METRICS_STATSD_ADDRESS" envDefault:"127.0.0.1:8125"`
	Prefix        string `env:"OBSERVABILITY_METRICS_PREFIX"         envDefault:"txpay_admin"`
}

// Sanitize disables emission without an address.
func (c *ObservabilityMetricsConfig) Sanitize() {
	c.StatsdAddress = strings.TrimSpace(c.StatsdAddress)
	c.Prefix = strings.Trim(strings.TrimSpace(c.Prefix), ".")
	if c.StatsdAddress == "" {
		c.Enabled = false
	}
}

// IsEnabled reports whether metrics are emitted.
func (c *ObservabilityMetricsConfig) IsEnabled() bool {
	return c.Enabled && c.StatsdAddress != ""
}
