package config

import (
	"log/slog"
	"strings"
)

// ObservabilityConfig groups logging and metrics configuration.
type ObservabilityConfig struct {
	Logging LoggingConfig
	Metrics ObservabilityMetricsConfig
}

// Sanitize applies guardrails to observability sub-configs.
func (c *ObservabilityConfig) Sanitize() {
	c.Logging.Sanitize()
	c.Metrics.Sanitize()
}

// LoggingConfig controls the process-wide slog handler.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL"  envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// Sanitize lowercases values and falls back to info/json.
func (c *LoggingConfig) Sanitize() {
	c.Level = strings.ToLower(strings.TrimSpace(c.Level))
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	if c.Format != "text" {
		c.Format = "json"
	}
}

// SlogLevel maps Level to a slog.Level.
func (c LoggingConfig) SlogLevel() slog.Level {
	switch c.Level {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ObservabilityMetricsConfig controls the Prometheus endpoint and StatsD emission.
type ObservabilityMetricsConfig struct {
	// PrometheusEnabled serves GET /metrics.
	PrometheusEnabled bool `env:"OBSERVABILITY_METRICS_PROMETHEUS_ENABLED" envDefault:"true"`

	StatsdEnabled bool   `env:"OBSERVABILITY_METRICS_ENABLED"        envDefault:"false"`
	StatsdAddress string `env:"OBSERVABILITY_METRICS_STATSD_ADDRESS" envDefault:"127.0.0.1:8125"`
	StatsdPrefix  string `env:"OBSERVABILITY_METRICS_STATSD_PREFIX"  envDefault:"medipharm.console"`
}

// Sanitize normalises derived fields and enforces safe defaults.
func (c *ObservabilityMetricsConfig) Sanitize() {
	c.StatsdAddress = strings.TrimSpace(c.StatsdAddress)
	if c.StatsdAddress == "" {
		c.StatsdEnabled = false
	}
}

// StatsdActive returns true when StatsD emission is active after sanitisation.
func (c *ObservabilityMetricsConfig) StatsdActive() bool {
	return c.StatsdEnabled && c.StatsdAddress != ""
}
