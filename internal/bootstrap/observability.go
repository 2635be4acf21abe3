package bootstrap

import (
	"context"
	"log/slog"

	"github.com/medipharm/medipharm-console/config"
	"github.com/medipharm/medipharm-console/internal/observability/metrics"
	"github.com/medipharm/medipharm-console/internal/observability/statsd"
)

// Observability groups the metrics sinks shared by the console's components.
type Observability struct {
	Console *metrics.Console
	// Statsd is nil when StatsD emission is disabled.
	Statsd *statsd.Client
	Config config.ObservabilityMetricsConfig
}

// Sink returns the StatsD sink, or a discarding one.
//
//nolint:ireturn // statsd.Sink is the consumer-facing interface.
func (o *Observability) Sink() statsd.Sink {
	if o == nil || o.Statsd == nil {
		return statsd.Discard
	}
	return o.Statsd
}

// Close flushes and closes the StatsD connection.
func (o *Observability) Close() error {
	if o == nil || o.Statsd == nil {
		return nil
	}
	return o.Statsd.Close()
}

// BuildObservability configures Prometheus metrics and the optional StatsD
// mirror. A StatsD agent that cannot be reached only disables the mirror.
func BuildObservability(ctx context.Context, logger *slog.Logger, cfg config.ObservabilityConfig) *Observability {
	obs := &Observability{Config: cfg.Metrics}

	if cfg.Metrics.StatsdActive() {
		client, err := statsd.NewClient(ctx, statsd.Config{
			Address: cfg.Metrics.StatsdAddress,
			Prefix:  cfg.Metrics.StatsdPrefix,
			Logger:  logger,
		})
		if err != nil {
			logger.ErrorContext(ctx, "failed to initialise statsd client", "error", err)
		} else {
			obs.Statsd = client
			logger.InfoContext(ctx, "statsd metrics enabled", "address", cfg.Metrics.StatsdAddress)
		}
	}

	obs.Console = metrics.New(metrics.Config{Sink: obs.Sink(), RuntimeCollectors: true})
	return obs
}
