// Package metrics exposes the console's Prometheus metrics and mirrors the
// key series to StatsD.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/medipharm/medipharm-console/internal/domain/auth"
	apperrors "github.com/medipharm/medipharm-console/internal/errors"
	"github.com/medipharm/medipharm-console/internal/gateway"
	"github.com/medipharm/medipharm-console/internal/guard"
	"github.com/medipharm/medipharm-console/internal/observability/statsd"
	"github.com/medipharm/medipharm-console/internal/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result values for login tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

const namespace = "medipharm_console"

var latencyBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 15}

var (
	_ gateway.Metrics  = (*Console)(nil)
	_ session.Observer = (*Console)(nil)
)

// Config groups constructor options.
type Config struct {
	// Sink receives StatsD copies of backend timings and login events.
	Sink statsd.Sink
	// RuntimeCollectors adds the Go runtime and process collectors.
	RuntimeCollectors bool
}

// Console owns a private Prometheus registry with every console series.
// It is safe for concurrent use.
type Console struct {
	registry *prometheus.Registry
	sink     statsd.Sink

	httpInFlight    prometheus.Gauge
	httpDuration    *prometheus.HistogramVec
	backendDuration *prometheus.HistogramVec
	logins          *prometheus.CounterVec
	logouts         prometheus.Counter
	guardDecisions  *prometheus.CounterVec
}

// New creates and registers the console metrics.
func New(cfg Config) *Console {
	sink := cfg.Sink
	if sink == nil {
		sink = statsd.Discard
	}
	c := &Console{
		registry: prometheus.NewRegistry(),
		sink:     sink,
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Console HTTP requests currently being served.",
		}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Console HTTP request duration in seconds.",
			Buckets:   latencyBuckets,
		}, []string{"method", "route", "status_code"}),
		backendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "backend",
			Name:      "request_duration_seconds",
			Help:      "Backend API call duration in seconds. status_code 0 means no response.",
			Buckets:   latencyBuckets,
		}, []string{"method", "endpoint", "status_code"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "logins_total",
			Help:      "Login attempts by result and role or error code.",
		}, []string{"result", "detail"}),
		logouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "logouts_total",
			Help:      "Completed logout sequences.",
		}),
		guardDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "guard",
			Name:      "decisions_total",
			Help:      "Route guard decisions.",
		}, []string{"decision"}),
	}

	c.registry.MustRegister(c.httpInFlight, c.httpDuration, c.backendDuration, c.logins, c.logouts, c.guardDecisions)
	if cfg.RuntimeCollectors {
		c.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return c
}

// Registry exposes the underlying registry for tests and extra collectors.
func (c *Console) Registry() *prometheus.Registry { return c.registry }

// Handler serves the registry in the Prometheus exposition format.
func (c *Console) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// ObserveBackendRequest implements gateway.Metrics.
func (c *Console) ObserveBackendRequest(method, endpoint string, status int, elapsed time.Duration) {
	code := strconv.Itoa(status)
	c.backendDuration.WithLabelValues(method, endpoint, code).Observe(elapsed.Seconds())
	c.sink.Timing("backend.request", elapsed, map[string]string{
		"method":   method,
		"endpoint": endpoint,
		"status":   code,
	})
}

// LoginSucceeded implements session.Observer.
func (c *Console) LoginSucceeded(role auth.Role) {
	c.logins.WithLabelValues(ResultSuccess, string(role)).Inc()
	c.sink.Count("session.login", 1, map[string]string{"result": ResultSuccess, "role": string(role)})
}

// LoginFailed implements session.Observer.
func (c *Console) LoginFailed(code apperrors.ErrorCode) {
	c.logins.WithLabelValues(ResultError, string(code)).Inc()
	c.sink.Count("session.login", 1, map[string]string{"result": ResultError, "code": string(code)})
}

// LoggedOut implements session.Observer.
func (c *Console) LoggedOut() {
	c.logouts.Inc()
	c.sink.Count("session.logout", 1, nil)
}

// GuardDecision is a guard.Options.OnDecision hook.
func (c *Console) GuardDecision(_ context.Context, d guard.Decision) {
	c.guardDecisions.WithLabelValues(d.String()).Inc()
}

// WatchRegistry publishes the session registry's counters.
func (c *Console) WatchRegistry(stats func() session.RegistryStats) {
	gauge := func(name, help string, fn func(session.RegistryStats) float64) prometheus.Collector {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "session_registry", Name: name, Help: help,
		}, func() float64 { return fn(stats()) })
	}
	counter := func(name, help string, fn func(session.RegistryStats) float64) prometheus.Collector {
		return prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "session_registry", Name: name, Help: help,
		}, func() float64 { return fn(stats()) })
	}
	c.registry.MustRegister(
		gauge("size", "Live browser sessions held in memory.", func(s session.RegistryStats) float64 { return float64(s.Size) }),
		gauge("capacity", "Maximum live browser sessions.", func(s session.RegistryStats) float64 { return float64(s.Capacity) }),
		counter("hits_total", "Session lookups served from memory.", func(s session.RegistryStats) float64 { return float64(s.Hits) }),
		counter("misses_total", "Session lookups that created a session.", func(s session.RegistryStats) float64 { return float64(s.Misses) }),
		counter("evictions_total", "Sessions dropped from memory.", func(s session.RegistryStats) float64 { return float64(s.Evictions) }),
	)
}

// Middleware records request duration labelled by the ServeMux pattern.
// It must wrap the mux directly so the matched pattern is visible on r.
func (c *Console) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.httpInFlight.Inc()
		defer c.httpInFlight.Dec()

		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		c.httpDuration.WithLabelValues(r.Method, route, strconv.Itoa(sw.status)).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
