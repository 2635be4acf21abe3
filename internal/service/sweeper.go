package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"github.com/medipharm/medipharm-console/internal/observability/statsd"
)

// ExpiredSessionPurger deletes durable session keys past their expiry.
type ExpiredSessionPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// SessionSweeperOptions groups dependencies for SessionSweeper.
type SessionSweeperOptions struct {
	Purger   ExpiredSessionPurger // Required
	Interval time.Duration        // Defaults to 10m
	Logger   *slog.Logger
	Metrics  statsd.Sink
}

// SessionSweeper periodically removes expired session rows. Stores with
// native expiry (Redis) do not need it.
type SessionSweeper struct {
	purger   ExpiredSessionPurger
	interval time.Duration
	logger   *slog.Logger
	metrics  statsd.Sink
}

// NewSessionSweeper constructs a SessionSweeper.
func NewSessionSweeper(opts SessionSweeperOptions) (*SessionSweeper, error) {
	if opts.Purger == nil {
		return nil, errors.New("ExpiredSessionPurger is required")
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = statsd.Discard
	}
	return &SessionSweeper{
		purger:   opts.Purger,
		interval: interval,
		logger:   logger.With("component", "session_sweeper"),
		metrics:  metrics,
	}, nil
}

// Run sweeps once after a small random delay, then every interval, until ctx
// is cancelled. Cancellation is a clean stop and returns nil.
func (s *SessionSweeper) Run(ctx context.Context) error {
	s.logger.InfoContext(ctx, "starting session sweeper", "interval", s.interval)

	s.waitWithJitter(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if ctx.Err() == nil {
			s.Sweep(ctx)
		}
		select {
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "session sweeper stopping", "reason", ctx.Err())
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Sweep runs one purge and reports how many rows it removed. Failures are
// logged and counted; the next tick retries.
func (s *SessionSweeper) Sweep(ctx context.Context) int64 {
	start := time.Now()
	n, err := s.purger.PurgeExpired(ctx)
	elapsed := time.Since(start)

	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			s.logger.DebugContext(ctx, "session sweep interrupted", "error", err)
			return 0
		}
		s.logger.ErrorContext(ctx, "session sweep failed", "error", err, "elapsed", elapsed)
		s.metrics.Count("session.sweep", 1, map[string]string{"result": "error"})
		return 0
	}

	s.metrics.Count("session.sweep", 1, map[string]string{"result": "success"})
	s.metrics.Count("session.swept", n, nil)
	s.metrics.Timing("session.sweep.duration", elapsed, nil)
	if n > 0 {
		s.logger.InfoContext(ctx, "expired sessions purged", "count", n, "elapsed", elapsed)
	}
	return n
}

// waitWithJitter delays up to 10% of the interval so replicas started
// together do not sweep in lockstep.
func (s *SessionSweeper) waitWithJitter(ctx context.Context) {
	maxJitter := int64(s.interval / 10)
	if maxJitter <= 0 {
		return
	}

	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		s.logger.WarnContext(ctx, "failed to generate jitter, skipping", "error", err)
		return
	}
	jitter := time.Duration(int64(binary.BigEndian.Uint64(buf[:]) % uint64(maxJitter))) // #nosec G115 - bounded by maxJitter

	t := time.NewTimer(jitter)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
