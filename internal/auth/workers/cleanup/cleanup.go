// Package cleanup sweeps expired admin sessions out of the session store so
// a long-running portal does not accumulate dead rows. Redis-backed stores
// expire keys natively and treat the sweep as a no-op.
package cleanup

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// SessionStore exposes cleanup for expired admin sessions.
type SessionStore interface {
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

// Sweeper periodically removes expired admin sessions.
type Sweeper struct {
	sessions SessionStore
	interval time.Duration
	logger   *slog.Logger
}

// Option configures the Sweeper.
type Option func(*Sweeper)

// WithInterval overrides the sweep interval when greater than zero.
func WithInterval(interval time.Duration) Option {
	return func(s *Sweeper) {
		if interval > 0 {
			s.interval = interval
		}
	}
}

// WithLogger overrides the logger used for sweep errors.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sweeper) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a Sweeper with the required store and options applied.
func New(sessions SessionStore, opts ...Option) (*Sweeper, error) {
	if sessions == nil {
		return nil, fmt.Errorf("session store is required")
	}
	s := &Sweeper{
		sessions: sessions,
		interval: 5 * time.Minute,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Start runs the sweep periodically until ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := s.RunOnce(ctx); err != nil {
				s.logger.ErrorContext(ctx, "session sweep failed", "error", err)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// RunOnce performs a single sweep and reports how many sessions were removed.
func (s *Sweeper) RunOnce(ctx context.Context) (int, error) {
	deleted, err := s.sessions.DeleteExpired(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	if deleted > 0 {
		s.logger.InfoContext(ctx, "removed expired admin sessions", "count", deleted)
	}
	return deleted, nil
}
