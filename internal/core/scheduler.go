package core

// scheduler.go runs background maintenance for the session store.
//
// The reaper removes sessions that have been idle longer than the configured
// TTL so abandoned donations do not accumulate in memory. It is long-running
// and stops when its context is cancelled.

import (
	"context"
	"time"
)

// DefaultReapInterval is how often idle sessions are collected.
const DefaultReapInterval = time.Minute

// StartSessionReaper periodically removes idle sessions until ctx is done.
// It runs immediately on start, then every interval.
func (s *Service) StartSessionReaper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultReapInterval
	}

	s.logger.Info("session reaper started",
		"interval", interval.String(),
		"session_ttl", s.cfg.SessionTTL.String(),
	)

	s.runReap()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("session reaper stopped")
			return
		case <-ticker.C:
			s.runReap()
		}
	}
}

func (s *Service) runReap() {
	start := time.Now()
	reaped := s.ReapIdle()
	if reaped == 0 {
		s.logger.Debug("no idle sessions")
		return
	}
	s.logger.Info("reaped idle sessions",
		"sessions_reaped", reaped,
		"sessions_active", s.ActiveSessions(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
