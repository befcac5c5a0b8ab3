package core

import (
	"context"
	"time"
)

// RunSessionSweeper evicts idle grid sessions every interval until ctx is
// cancelled. It always returns nil so it can run in an errgroup next to
// the HTTP server.
func (s *Service) RunSessionSweeper(ctx context.Context, interval time.Duration) error {
	s.opts.Logger.Info("session sweeper started",
		"interval", interval.String(),
		"ttl", s.opts.SessionTTL.String(),
	)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.opts.Logger.Info("session sweeper stopped")
			return nil
		case <-ticker.C:
			s.sweepSessions()
		}
	}
}

// sweepSessions performs one eviction pass.
func (s *Service) sweepSessions() {
	start := time.Now()
	removed := s.sessions.Sweep()
	if removed == 0 {
		return
	}
	s.opts.Logger.Info("expired grid sessions evicted",
		"removed", removed,
		"open", s.sessions.Len(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
