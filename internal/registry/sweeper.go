package registry

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper periodically evicts rooms past the retention window.
type Sweeper struct {
	registry *Registry
	every    time.Duration
	maxAge   time.Duration
}

func NewSweeper(registry *Registry, every, maxAge time.Duration) *Sweeper {
	return &Sweeper{registry: registry, every: every, maxAge: maxAge}
}

// Run blocks until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.registry.SweepExpired(time.Now(), s.maxAge); n > 0 {
				slog.Info("expired rooms evicted", "count", n, "max_age", s.maxAge)
			}
		}
	}
}
