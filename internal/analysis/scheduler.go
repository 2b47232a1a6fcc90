package analysis

import (
	"context"
	"log/slog"
	"time"
)

// Scheduler re-runs the full analysis on a fixed interval so the stored report
// stays fresh without an operator clicking through. It is stateless: every
// tick is an independent snapshot run, and the interactive trigger keeps
// working alongside it (singleflight collapses overlaps).
type Scheduler struct {
	interval time.Duration
	svc      *Service
}

// NewScheduler creates a periodic refresh scheduler.
func NewScheduler(interval time.Duration, svc *Service) *Scheduler {
	return &Scheduler{interval: interval, svc: svc}
}

// Start begins the periodic refresh. Runs until the context is cancelled.
// A failed run is logged and the ticker keeps going; the usual cause is the
// store being briefly unreachable.
func (s *Scheduler) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("[Scheduler] Starting analysis refresh scheduler", "interval", s.interval)

	for {
		select {
		case <-ticker.C:
			if _, err := s.svc.Run(ctx); err != nil {
				slog.Error("[Scheduler] Scheduled analysis run failed", "error", err)
			}
		case <-ctx.Done():
			slog.Info("[Scheduler] Stopping (context cancelled)")
			return nil
		}
	}
}
