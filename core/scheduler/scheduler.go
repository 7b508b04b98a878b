// Package scheduler drives periodic reconciliation runs.
package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Runner is the unit of work the scheduler invokes.
type Runner func(ctx context.Context) error

// Scheduler runs a Runner immediately and then at a fixed interval.
// Runs never overlap; the interval is measured from the end of the
// previous run.
type Scheduler struct {
	interval time.Duration
	run      Runner
	log      *zap.Logger
}

func New(interval time.Duration, run Runner, log *zap.Logger) *Scheduler {
	return &Scheduler{interval: interval, run: run, log: log}
}

// Start blocks until ctx is canceled. Run failures are logged and the
// loop continues; a dead Plex server should not stop the daemon.
func (s *Scheduler) Start(ctx context.Context) error {
	timer := time.NewTimer(0)
	defer timer.Stop()

	// Drain the immediate tick so the first iteration runs right away.
	<-timer.C

	for {
		if err := s.run(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.log.Error("Scheduled run failed", zap.Error(err))
		}

		s.log.Info("Next run scheduled", zap.Duration("in", s.interval))
		timer.Reset(s.interval)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
}
