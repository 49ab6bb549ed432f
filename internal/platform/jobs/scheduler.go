package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Job is one unit of scheduled work.
type Job func(ctx context.Context) error

// Scheduler runs a job on a fixed interval until its context ends. Ticks that
// arrive while the job is still running are dropped.
type Scheduler struct {
	Name     string
	Interval time.Duration
	Job      Job
	Logger   *zap.Logger
}

func New(name string, interval time.Duration, job Job, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{Name: name, Interval: interval, Job: job, Logger: logger}
}

// Start launches the loop. A non-positive interval disables the schedule.
func (s *Scheduler) Start(ctx context.Context) bool {
	if s.Interval <= 0 || s.Job == nil {
		return false
	}
	go s.loop(ctx)
	s.Logger.Info("job scheduled", zap.String("job", s.Name), zap.Duration("interval", s.Interval))
	return true
}

func (s *Scheduler) loop(ctx context.Context) {
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	start := time.Now()
	if err := s.Job(ctx); err != nil {
		s.Logger.Warn("job run failed", zap.String("job", s.Name), zap.Error(err))
		return
	}
	s.Logger.Info("job run completed", zap.String("job", s.Name), zap.Duration("took", time.Since(start)))
}
