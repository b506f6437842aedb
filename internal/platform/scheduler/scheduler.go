// Package scheduler runs background jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/bookhub_loan_service/internal/middleware"
	"github.com/robfig/cron/v3"
)

// Job is one unit of scheduled work.
type Job func(ctx context.Context) error

// Scheduler wraps a cron runner whose jobs share a base context and logger.
type Scheduler struct {
	cron    *cron.Cron
	ctx     context.Context
	cancel  context.CancelFunc
	logger  *slog.Logger
	timeout time.Duration
	jobs    int
}

// New creates a stopped scheduler. Each run gets its own context bounded by
// timeout, or unbounded when timeout is zero.
func New(logger *slog.Logger, timeout time.Duration) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		ctx:     ctx,
		cancel:  cancel,
		logger:  logger,
		timeout: timeout,
	}
}

// Register schedules job under spec. An empty spec disables the job and
// returns false.
func (s *Scheduler) Register(name, spec string, job Job) (bool, error) {
	if spec == "" {
		s.logger.Info("Scheduled job disabled", slog.String("job", name))
		return false, nil
	}
	_, err := s.cron.AddFunc(spec, func() { s.run(name, job) })
	if err != nil {
		return false, fmt.Errorf("invalid schedule %q for job %s: %w", spec, name, err)
	}
	s.jobs++
	s.logger.Info("Scheduled job registered", slog.String("job", name), slog.String("schedule", spec))
	return true, nil
}

func (s *Scheduler) run(name string, job Job) {
	logger := s.logger.With(slog.String("job", name))
	ctx := middleware.WithLogger(s.ctx, logger)
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	if err := job(ctx); err != nil {
		logger.Error("Scheduled job failed", slog.String("error", err.Error()), slog.Duration("duration", time.Since(start)))
		return
	}
	logger.Info("Scheduled job finished", slog.Duration("duration", time.Since(start)))
}

// Start begins running registered jobs in the background.
func (s *Scheduler) Start() {
	if s.jobs == 0 {
		return
	}
	s.cron.Start()
}

// Stop cancels in-flight jobs and waits for them to return or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	s.cancel()
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn("Timed out waiting for scheduled jobs to stop")
	}
}
