package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron"
	"github.com/rs/zerolog"
)

// Scheduler runs the digest job on a cron schedule.
type Scheduler struct {
	cron     *cron.Cron
	schedule cron.Schedule
	job      *DigestJob
	logger   zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	// running serializes runs so a slow run is never overlapped.
	running sync.Mutex
}

// NewScheduler parses spec and registers the digest job.
func NewScheduler(spec string, job *DigestJob, logger zerolog.Logger) (*Scheduler, error) {
	schedule, err := cron.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("parsing digest schedule %q: %w", spec, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		cron:     cron.New(),
		schedule: schedule,
		job:      job,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
	s.cron.Schedule(schedule, cron.FuncJob(s.runOnce))
	return s, nil
}

// Next returns the next activation after t.
func (s *Scheduler) Next(t time.Time) time.Time {
	return s.schedule.Next(t)
}

// Start starts the cron loop in its own goroutine.
func (s *Scheduler) Start() {
	s.logger.Info().Time("next_run", s.Next(time.Now())).Msg("digest scheduler started")
	s.cron.Start()
}

// Stop stops scheduling and cancels a run in progress.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.cancel()
}

func (s *Scheduler) runOnce() {
	if !s.running.TryLock() {
		s.logger.Warn().Msg("previous digest run still in progress, skipping")
		return
	}
	defer s.running.Unlock()

	if _, err := s.job.Run(s.ctx); err != nil {
		s.logger.Error().Err(err).Msg("scheduled digest run failed")
	}
}
