package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/fitplan/fitplan/internal/body"
	"github.com/fitplan/fitplan/internal/planner"
	"github.com/fitplan/fitplan/internal/profile"
	"github.com/fitplan/fitplan/internal/resilience"
	"github.com/fitplan/fitplan/internal/telemetry"
	"github.com/fitplan/fitplan/internal/workout"
)

// Digest outcomes.
const (
	OutcomePublished = "published"
	OutcomeSkipped   = "skipped"
	OutcomeFailed    = "failed"
)

// ProfileSource lists users with a profile and regenerates their plans.
type ProfileSource interface {
	ListUserIDs(ctx context.Context) ([]string, error)
	Plan(ctx context.Context, userID string) (*planner.Plan, error)
}

// WorkoutSource returns workouts dated on or after a day.
type WorkoutSource interface {
	Since(ctx context.Context, userID string, from time.Time) ([]*workout.Workout, error)
}

// BodySource returns body entries dated on or after a day.
type BodySource interface {
	Since(ctx context.Context, userID string, from time.Time) ([]*body.Entry, error)
}

// FlagSource gates the digest run.
type FlagSource interface {
	IsCheckinDigestDisabled(ctx context.Context) bool
}

// Publisher delivers a computed digest.
type Publisher interface {
	Publish(ctx context.Context, d *Digest) error
}

// DigestJob computes and publishes weekly check-in digests.
type DigestJob struct {
	config    Config
	logger    zerolog.Logger
	profiles  ProfileSource
	workouts  WorkoutSource
	bodyLog   BodySource
	flags     FlagSource
	publisher Publisher
	guard     *resilience.Guard
	metrics   *telemetry.DomainMetrics
	now       func() time.Time

	stats *RunMetrics
}

// DigestJobConfig holds the dependencies of a DigestJob.
type DigestJobConfig struct {
	Config    Config
	Logger    zerolog.Logger
	Profiles  ProfileSource
	Workouts  WorkoutSource
	BodyLog   BodySource
	Flags     FlagSource // optional
	Publisher Publisher
	Guard     *resilience.Guard // optional, defaults to a "digest-publish" guard
	Metrics   *telemetry.DomainMetrics
	Now       func() time.Time
}

// RunMetrics tracks digest run statistics.
type RunMetrics struct {
	mu sync.RWMutex

	TotalRuns   int64
	SkippedRuns int64
	Published   int64
	Skipped     int64
	Failed      int64

	LastRunAt       time.Time
	LastRunDuration time.Duration
	TotalDuration   time.Duration
}

// RunResult contains the result of one digest run.
type RunResult struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Disabled  bool
	Users     int
	Published int
	Skipped   int
	Failed    int
	Errors    []UserError
}

// UserError records a failed digest.
type UserError struct {
	UserID string
	Error  string
}

// NewDigestJob creates a digest job.
func NewDigestJob(cfg DigestJobConfig) *DigestJob {
	guard := cfg.Guard
	if guard == nil {
		guard = resilience.NewGuard(resilience.GuardConfig{Name: "digest-publish"})
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &DigestJob{
		config:    cfg.Config.withDefaults(),
		logger:    cfg.Logger,
		profiles:  cfg.Profiles,
		workouts:  cfg.Workouts,
		bodyLog:   cfg.BodyLog,
		flags:     cfg.Flags,
		publisher: cfg.Publisher,
		guard:     guard,
		metrics:   cfg.Metrics,
		now:       now,
		stats:     &RunMetrics{},
	}
}

// Run digests every user with a profile. Per-user failures are counted and
// logged; only listing users or ctx cancellation fail the run.
func (j *DigestJob) Run(ctx context.Context) (*RunResult, error) {
	start := j.now()
	result := &RunResult{StartTime: start}

	if j.flags != nil && j.flags.IsCheckinDigestDisabled(ctx) {
		j.logger.Info().Msg("checkin digest disabled by feature flag")
		result.Disabled = true
		result.EndTime = start
		j.updateMetrics(result)
		return result, nil
	}

	userIDs, err := j.profiles.ListUserIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	result.Users = len(userIDs)

	j.logger.Info().
		Int("users", result.Users).
		Int("concurrency", j.config.Concurrency).
		Msg("starting weekly digest run")

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(j.config.Concurrency)

	for _, userID := range userIDs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			outcome, err := j.digestUser(gctx, userID, start)
			j.metrics.RecordDigest(gctx, outcome)

			mu.Lock()
			defer mu.Unlock()
			switch outcome {
			case OutcomePublished:
				result.Published++
			case OutcomeSkipped:
				result.Skipped++
			default:
				result.Failed++
				result.Errors = append(result.Errors, UserError{UserID: userID, Error: err.Error()})
			}
			return nil
		})
	}
	_ = g.Wait()

	result.EndTime = j.now()
	result.Duration = result.EndTime.Sub(start)
	j.updateMetrics(result)
	j.metrics.RecordDigestRun(ctx, result.Duration.Seconds(), result.Users)

	j.logger.Info().
		Dur("duration", result.Duration).
		Int("published", result.Published).
		Int("skipped", result.Skipped).
		Int("failed", result.Failed).
		Msg("weekly digest run completed")

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

func (j *DigestJob) digestUser(ctx context.Context, userID string, now time.Time) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	log := j.logger.With().Str("user_id", userID).Logger()

	plan, err := j.profiles.Plan(ctx, userID)
	if errors.Is(err, profile.ErrProfileNotFound) {
		log.Debug().Msg("profile removed before digest, skipping")
		return OutcomeSkipped, nil
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to generate plan")
		return OutcomeFailed, fmt.Errorf("generating plan: %w", err)
	}

	from, _ := DigestWindow(now)
	workouts, err := j.workouts.Since(ctx, userID, from)
	if err != nil {
		log.Error().Err(err).Msg("failed to load workouts")
		return OutcomeFailed, fmt.Errorf("loading workouts: %w", err)
	}
	entries, err := j.bodyLog.Since(ctx, userID, from)
	if err != nil {
		log.Error().Err(err).Msg("failed to load body entries")
		return OutcomeFailed, fmt.Errorf("loading body entries: %w", err)
	}

	digest := BuildDigest(userID, plan, workouts, entries, now)

	if err := j.guard.Do(ctx, func(ctx context.Context) error {
		return j.publisher.Publish(ctx, digest)
	}); err != nil {
		log.Error().Err(err).Msg("failed to publish digest")
		return OutcomeFailed, fmt.Errorf("publishing digest: %w", err)
	}

	log.Debug().
		Str("week", digest.Week).
		Float64("adherence", digest.Adherence).
		Msg("digest published")
	return OutcomePublished, nil
}

func (j *DigestJob) updateMetrics(result *RunResult) {
	j.stats.mu.Lock()
	defer j.stats.mu.Unlock()

	j.stats.TotalRuns++
	if result.Disabled {
		j.stats.SkippedRuns++
	}
	j.stats.Published += int64(result.Published)
	j.stats.Skipped += int64(result.Skipped)
	j.stats.Failed += int64(result.Failed)
	j.stats.LastRunAt = result.EndTime
	j.stats.LastRunDuration = result.Duration
	j.stats.TotalDuration += result.Duration
}

// GetMetrics returns a copy of the current metrics.
func (j *DigestJob) GetMetrics() RunMetrics {
	j.stats.mu.RLock()
	defer j.stats.mu.RUnlock()

	return RunMetrics{
		TotalRuns:       j.stats.TotalRuns,
		SkippedRuns:     j.stats.SkippedRuns,
		Published:       j.stats.Published,
		Skipped:         j.stats.Skipped,
		Failed:          j.stats.Failed,
		LastRunAt:       j.stats.LastRunAt,
		LastRunDuration: j.stats.LastRunDuration,
		TotalDuration:   j.stats.TotalDuration,
	}
}

// MetricsSnapshot returns a snapshot of the current metrics as a map.
func (j *DigestJob) MetricsSnapshot() map[string]interface{} {
	m := j.GetMetrics()
	return map[string]interface{}{
		"total_runs":         m.TotalRuns,
		"disabled_runs":      m.SkippedRuns,
		"digests_published":  m.Published,
		"digests_skipped":    m.Skipped,
		"digests_failed":     m.Failed,
		"last_run_at":        m.LastRunAt,
		"last_run_duration":  m.LastRunDuration.String(),
		"total_run_duration": m.TotalDuration.String(),
		"publish_breaker":    j.guard.State().String(),
	}
}
