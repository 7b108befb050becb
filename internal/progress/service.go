package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/fitplan/fitplan/internal/body"
	"github.com/fitplan/fitplan/internal/workout"
)

// WorkoutSource lists a user's workouts.
type WorkoutSource interface {
	Since(ctx context.Context, userID string, from time.Time) ([]*workout.Workout, error)
}

// BodySource lists a user's body entries.
type BodySource interface {
	Since(ctx context.Context, userID string, from time.Time) ([]*body.Entry, error)
}

// Report is the progress overview of a user.
type Report struct {
	Weeks  []WeekBucket `json:"weeks"`
	Weight WeightTrend  `json:"weight"`
}

// Service builds progress reports from the logs.
type Service struct {
	workouts WorkoutSource
	body     BodySource
	now      func() time.Time
}

// NewService creates a new progress service.
func NewService(workouts WorkoutSource, body BodySource) *Service {
	return &Service{workouts: workouts, body: body, now: time.Now}
}

// Report returns the last weeks ISO weeks of workouts and the full weight trend.
func (s *Service) Report(ctx context.Context, userID string, weeks int) (*Report, error) {
	if weeks <= 0 || weeks > MaxWeeks {
		weeks = DefaultWeeks
	}
	now := s.now().UTC()
	from := WeekStart(now).AddDate(0, 0, -7*(weeks-1))

	items, err := s.workouts.Since(ctx, userID, from)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	entries, err := s.body.Since(ctx, userID, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("list body entries: %w", err)
	}

	return &Report{
		Weeks:  WeeklyWorkouts(items, weeks, now),
		Weight: Trend(entries),
	}, nil
}
