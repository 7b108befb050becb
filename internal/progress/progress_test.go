package progress_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitplan/fitplan/internal/api/models"
	"github.com/fitplan/fitplan/internal/body"
	"github.com/fitplan/fitplan/internal/progress"
	"github.com/fitplan/fitplan/internal/workout"
)

func day(s string) time.Time {
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestWeekKey(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2026-03-02", "2026-W10"},
		{"2026-03-08", "2026-W10"},
		{"2026-01-01", "2026-W01"},
		{"2025-12-29", "2026-W01"},
		{"2027-01-01", "2026-W53"},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			assert.Equal(t, tt.want, progress.WeekKey(day(tt.date)))
		})
	}
}

func TestWeekStart(t *testing.T) {
	assert.Equal(t, day("2026-03-02"), progress.WeekStart(day("2026-03-08").Add(15*time.Hour)))
	assert.Equal(t, day("2025-12-29"), progress.WeekStart(day("2026-01-01")))
}

func TestWeeklyWorkouts(t *testing.T) {
	items := []*workout.Workout{
		{Date: day("2026-03-02"), Minutes: 30},
		{Date: day("2026-03-08"), Minutes: 20},
		{Date: day("2026-02-24"), Minutes: 45},
		{Date: day("2026-02-01"), Minutes: 60},
	}

	buckets := progress.WeeklyWorkouts(items, 3, day("2026-03-05"))

	assert.Equal(t, []progress.WeekBucket{
		{Week: "2026-W08", Start: "2026-02-16", Sessions: 0, Minutes: 0},
		{Week: "2026-W09", Start: "2026-02-23", Sessions: 1, Minutes: 45},
		{Week: "2026-W10", Start: "2026-03-02", Sessions: 2, Minutes: 50},
	}, buckets)
}

func TestWeeklyWorkouts_DefaultWindow(t *testing.T) {
	assert.Len(t, progress.WeeklyWorkouts(nil, 0, day("2026-03-05")), progress.DefaultWeeks)
	assert.Len(t, progress.WeeklyWorkouts(nil, 400, day("2026-03-05")), progress.MaxWeeks)
}

func TestTrend(t *testing.T) {
	trend := progress.Trend([]*body.Entry{
		{Date: day("2026-03-08"), WeightKg: 80.6},
		{Date: day("2026-03-01"), WeightKg: 82},
		{Date: day("2026-03-04"), WeightKg: 81.2},
	})

	require.Len(t, trend.Points, 3)
	assert.Equal(t, models.Date("2026-03-01"), trend.Points[0].Date)
	require.NotNil(t, trend.ChangeKg)
	assert.InDelta(t, -1.4, *trend.ChangeKg, 0.0001)
	assert.InDelta(t, 82, *trend.FirstKg, 0.0001)
	assert.InDelta(t, 80.6, *trend.LatestKg, 0.0001)
}

func TestTrend_SingleSample(t *testing.T) {
	trend := progress.Trend([]*body.Entry{{Date: day("2026-03-01"), WeightKg: 82}})

	assert.Len(t, trend.Points, 1)
	assert.Nil(t, trend.ChangeKg)
}

func TestService_Report(t *testing.T) {
	ctx := context.Background()
	workouts := workout.NewService(workout.NewInMemoryRepository())
	entries := body.NewService(body.NewInMemoryRepository())

	today := models.DateOf(time.Now().UTC())
	_, err := workouts.Create(ctx, "usr_1", &models.WorkoutCreateRequest{Date: today, Minutes: 40})
	require.NoError(t, err)
	_, err = entries.Create(ctx, "usr_1", &models.BodyEntryCreateRequest{Date: "2026-01-01", WeightKg: 80})
	require.NoError(t, err)
	_, err = entries.Create(ctx, "usr_1", &models.BodyEntryCreateRequest{Date: "2026-01-15", WeightKg: 79})
	require.NoError(t, err)

	report, err := progress.NewService(workouts, entries).Report(ctx, "usr_1", 4)
	require.NoError(t, err)

	require.Len(t, report.Weeks, 4)
	last := report.Weeks[3]
	assert.Equal(t, 1, last.Sessions)
	assert.Equal(t, 40, last.Minutes)
	require.NotNil(t, report.Weight.ChangeKg)
	assert.InDelta(t, -1.0, *report.Weight.ChangeKg, 0.0001)
}
