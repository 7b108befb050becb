package worker

import (
	"math"
	"time"

	"github.com/fitplan/fitplan/internal/api/models"
	"github.com/fitplan/fitplan/internal/body"
	"github.com/fitplan/fitplan/internal/planner"
	"github.com/fitplan/fitplan/internal/progress"
	"github.com/fitplan/fitplan/internal/workout"
)

// Digest summarizes one user's previous ISO week against their plan.
type Digest struct {
	UserID            string        `json:"userId"`
	Week              string        `json:"week"`
	WeekStart         models.Date   `json:"weekStart"`
	Split             planner.Split `json:"split"`
	PlannedSessions   int           `json:"plannedSessions"`
	CompletedSessions int           `json:"completedSessions"`
	Minutes           int           `json:"minutes"`
	Adherence         float64       `json:"adherence"`
	WeightChangeKg    *float64      `json:"weightChangeKg"`
	LatestWeightKg    *float64      `json:"latestWeightKg"`
	GeneratedAt       time.Time     `json:"generatedAt"`
}

// DigestWindow returns the bounds of the last full ISO week before now.
// The end is exclusive.
func DigestWindow(now time.Time) (start, end time.Time) {
	end = progress.WeekStart(now)
	return end.AddDate(0, 0, -7), end
}

// BuildDigest compares the plan's active days with the workouts logged in
// the week before now. Adherence is completed over planned, capped at 1.
func BuildDigest(userID string, plan *planner.Plan, workouts []*workout.Workout, entries []*body.Entry, now time.Time) *Digest {
	start, end := DigestWindow(now)

	d := &Digest{
		UserID:      userID,
		Week:        progress.WeekKey(start),
		WeekStart:   models.DateOf(start),
		GeneratedAt: now.UTC(),
	}
	if plan != nil {
		d.Split = plan.Training.Split
		d.PlannedSessions = plan.Training.ActiveDays()
	}

	for _, w := range workouts {
		if !inWindow(w.Date, start, end) {
			continue
		}
		d.CompletedSessions++
		d.Minutes += w.Minutes
	}

	if d.PlannedSessions > 0 {
		ratio := math.Min(1, float64(d.CompletedSessions)/float64(d.PlannedSessions))
		d.Adherence = math.Round(ratio*100) / 100
	}

	week := make([]*body.Entry, 0, len(entries))
	for _, e := range entries {
		if inWindow(e.Date, start, end) {
			week = append(week, e)
		}
	}
	trend := progress.Trend(week)
	d.WeightChangeKg = trend.ChangeKg
	if n := len(trend.Points); n > 0 {
		latest := trend.Points[n-1].WeightKg
		d.LatestWeightKg = &latest
	}

	return d
}

func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
