// Package progress summarizes logged workouts and body measurements.
package progress

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/fitplan/fitplan/internal/api/models"
	"github.com/fitplan/fitplan/internal/body"
	"github.com/fitplan/fitplan/internal/workout"
)

// Week window bounds.
const (
	DefaultWeeks = 8
	MaxWeeks     = 52
)

// WeekBucket counts the sessions logged in one ISO week.
type WeekBucket struct {
	Week     string      `json:"week"`
	Start    models.Date `json:"start"`
	Sessions int         `json:"sessions"`
	Minutes  int         `json:"minutes"`
}

// WeightPoint is one body weight sample.
type WeightPoint struct {
	Date     models.Date `json:"date"`
	WeightKg float64     `json:"weightKg"`
}

// WeightTrend is the weight history in chronological order.
// First, Latest and ChangeKg are null until at least two samples exist.
type WeightTrend struct {
	Points   []WeightPoint `json:"points"`
	FirstKg  *float64      `json:"firstKg"`
	LatestKg *float64      `json:"latestKg"`
	ChangeKg *float64      `json:"changeKg"`
}

// WeekKey labels the ISO week containing t as YYYY-Www.
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// WeekStart returns midnight UTC of the Monday of t's ISO week.
func WeekStart(t time.Time) time.Time {
	day := models.TruncateDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// WeeklyWorkouts buckets items into the last weeks ISO weeks ending with
// the week of now, oldest first. Weeks without sessions are zero.
func WeeklyWorkouts(items []*workout.Workout, weeks int, now time.Time) []WeekBucket {
	if weeks <= 0 {
		weeks = DefaultWeeks
	}
	if weeks > MaxWeeks {
		weeks = MaxWeeks
	}

	first := WeekStart(now).AddDate(0, 0, -7*(weeks-1))
	buckets := make([]WeekBucket, weeks)
	index := make(map[string]int, weeks)
	for i := range buckets {
		start := first.AddDate(0, 0, 7*i)
		buckets[i] = WeekBucket{Week: WeekKey(start), Start: models.DateOf(start)}
		index[buckets[i].Week] = i
	}

	for _, w := range items {
		i, ok := index[WeekKey(w.Date)]
		if !ok {
			continue
		}
		buckets[i].Sessions++
		buckets[i].Minutes += w.Minutes
	}
	return buckets
}

// Trend orders entries by date and reports the change from first to latest.
func Trend(entries []*body.Entry) WeightTrend {
	sorted := make([]*body.Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.Before(sorted[j].Date)
		}
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	trend := WeightTrend{Points: make([]WeightPoint, 0, len(sorted))}
	for _, e := range sorted {
		if math.IsNaN(e.WeightKg) || math.IsInf(e.WeightKg, 0) {
			continue
		}
		trend.Points = append(trend.Points, WeightPoint{Date: models.DateOf(e.Date), WeightKg: e.WeightKg})
	}

	if len(trend.Points) < 2 {
		return trend
	}
	first := trend.Points[0].WeightKg
	latest := trend.Points[len(trend.Points)-1].WeightKg
	change := math.Round((latest-first)*10) / 10
	trend.FirstKg = &first
	trend.LatestKg = &latest
	trend.ChangeKg = &change
	return trend
}
