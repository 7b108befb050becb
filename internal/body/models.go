// Package body stores body weight and waist measurements.
package body

import "time"

// Entry is a single body measurement.
type Entry struct {
	ID        string
	UserID    string
	Date      time.Time
	WeightKg  float64
	WaistCm   *float64
	Notes     string
	CreatedAt time.Time
}

func (e *Entry) clone() *Entry {
	cpy := *e
	if e.WaistCm != nil {
		waist := *e.WaistCm
		cpy.WaistCm = &waist
	}
	return &cpy
}

func newer(a, b *Entry) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.After(b.Date)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}
