// Package workout stores the sessions a user logs against their plan.
package workout

import "time"

// Type is the kind of session logged.
type Type string

const (
	TypeStrength Type = "strength"
	TypeCardio   Type = "cardio"
	TypeMobility Type = "mobility"
)

// Valid reports whether t is a known workout type.
func (t Type) Valid() bool {
	switch t {
	case TypeStrength, TypeCardio, TypeMobility:
		return true
	}
	return false
}

// DefaultTitle is the title used when a workout is logged without one.
func (t Type) DefaultTitle() string {
	switch t {
	case TypeStrength:
		return "Strength session"
	case TypeCardio:
		return "Cardio session"
	default:
		return "Mobility session"
	}
}

// Workout is a single logged session.
type Workout struct {
	ID        string
	UserID    string
	Date      time.Time
	Title     string
	Type      Type
	Minutes   int
	RPE       *int
	Notes     string
	CreatedAt time.Time
}

func (w *Workout) clone() *Workout {
	cpy := *w
	if w.RPE != nil {
		rpe := *w.RPE
		cpy.RPE = &rpe
	}
	return &cpy
}

// newer reports whether a sorts before b in a newest-first listing.
func newer(a, b *Workout) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.After(b.Date)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}
