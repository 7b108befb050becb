// Package profile stores each user's training profile.
//
// Profiles are always normalized before they are stored, so anything read
// back can be handed straight to the planner.
package profile

import (
	"time"

	"github.com/fitplan/fitplan/internal/planner"
)

// Stored is a user's saved profile.
type Stored struct {
	UserID    string
	Profile   planner.Profile
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s *Stored) clone() *Stored {
	c := *s
	c.Profile.Age = cloneInt(s.Profile.Age)
	c.Profile.HeightCm = cloneInt(s.Profile.HeightCm)
	c.Profile.WeightKg = cloneInt(s.Profile.WeightKg)
	return &c
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
