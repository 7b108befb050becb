package models

import "github.com/fitplan/fitplan/internal/planner"

// Range is an inclusive integer range with the value used when input is missing.
type Range struct {
	Min     int  `json:"min"`
	Max     int  `json:"max"`
	Default *int `json:"default,omitempty"`
}

// Enums lists the values clients may offer in profile and log forms.
type Enums struct {
	Sexes          []planner.Sex           `json:"sexes"`
	Goals          []planner.Goal          `json:"goals"`
	Experience     []planner.Experience    `json:"experience"`
	Equipment      []planner.Equipment     `json:"equipment"`
	ActivityLevels []planner.ActivityLevel `json:"activityLevels"`
	WorkoutTypes   []string                `json:"workoutTypes"`
	Age            Range                   `json:"age"`
	HeightCm       Range                   `json:"heightCm"`
	WeightKg       Range                   `json:"weightKg"`
	DaysPerWeek    Range                   `json:"daysPerWeek"`
	SessionMinutes Range                   `json:"sessionMinutes"`
}
