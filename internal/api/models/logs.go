package models

// Workout is a logged training session.
type Workout struct {
	ID        string    `json:"id"`
	Date      Date      `json:"date"`
	Title     string    `json:"title"`
	Type      string    `json:"type"`
	Minutes   int       `json:"minutes"`
	RPE       *int      `json:"rpe"`
	Notes     string    `json:"notes"`
	CreatedAt Timestamp `json:"createdAt"`
}

// WorkoutCreateRequest is the body of POST /v1/me/workouts.
// Date defaults to today, Type to strength. An RPE of 0 means not rated.
type WorkoutCreateRequest struct {
	Date    Date   `json:"date,omitempty"`
	Title   string `json:"title,omitempty"`
	Type    string `json:"type,omitempty"`
	Minutes int    `json:"minutes"`
	RPE     *int   `json:"rpe,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// PagedWorkouts is a page of workouts, newest first.
type PagedWorkouts struct {
	Items []Workout         `json:"items"`
	Meta  PagedResponseMeta `json:"meta"`
}

// BodyEntry is a logged body measurement.
type BodyEntry struct {
	ID        string    `json:"id"`
	Date      Date      `json:"date"`
	WeightKg  float64   `json:"weightKg"`
	WaistCm   *float64  `json:"waistCm"`
	Notes     string    `json:"notes"`
	CreatedAt Timestamp `json:"createdAt"`
}

// BodyEntryCreateRequest is the body of POST /v1/me/body.
// A WaistCm of 0 means not measured.
type BodyEntryCreateRequest struct {
	Date     Date     `json:"date,omitempty"`
	WeightKg float64  `json:"weightKg"`
	WaistCm  *float64 `json:"waistCm,omitempty"`
	Notes    string   `json:"notes,omitempty"`
}

// PagedBodyEntries is a page of body entries, newest first.
type PagedBodyEntries struct {
	Items []BodyEntry       `json:"items"`
	Meta  PagedResponseMeta `json:"meta"`
}
