package workout

import (
	"context"
	"errors"
	"time"
)

// Repository errors.
var (
	ErrWorkoutNotFound = errors.New("workout not found")
)

// ListOptions contains options for listing workouts.
type ListOptions struct {
	Limit  int
	Cursor string
}

// ListResult contains the results of listing workouts.
type ListResult struct {
	Items      []*Workout
	NextCursor string
}

// Repository defines the interface for workout persistence.
// Listings are ordered newest first by date, then creation time.
type Repository interface {
	// Get retrieves a workout owned by userID.
	Get(ctx context.Context, userID, id string) (*Workout, error)

	// List retrieves a page of a user's workouts.
	List(ctx context.Context, userID string, opts ListOptions) (*ListResult, error)

	// ListSince retrieves every workout dated on or after from.
	// A zero from returns the full history.
	ListSince(ctx context.Context, userID string, from time.Time) ([]*Workout, error)

	// Create stores a new workout.
	Create(ctx context.Context, w *Workout) error

	// Delete removes a workout owned by userID.
	// Returns ErrWorkoutNotFound if it does not exist.
	Delete(ctx context.Context, userID, id string) error

	// ReplaceAll swaps the user's history for items in one step.
	ReplaceAll(ctx context.Context, userID string, items []*Workout) error
}
