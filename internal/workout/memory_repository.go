package workout

import (
	"context"
	"sort"
	"sync"
	"time"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use PostgresRepository.
type InMemoryRepository struct {
	mu       sync.RWMutex
	workouts map[string]*Workout
}

// NewInMemoryRepository creates a new in-memory workout repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		workouts: make(map[string]*Workout),
	}
}

// Get retrieves a workout owned by userID.
func (r *InMemoryRepository) Get(_ context.Context, userID, id string) (*Workout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.workouts[id]
	if !ok || w.UserID != userID {
		return nil, ErrWorkoutNotFound
	}
	return w.clone(), nil
}

// List retrieves a page of a user's workouts.
func (r *InMemoryRepository) List(_ context.Context, userID string, opts ListOptions) (*ListResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sorted := r.sortedLocked(userID, time.Time{})

	start := 0
	if opts.Cursor != "" {
		start = len(sorted)
		for i, w := range sorted {
			if w.ID == opts.Cursor {
				start = i + 1
				break
			}
		}
	}
	sorted = sorted[start:]

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	result := &ListResult{Items: sorted}
	if len(sorted) > limit {
		result.Items = sorted[:limit]
		result.NextCursor = sorted[limit-1].ID
	}
	return result, nil
}

// ListSince retrieves every workout dated on or after from.
func (r *InMemoryRepository) ListSince(_ context.Context, userID string, from time.Time) ([]*Workout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedLocked(userID, from), nil
}

func (r *InMemoryRepository) sortedLocked(userID string, from time.Time) []*Workout {
	items := make([]*Workout, 0)
	for _, w := range r.workouts {
		if w.UserID != userID || w.Date.Before(from) {
			continue
		}
		items = append(items, w.clone())
	}
	sort.Slice(items, func(i, j int) bool { return newer(items[i], items[j]) })
	return items
}

// Create stores a new workout.
func (r *InMemoryRepository) Create(_ context.Context, w *Workout) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.workouts[w.ID] = w.clone()
	return nil
}

// Delete removes a workout owned by userID.
func (r *InMemoryRepository) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.workouts[id]
	if !ok || w.UserID != userID {
		return ErrWorkoutNotFound
	}
	delete(r.workouts, id)
	return nil
}

// ReplaceAll swaps the user's history for items.
func (r *InMemoryRepository) ReplaceAll(_ context.Context, userID string, items []*Workout) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, w := range r.workouts {
		if w.UserID == userID {
			delete(r.workouts, id)
		}
	}
	for _, w := range items {
		cpy := w.clone()
		cpy.UserID = userID
		r.workouts[cpy.ID] = cpy
	}
	return nil
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
