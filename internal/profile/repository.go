package profile

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// Repository errors.
var (
	ErrProfileNotFound = errors.New("profile not found")
)

// Repository defines persistence for stored profiles.
type Repository interface {
	// Get retrieves the profile of a user.
	Get(ctx context.Context, userID string) (*Stored, error)

	// Upsert creates or replaces the profile of a user.
	Upsert(ctx context.Context, p *Stored) error

	// Delete removes the profile of a user.
	Delete(ctx context.Context, userID string) error

	// ListUserIDs returns the IDs of users that have a profile.
	ListUserIDs(ctx context.Context) ([]string, error)
}

// InMemoryRepository is an in-memory Repository.
type InMemoryRepository struct {
	mu       sync.RWMutex
	profiles map[string]*Stored
}

var _ Repository = (*InMemoryRepository)(nil)

// NewInMemoryRepository creates a new in-memory profile repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{profiles: make(map[string]*Stored)}
}

// Get retrieves the profile of a user.
func (r *InMemoryRepository) Get(_ context.Context, userID string) (*Stored, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[userID]
	if !ok {
		return nil, ErrProfileNotFound
	}
	return p.clone(), nil
}

// Upsert creates or replaces the profile of a user.
func (r *InMemoryRepository) Upsert(_ context.Context, p *Stored) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.profiles[p.UserID]; ok {
		p.CreatedAt = existing.CreatedAt
	}
	r.profiles[p.UserID] = p.clone()
	return nil
}

// Delete removes the profile of a user.
func (r *InMemoryRepository) Delete(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[userID]; !ok {
		return ErrProfileNotFound
	}
	delete(r.profiles, userID)
	return nil
}

// ListUserIDs returns the IDs of users that have a profile, sorted.
func (r *InMemoryRepository) ListUserIDs(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.profiles))
	for id := range r.profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
