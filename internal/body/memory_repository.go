package body

import (
	"context"
	"sort"
	"sync"
	"time"
)

// InMemoryRepository is an in-memory implementation of Repository.
type InMemoryRepository struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

var _ Repository = (*InMemoryRepository)(nil)

// NewInMemoryRepository creates a new in-memory body repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{entries: make(map[string]*Entry)}
}

// List retrieves a page of a user's entries.
func (r *InMemoryRepository) List(_ context.Context, userID string, opts ListOptions) (*ListResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sorted := r.sortedLocked(userID, time.Time{})
	if opts.Cursor != "" {
		start := len(sorted)
		for i, e := range sorted {
			if e.ID == opts.Cursor {
				start = i + 1
				break
			}
		}
		sorted = sorted[start:]
	}

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

// ListSince retrieves every entry dated on or after from.
func (r *InMemoryRepository) ListSince(_ context.Context, userID string, from time.Time) ([]*Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedLocked(userID, from), nil
}

func (r *InMemoryRepository) sortedLocked(userID string, from time.Time) []*Entry {
	items := make([]*Entry, 0)
	for _, e := range r.entries {
		if e.UserID == userID && !e.Date.Before(from) {
			items = append(items, e.clone())
		}
	}
	sort.Slice(items, func(i, j int) bool { return newer(items[i], items[j]) })
	return items
}

// Create stores a new entry.
func (r *InMemoryRepository) Create(_ context.Context, e *Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[e.ID] = e.clone()
	return nil
}

// Delete removes an entry owned by userID.
func (r *InMemoryRepository) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok || e.UserID != userID {
		return ErrEntryNotFound
	}
	delete(r.entries, id)
	return nil
}

// ReplaceAll swaps the user's entries for items.
func (r *InMemoryRepository) ReplaceAll(_ context.Context, userID string, items []*Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, e := range r.entries {
		if e.UserID == userID {
			delete(r.entries, id)
		}
	}
	for _, e := range items {
		cpy := e.clone()
		cpy.UserID = userID
		r.entries[cpy.ID] = cpy
	}
	return nil
}
