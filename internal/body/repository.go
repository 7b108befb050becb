package body

import (
	"context"
	"errors"
	"time"
)

// Repository errors.
var (
	ErrEntryNotFound = errors.New("body entry not found")
)

// ListOptions contains options for listing entries.
type ListOptions struct {
	Limit  int
	Cursor string
}

// ListResult contains the results of listing entries.
type ListResult struct {
	Items      []*Entry
	NextCursor string
}

// Repository defines the interface for body entry persistence.
// Listings are ordered newest first.
type Repository interface {
	List(ctx context.Context, userID string, opts ListOptions) (*ListResult, error)
	ListSince(ctx context.Context, userID string, from time.Time) ([]*Entry, error)
	Create(ctx context.Context, e *Entry) error
	Delete(ctx context.Context, userID, id string) error
	ReplaceAll(ctx context.Context, userID string, items []*Entry) error
}
