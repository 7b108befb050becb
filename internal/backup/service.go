package backup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fitplan/fitplan/internal/api/models"
	"github.com/fitplan/fitplan/internal/planner"
	"github.com/fitplan/fitplan/internal/profile"
)

// ProfileStore reads and writes a user's profile.
type ProfileStore interface {
	Profile(ctx context.Context, userID string) (planner.Profile, error)
	Upsert(ctx context.Context, userID string, raw planner.RawProfile) (*models.ProfileResponse, error)
}

// WorkoutStore exports and replaces a user's workouts.
type WorkoutStore interface {
	Export(ctx context.Context, userID string) ([]models.Workout, error)
	Import(ctx context.Context, userID string, records []models.Workout) (int, error)
}

// BodyStore exports and replaces a user's body entries.
type BodyStore interface {
	Export(ctx context.Context, userID string) ([]models.BodyEntry, error)
	Import(ctx context.Context, userID string, records []models.BodyEntry) (int, error)
}

// ImportResult reports what an import kept.
type ImportResult struct {
	SourceVersion int  `json:"sourceVersion"`
	Profile       bool `json:"profile"`
	Workouts      int  `json:"workouts"`
	BodyEntries   int  `json:"bodyEntries"`
	Dropped       int  `json:"dropped"`
}

// Service exports and imports snapshots.
type Service struct {
	profiles ProfileStore
	workouts WorkoutStore
	body     BodyStore
	now      func() time.Time
}

// NewService creates a new backup service.
func NewService(profiles ProfileStore, workouts WorkoutStore, body BodyStore) *Service {
	return &Service{
		profiles: profiles,
		workouts: workouts,
		body:     body,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Export returns a snapshot of the user's data. Profile is nil if none is stored.
func (s *Service) Export(ctx context.Context, userID string) (*Snapshot, error) {
	snap := &Snapshot{
		Version:    Version,
		ExportedAt: models.Timestamp(s.now()),
	}

	p, err := s.profiles.Profile(ctx, userID)
	switch {
	case err == nil:
		raw := p.Raw()
		snap.Profile = &raw
	case !errors.Is(err, profile.ErrProfileNotFound):
		return nil, fmt.Errorf("export profile: %w", err)
	}

	if snap.Workouts, err = s.workouts.Export(ctx, userID); err != nil {
		return nil, fmt.Errorf("export workouts: %w", err)
	}
	if snap.BodyLog, err = s.body.Export(ctx, userID); err != nil {
		return nil, fmt.Errorf("export body log: %w", err)
	}
	return snap, nil
}

// Import migrates data and replaces the user's logs with it.
// The stored profile is replaced only when the snapshot carries one.
func (s *Service) Import(ctx context.Context, userID string, data []byte) (*ImportResult, error) {
	decoded, err := Decode(data)
	if err != nil {
		return nil, err
	}
	snap := decoded.Snapshot

	result := &ImportResult{SourceVersion: decoded.SourceVersion}
	if snap.Profile != nil {
		if _, err := s.profiles.Upsert(ctx, userID, *snap.Profile); err != nil {
			return nil, fmt.Errorf("import profile: %w", err)
		}
		result.Profile = true
	}

	if result.Workouts, err = s.workouts.Import(ctx, userID, snap.Workouts); err != nil {
		return nil, fmt.Errorf("import workouts: %w", err)
	}
	if result.BodyEntries, err = s.body.Import(ctx, userID, snap.BodyLog); err != nil {
		return nil, fmt.Errorf("import body log: %w", err)
	}

	result.Dropped = decoded.Dropped +
		len(snap.Workouts) - result.Workouts +
		len(snap.BodyLog) - result.BodyEntries
	return result, nil
}
