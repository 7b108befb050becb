package profile

import (
	"context"
	"time"

	"github.com/fitplan/fitplan/internal/api/models"
	"github.com/fitplan/fitplan/internal/planner"
)

// Service provides profile operations.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new profile service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// Get returns the stored profile with its energy estimate.
func (s *Service) Get(ctx context.Context, userID string) (*models.ProfileResponse, error) {
	stored, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toAPIProfile(stored), nil
}

// Upsert normalizes raw and stores it as the user's profile.
func (s *Service) Upsert(ctx context.Context, userID string, raw planner.RawProfile) (*models.ProfileResponse, error) {
	now := s.now()
	stored := &Stored{
		UserID:    userID,
		Profile:   planner.Normalize(raw),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Upsert(ctx, stored); err != nil {
		return nil, err
	}
	return toAPIProfile(stored), nil
}

// Delete removes the user's profile.
func (s *Service) Delete(ctx context.Context, userID string) error {
	return s.repo.Delete(ctx, userID)
}

// Profile returns the canonical profile of a user.
func (s *Service) Profile(ctx context.Context, userID string) (planner.Profile, error) {
	stored, err := s.repo.Get(ctx, userID)
	if err != nil {
		return planner.Profile{}, err
	}
	return stored.Profile, nil
}

// Plan generates a fresh plan from the user's stored profile. Plans are not persisted.
func (s *Service) Plan(ctx context.Context, userID string) (*planner.Plan, error) {
	p, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	plan := planner.GeneratePlanAt(p.Raw(), s.now())
	return &plan, nil
}

// ListUserIDs returns the users that have a profile.
func (s *Service) ListUserIDs(ctx context.Context) ([]string, error) {
	return s.repo.ListUserIDs(ctx)
}

func toAPIProfile(s *Stored) *models.ProfileResponse {
	return &models.ProfileResponse{
		Profile:   s.Profile,
		Energy:    planner.EstimateEnergy(s.Profile),
		CreatedAt: models.Timestamp(s.CreatedAt),
		UpdatedAt: models.Timestamp(s.UpdatedAt),
	}
}
