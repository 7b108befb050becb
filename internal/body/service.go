package body

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fitplan/fitplan/internal/api/models"
)

// Validation constants.
const (
	MinWeightKg    = 30
	MaxWeightKg    = 400
	MinWaistCm     = 30
	MaxWaistCm     = 250
	MaxNotesLength = 500

	DefaultListLimit = 50
)

// Service provides body log operations.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new body log service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// List retrieves a page of the user's entries, newest first.
func (s *Service) List(ctx context.Context, userID string, limit int, cursor string) (*models.PagedBodyEntries, error) {
	if limit <= 0 || limit > DefaultListLimit {
		limit = DefaultListLimit
	}

	result, err := s.repo.List(ctx, userID, ListOptions{Limit: limit, Cursor: cursor})
	if err != nil {
		return nil, err
	}

	items := make([]models.BodyEntry, 0, len(result.Items))
	for _, e := range result.Items {
		items = append(items, ToAPI(e))
	}

	var nextCursor *string
	if result.NextCursor != "" {
		nextCursor = &result.NextCursor
	}
	return &models.PagedBodyEntries{
		Items: items,
		Meta:  models.PagedResponseMeta{Limit: limit, NextCursor: nextCursor},
	}, nil
}

// Create logs a body measurement.
func (s *Service) Create(ctx context.Context, userID string, input *models.BodyEntryCreateRequest) (*models.BodyEntry, error) {
	e, fieldErrors := s.build(input)
	if err := models.NewValidationError(fieldErrors); err != nil {
		return nil, err
	}

	e.ID = newID()
	e.UserID = userID
	e.CreatedAt = s.now()
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	result := ToAPI(e)
	return &result, nil
}

// Delete removes one of the user's entries.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}

// DeleteAll removes the user's whole history.
func (s *Service) DeleteAll(ctx context.Context, userID string) error {
	return s.repo.ReplaceAll(ctx, userID, nil)
}

// Since returns the user's entries dated on or after from, newest first.
func (s *Service) Since(ctx context.Context, userID string, from time.Time) ([]*Entry, error) {
	return s.repo.ListSince(ctx, userID, from)
}

// Export returns every entry of the user in API form.
func (s *Service) Export(ctx context.Context, userID string) ([]models.BodyEntry, error) {
	items, err := s.repo.ListSince(ctx, userID, time.Time{})
	if err != nil {
		return nil, err
	}
	out := make([]models.BodyEntry, 0, len(items))
	for _, e := range items {
		out = append(out, ToAPI(e))
	}
	return out, nil
}

// Import replaces the user's entries with the valid records and returns how many were kept.
func (s *Service) Import(ctx context.Context, userID string, records []models.BodyEntry) (int, error) {
	now := s.now()
	kept := make([]*Entry, 0, len(records))
	for _, rec := range records {
		if rec.Date == "" {
			continue
		}
		e, fieldErrors := s.build(&models.BodyEntryCreateRequest{
			Date:     rec.Date,
			WeightKg: rec.WeightKg,
			WaistCm:  rec.WaistCm,
			Notes:    rec.Notes,
		})
		if len(fieldErrors) > 0 {
			continue
		}
		e.ID = newID()
		e.UserID = userID
		e.CreatedAt = rec.CreatedAt.Time()
		if e.CreatedAt.IsZero() {
			e.CreatedAt = now
		}
		kept = append(kept, e)
	}

	if err := s.repo.ReplaceAll(ctx, userID, kept); err != nil {
		return 0, fmt.Errorf("replace body entries: %w", err)
	}
	return len(kept), nil
}

func (s *Service) build(input *models.BodyEntryCreateRequest) (*Entry, []models.FieldError) {
	var errs []models.FieldError

	e := &Entry{
		WeightKg: input.WeightKg,
		Notes:    strings.TrimSpace(input.Notes),
	}

	if input.Date == "" {
		e.Date = models.TruncateDay(s.now())
	} else if d, err := input.Date.Parse(); err != nil {
		errs = append(errs, models.FieldError{Field: "date", Message: "must be YYYY-MM-DD", Code: models.CodeInvalid})
	} else {
		e.Date = d
	}

	if math.IsNaN(e.WeightKg) || e.WeightKg < MinWeightKg || e.WeightKg > MaxWeightKg {
		errs = append(errs, models.FieldError{Field: "weightKg", Message: fmt.Sprintf("must be between %d and %d", MinWeightKg, MaxWeightKg), Code: models.CodeOutOfRange})
	}

	if input.WaistCm != nil && *input.WaistCm != 0 {
		if *input.WaistCm < MinWaistCm || *input.WaistCm > MaxWaistCm {
			errs = append(errs, models.FieldError{Field: "waistCm", Message: fmt.Sprintf("must be between %d and %d", MinWaistCm, MaxWaistCm), Code: models.CodeOutOfRange})
		} else {
			waist := *input.WaistCm
			e.WaistCm = &waist
		}
	}

	if len(e.Notes) > MaxNotesLength {
		errs = append(errs, models.FieldError{Field: "notes", Message: fmt.Sprintf("must be at most %d characters", MaxNotesLength), Code: models.CodeTooLong})
	}

	return e, errs
}

// ToAPI converts an entry to its API representation.
func ToAPI(e *Entry) models.BodyEntry {
	return models.BodyEntry{
		ID:        e.ID,
		Date:      models.DateOf(e.Date),
		WeightKg:  e.WeightKg,
		WaistCm:   e.WaistCm,
		Notes:     e.Notes,
		CreatedAt: models.Timestamp(e.CreatedAt),
	}
}

func newID() string {
	return "bdy_" + uuid.New().String()[:22]
}
