package workout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fitplan/fitplan/internal/api/models"
)

// Validation constants.
const (
	MinMinutes     = 5
	MaxMinutes     = 600
	MinRPE         = 1
	MaxRPE         = 10
	MaxTitleLength = 80
	MaxNotesLength = 500

	// DefaultListLimit is both the default and the largest page size.
	DefaultListLimit = 50
)

// Service provides workout log operations.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new workout service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// List retrieves a page of the user's workouts, newest first.
func (s *Service) List(ctx context.Context, userID string, limit int, cursor string) (*models.PagedWorkouts, error) {
	if limit <= 0 || limit > DefaultListLimit {
		limit = DefaultListLimit
	}

	result, err := s.repo.List(ctx, userID, ListOptions{Limit: limit, Cursor: cursor})
	if err != nil {
		return nil, err
	}

	items := make([]models.Workout, 0, len(result.Items))
	for _, w := range result.Items {
		items = append(items, ToAPI(w))
	}

	var nextCursor *string
	if result.NextCursor != "" {
		nextCursor = &result.NextCursor
	}

	return &models.PagedWorkouts{
		Items: items,
		Meta: models.PagedResponseMeta{
			Limit:      limit,
			NextCursor: nextCursor,
		},
	}, nil
}

// Create logs a workout for a user.
func (s *Service) Create(ctx context.Context, userID string, input *models.WorkoutCreateRequest) (*models.Workout, error) {
	w, fieldErrors := s.build(input)
	if err := models.NewValidationError(fieldErrors); err != nil {
		return nil, err
	}

	w.ID = newID()
	w.UserID = userID
	w.CreatedAt = s.now()

	if err := s.repo.Create(ctx, w); err != nil {
		return nil, err
	}

	result := ToAPI(w)
	return &result, nil
}

// Delete removes one of the user's workouts.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}

// DeleteAll removes the user's whole history.
func (s *Service) DeleteAll(ctx context.Context, userID string) error {
	return s.repo.ReplaceAll(ctx, userID, nil)
}

// Since returns the user's workouts dated on or after from, newest first.
func (s *Service) Since(ctx context.Context, userID string, from time.Time) ([]*Workout, error) {
	return s.repo.ListSince(ctx, userID, from)
}

// Export returns the user's full history in API form.
func (s *Service) Export(ctx context.Context, userID string) ([]models.Workout, error) {
	items, err := s.repo.ListSince(ctx, userID, time.Time{})
	if err != nil {
		return nil, err
	}
	out := make([]models.Workout, 0, len(items))
	for _, w := range items {
		out = append(out, ToAPI(w))
	}
	return out, nil
}

// Import replaces the user's history with records. Records that would fail
// Create's validation are skipped. It returns the number kept.
func (s *Service) Import(ctx context.Context, userID string, records []models.Workout) (int, error) {
	now := s.now()
	kept := make([]*Workout, 0, len(records))
	for _, rec := range records {
		w, fieldErrors := s.build(&models.WorkoutCreateRequest{
			Date:    rec.Date,
			Title:   rec.Title,
			Type:    rec.Type,
			Minutes: rec.Minutes,
			RPE:     rec.RPE,
			Notes:   rec.Notes,
		})
		if len(fieldErrors) > 0 || rec.Date == "" {
			continue
		}
		w.ID = newID()
		w.UserID = userID
		w.CreatedAt = rec.CreatedAt.Time()
		if w.CreatedAt.IsZero() {
			w.CreatedAt = now
		}
		kept = append(kept, w)
	}

	if err := s.repo.ReplaceAll(ctx, userID, kept); err != nil {
		return 0, fmt.Errorf("replace workouts: %w", err)
	}
	return len(kept), nil
}

// build validates input and applies defaults.
func (s *Service) build(input *models.WorkoutCreateRequest) (*Workout, []models.FieldError) {
	var errs []models.FieldError

	w := &Workout{
		Title:   strings.TrimSpace(input.Title),
		Type:    Type(input.Type),
		Minutes: input.Minutes,
		Notes:   strings.TrimSpace(input.Notes),
	}

	if input.Date == "" {
		w.Date = models.TruncateDay(s.now())
	} else if d, err := input.Date.Parse(); err != nil {
		errs = append(errs, models.FieldError{Field: "date", Message: "must be YYYY-MM-DD", Code: models.CodeInvalid})
	} else {
		w.Date = d
	}

	if w.Type == "" {
		w.Type = TypeStrength
	}
	if !w.Type.Valid() {
		errs = append(errs, models.FieldError{Field: "type", Message: "must be strength, cardio or mobility", Code: models.CodeUnsupported})
	}

	if w.Title == "" {
		w.Title = w.Type.DefaultTitle()
	}
	if len(w.Title) > MaxTitleLength {
		errs = append(errs, models.FieldError{Field: "title", Message: fmt.Sprintf("must be at most %d characters", MaxTitleLength), Code: models.CodeTooLong})
	}

	if w.Minutes < MinMinutes || w.Minutes > MaxMinutes {
		errs = append(errs, models.FieldError{Field: "minutes", Message: fmt.Sprintf("must be between %d and %d", MinMinutes, MaxMinutes), Code: models.CodeOutOfRange})
	}

	if input.RPE != nil && *input.RPE != 0 {
		if *input.RPE < MinRPE || *input.RPE > MaxRPE {
			errs = append(errs, models.FieldError{Field: "rpe", Message: fmt.Sprintf("must be between %d and %d", MinRPE, MaxRPE), Code: models.CodeOutOfRange})
		} else {
			rpe := *input.RPE
			w.RPE = &rpe
		}
	}

	if len(w.Notes) > MaxNotesLength {
		errs = append(errs, models.FieldError{Field: "notes", Message: fmt.Sprintf("must be at most %d characters", MaxNotesLength), Code: models.CodeTooLong})
	}

	return w, errs
}

// ToAPI converts a workout to its API representation.
func ToAPI(w *Workout) models.Workout {
	return models.Workout{
		ID:        w.ID,
		Date:      models.DateOf(w.Date),
		Title:     w.Title,
		Type:      string(w.Type),
		Minutes:   w.Minutes,
		RPE:       w.RPE,
		Notes:     w.Notes,
		CreatedAt: models.Timestamp(w.CreatedAt),
	}
}

func newID() string {
	return "wkt_" + uuid.New().String()[:22]
}
