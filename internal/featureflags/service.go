package featureflags

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/fitplan/fitplan/internal/api/models"
)

// ServiceConfig holds configuration for the feature flag service.
type ServiceConfig struct {
	Repository   Repository
	Logger       zerolog.Logger
	CacheTTL     time.Duration // How long to cache flags in memory
	DefaultFlags map[string]*Flag
}

// Service provides feature flag evaluation with caching and fallback to defaults.
type Service struct {
	repo         Repository
	logger       zerolog.Logger
	cacheTTL     time.Duration
	defaultFlags map[string]*Flag

	mu          sync.RWMutex
	cache       map[string]*Flag
	cacheExpiry time.Time
}

// NewService creates a new feature flag service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = time.Minute
	}

	defaultFlags := cfg.DefaultFlags
	if defaultFlags == nil {
		defaultFlags = DefaultFlags()
	}

	return &Service{
		repo:         cfg.Repository,
		logger:       cfg.Logger,
		cacheTTL:     cacheTTL,
		defaultFlags: defaultFlags,
		cache:        make(map[string]*Flag),
	}
}

// GetFlag retrieves a feature flag by key, or nil if it is unknown.
func (s *Service) GetFlag(ctx context.Context, key string) *Flag {
	if flag := s.getCached(key); flag != nil {
		return flag
	}

	flag, err := s.repo.GetFlag(ctx, key)
	if err == nil {
		s.setCached(key, flag)
		return flag
	}
	if !errors.Is(err, ErrFlagNotFound) {
		s.logger.Warn().Err(err).Str("flag", key).Msg("failed to get feature flag from repository")
	}

	return s.defaultFlags[key]
}

// List returns every flag, stored values merged over defaults, sorted by key.
func (s *Service) List(ctx context.Context) FlagList {
	merged := make(map[string]*Flag, len(s.defaultFlags))
	for k, v := range s.defaultFlags {
		merged[k] = v
	}

	flags, err := s.repo.GetAllFlags(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to get feature flags from repository, using defaults")
	} else {
		for k, v := range flags {
			merged[k] = v
		}
		s.mu.Lock()
		s.cache = flags
		s.cacheExpiry = time.Now().Add(s.cacheTTL)
		s.mu.Unlock()
	}

	list := FlagList{Items: make([]Flag, 0, len(merged))}
	for _, f := range merged {
		list.Items = append(list.Items, *f)
	}
	sort.Slice(list.Items, func(i, j int) bool { return list.Items[i].Key < list.Items[j].Key })
	return list
}

// Update applies req. Unknown keys are rejected with a validation error.
func (s *Service) Update(ctx context.Context, req *FlagUpdateRequest) error {
	var fieldErrors []models.FieldError
	if len(req.Updates) == 0 {
		fieldErrors = append(fieldErrors, models.FieldError{Field: "updates", Message: "is required", Code: models.CodeRequired})
	}

	now := time.Now()
	flags := make([]*Flag, 0, len(req.Updates))
	for _, u := range req.Updates {
		if _, ok := s.defaultFlags[u.Key]; !ok {
			fieldErrors = append(fieldErrors, models.FieldError{Field: "updates.key", Message: "unknown flag " + u.Key, Code: models.CodeUnsupported})
			continue
		}
		flags = append(flags, &Flag{Key: u.Key, Value: u.Value, UpdatedAt: now})
	}
	if err := models.NewValidationError(fieldErrors); err != nil {
		return err
	}

	if err := s.repo.SetFlags(ctx, flags); err != nil {
		return err
	}

	s.mu.Lock()
	for _, flag := range flags {
		s.cache[flag.Key] = flag
		s.logger.Info().Str("flag", flag.Key).Interface("value", flag.Value).Str("reason", req.Reason).Msg("feature flag updated")
	}
	s.mu.Unlock()
	return nil
}

// InvalidateCache clears the cached flags, forcing a refresh on next access.
func (s *Service) InvalidateCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]*Flag)
	s.cacheExpiry = time.Time{}
}

// IsEnabled returns true if the flag with the given key is truthy.
func (s *Service) IsEnabled(ctx context.Context, key string) bool {
	return s.GetFlag(ctx, key).BoolValue(false)
}

// Active returns the keys of every truthy boolean flag.
func (s *Service) Active(ctx context.Context) []string {
	var keys []string
	for _, f := range s.List(ctx).Items {
		if v, ok := f.Value.(bool); ok && v {
			keys = append(keys, f.Key)
		}
	}
	return keys
}

func (s *Service) getCached(key string) *Flag {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if time.Now().After(s.cacheExpiry) {
		return nil
	}
	return s.cache[key]
}

func (s *Service) setCached(key string, flag *Flag) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache[key] = flag
	if s.cacheExpiry.Before(time.Now()) {
		s.cacheExpiry = time.Now().Add(s.cacheTTL)
	}
}

// IsPlanPreviewDisabled returns true if anonymous plan previews are off.
func (s *Service) IsPlanPreviewDisabled(ctx context.Context) bool {
	return s.IsEnabled(ctx, FlagDisablePlanPreview)
}

// IsImportDisabled returns true if backup imports are rejected.
func (s *Service) IsImportDisabled(ctx context.Context) bool {
	return s.IsEnabled(ctx, FlagDisableImport)
}

// IsCheckinDigestDisabled returns true if weekly digests are paused.
func (s *Service) IsCheckinDigestDisabled(ctx context.Context) bool {
	return s.IsEnabled(ctx, FlagDisableCheckinDigest)
}

// ProgressWeeks returns the default progress window.
func (s *Service) ProgressWeeks(ctx context.Context) int {
	return s.GetFlag(ctx, FlagProgressWeeks).IntValue(8)
}
