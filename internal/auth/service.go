package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fitplan/fitplan/internal/api/models"
)

// Service errors.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ServiceConfig holds configuration for the auth service.
type ServiceConfig struct {
	JWTService  *JWTService
	UserRepo    UserRepository
	RefreshRepo RefreshTokenRepository
	// BcryptCost defaults to bcrypt.DefaultCost. Tests use bcrypt.MinCost.
	BcryptCost int
}

// Service provides account and session operations.
type Service struct {
	jwt         *JWTService
	userRepo    UserRepository
	refreshRepo RefreshTokenRepository
	bcryptCost  int
}

// NewService creates a new auth service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		jwt:         cfg.JWTService,
		userRepo:    cfg.UserRepo,
		refreshRepo: cfg.RefreshRepo,
		bcryptCost:  cfg.BcryptCost,
	}
}

// Register creates an account and returns a token pair.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*TokenResponse, error) {
	if err := models.NewValidationError(req.Validate()); err != nil {
		return nil, err
	}

	hash, err := HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &User{
		ID:           generateUserID(),
		Email:        normalizeEmail(req.Email),
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return s.generateTokens(ctx, user)
}

// Login verifies credentials and returns a token pair.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*TokenResponse, error) {
	if err := models.NewValidationError(req.Validate()); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("finding user: %w", err)
	}

	ok, err := CheckPassword(user.PasswordHash, req.Password)
	if err != nil {
		return nil, fmt.Errorf("checking password: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	return s.generateTokens(ctx, user)
}

// RefreshAccessToken exchanges a refresh token for a new token pair.
// The presented refresh token is revoked.
func (s *Service) RefreshAccessToken(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	hash := HashToken(refreshToken)

	stored, err := s.refreshRepo.FindByHash(ctx, hash)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}
	if stored.RevokedAt != nil {
		return nil, ErrInvalidRefreshToken
	}
	if time.Now().After(stored.ExpiresAt) {
		return nil, ErrRefreshTokenExpired
	}

	user, err := s.userRepo.FindByID(ctx, stored.UserID)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	if err := s.refreshRepo.Revoke(ctx, hash); err != nil {
		return nil, fmt.Errorf("revoking old refresh token: %w", err)
	}

	return s.generateTokens(ctx, user)
}

// ValidateAccessToken validates an access token and returns the user ID.
func (s *Service) ValidateAccessToken(tokenString string) (string, error) {
	claims, err := s.jwt.ValidateAccessToken(tokenString)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

// GetUser retrieves a user by ID.
func (s *Service) GetUser(ctx context.Context, userID string) (*User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// ListUserIDs returns every account ID.
func (s *Service) ListUserIDs(ctx context.Context) ([]string, error) {
	return s.userRepo.ListIDs(ctx)
}

// Logout revokes a single refresh token.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	return s.refreshRepo.Revoke(ctx, HashToken(refreshToken))
}

// LogoutAll revokes every refresh token of a user.
func (s *Service) LogoutAll(ctx context.Context, userID string) error {
	return s.refreshRepo.RevokeAllForUser(ctx, userID)
}

// DeleteAccount revokes all sessions and removes the user.
func (s *Service) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.refreshRepo.RevokeAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("revoking sessions: %w", err)
	}
	return s.userRepo.Delete(ctx, userID)
}

func (s *Service) generateTokens(ctx context.Context, user *User) (*TokenResponse, error) {
	accessToken, expiresAt, err := s.jwt.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, err
	}

	refreshToken, err := GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.refreshRepo.Create(ctx, &RefreshToken{
		ID:        uuid.New().String(),
		TokenHash: HashToken(refreshToken),
		UserID:    user.ID,
		ExpiresAt: now.Add(RefreshTokenExpiry),
		CreatedAt: now,
	}); err != nil {
		return nil, fmt.Errorf("storing refresh token: %w", err)
	}

	return &TokenResponse{
		AccessToken:  accessToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(time.Until(expiresAt).Round(time.Second).Seconds()),
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

func generateUserID() string {
	return "usr_" + uuid.New().String()[:22]
}
