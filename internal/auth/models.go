// Package auth provides email/password accounts and token-based authentication.
package auth

import (
	"net/mail"
	"strings"
	"time"

	"github.com/fitplan/fitplan/internal/api/models"
)

// Validation constants.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72 // bcrypt ignores bytes beyond 72
	MaxNameLength     = 80
)

// User represents an account.
type User struct {
	ID           string    `json:"userId"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// RefreshToken is a stored refresh token. Only the SHA-256 of the token value is kept.
type RefreshToken struct {
	ID        string
	TokenHash string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// RegisterRequest is the body of POST /v1/auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// Validate validates the registration request.
func (r *RegisterRequest) Validate() []models.FieldError {
	var errs []models.FieldError

	errs = append(errs, validateEmail(r.Email)...)

	switch n := len(r.Password); {
	case n == 0:
		errs = append(errs, models.FieldError{Field: "password", Message: "password is required", Code: models.CodeRequired})
	case n < MinPasswordLength:
		errs = append(errs, models.FieldError{Field: "password", Message: "must be at least 8 characters", Code: models.CodeOutOfRange})
	case n > MaxPasswordLength:
		errs = append(errs, models.FieldError{Field: "password", Message: "must be at most 72 bytes", Code: models.CodeTooLong})
	}

	if len(strings.TrimSpace(r.Name)) > MaxNameLength {
		errs = append(errs, models.FieldError{Field: "name", Message: "must be at most 80 characters", Code: models.CodeTooLong})
	}

	return errs
}

// LoginRequest is the body of POST /v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate validates the login request.
func (r *LoginRequest) Validate() []models.FieldError {
	var errs []models.FieldError
	if strings.TrimSpace(r.Email) == "" {
		errs = append(errs, models.FieldError{Field: "email", Message: "email is required", Code: models.CodeRequired})
	}
	if r.Password == "" {
		errs = append(errs, models.FieldError{Field: "password", Message: "password is required", Code: models.CodeRequired})
	}
	return errs
}

// RefreshTokenRequest is the body of the refresh and logout endpoints.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Validate validates the refresh token request.
func (r *RefreshTokenRequest) Validate() []models.FieldError {
	if r.RefreshToken == "" {
		return []models.FieldError{{Field: "refreshToken", Message: "refresh token is required", Code: models.CodeRequired}}
	}
	return nil
}

// TokenResponse is returned after a successful login, registration or refresh.
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int64  `json:"expiresIn"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user"`
}

func validateEmail(email string) []models.FieldError {
	email = strings.TrimSpace(email)
	if email == "" {
		return []models.FieldError{{Field: "email", Message: "email is required", Code: models.CodeRequired}}
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return []models.FieldError{{Field: "email", Message: "must be a valid email address", Code: models.CodeInvalid}}
	}
	return nil
}

// normalizeEmail lowercases and trims an email for lookups.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
