package auth

import (
	"context"
	"errors"
)

// Repository errors.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

// UserRepository defines persistence for accounts.
type UserRepository interface {
	// Create stores a new user. It returns ErrEmailTaken if the email is in use.
	Create(ctx context.Context, user *User) error

	// FindByID finds a user by ID.
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail finds a user by normalized email.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// ListIDs returns all user IDs ordered by creation.
	ListIDs(ctx context.Context) ([]string, error)

	// Delete removes a user.
	Delete(ctx context.Context, id string) error
}

// RefreshTokenRepository defines persistence for refresh tokens.
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *RefreshToken) error

	// FindByHash returns ErrInvalidRefreshToken when no token matches.
	FindByHash(ctx context.Context, tokenHash string) (*RefreshToken, error)

	Revoke(ctx context.Context, tokenHash string) error
	RevokeAllForUser(ctx context.Context, userID string) error
}
