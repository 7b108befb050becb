package auth

import (
	"context"
	"sort"
	"sync"
	"time"
)

// InMemoryUserRepository is an in-memory UserRepository for development and tests.
type InMemoryUserRepository struct {
	mu      sync.RWMutex
	users   map[string]*User
	byEmail map[string]string
}

var _ UserRepository = (*InMemoryUserRepository)(nil)

// NewInMemoryUserRepository creates a new in-memory user repository.
func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users:   make(map[string]*User),
		byEmail: make(map[string]string),
	}
}

// Create stores a new user.
func (r *InMemoryUserRepository) Create(_ context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := normalizeEmail(user.Email)
	if _, ok := r.byEmail[email]; ok {
		return ErrEmailTaken
	}

	u := *user
	r.users[user.ID] = &u
	r.byEmail[email] = user.ID
	return nil
}

// FindByID finds a user by ID.
func (r *InMemoryUserRepository) FindByID(_ context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	u := *user
	return &u, nil
}

// FindByEmail finds a user by email.
func (r *InMemoryUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.RLock()
	id, ok := r.byEmail[normalizeEmail(email)]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrUserNotFound
	}
	return r.FindByID(ctx, id)
}

// ListIDs returns all user IDs ordered by creation time.
func (r *InMemoryUserRepository) ListIDs(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].ID < users[j].ID
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})

	ids := make([]string, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	return ids, nil
}

// Delete removes a user.
func (r *InMemoryUserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return ErrUserNotFound
	}
	delete(r.byEmail, normalizeEmail(user.Email))
	delete(r.users, id)
	return nil
}

// InMemoryRefreshTokenRepository is an in-memory RefreshTokenRepository.
type InMemoryRefreshTokenRepository struct {
	mu     sync.RWMutex
	tokens map[string]*RefreshToken
}

var _ RefreshTokenRepository = (*InMemoryRefreshTokenRepository)(nil)

// NewInMemoryRefreshTokenRepository creates a new in-memory refresh token repository.
func NewInMemoryRefreshTokenRepository() *InMemoryRefreshTokenRepository {
	return &InMemoryRefreshTokenRepository{tokens: make(map[string]*RefreshToken)}
}

// Create stores a refresh token.
func (r *InMemoryRefreshTokenRepository) Create(_ context.Context, token *RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := *token
	r.tokens[token.TokenHash] = &t
	return nil
}

// FindByHash finds a refresh token by hash.
func (r *InMemoryRefreshTokenRepository) FindByHash(_ context.Context, tokenHash string) (*RefreshToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	token, ok := r.tokens[tokenHash]
	if !ok {
		return nil, ErrInvalidRefreshToken
	}
	t := *token
	return &t, nil
}

// Revoke marks a refresh token as revoked. Unknown tokens are ignored.
func (r *InMemoryRefreshTokenRepository) Revoke(_ context.Context, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if token, ok := r.tokens[tokenHash]; ok && token.RevokedAt == nil {
		now := time.Now()
		token.RevokedAt = &now
	}
	return nil
}

// RevokeAllForUser revokes every active refresh token of a user.
func (r *InMemoryRefreshTokenRepository) RevokeAllForUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for _, token := range r.tokens {
		if token.UserID == userID && token.RevokedAt == nil {
			token.RevokedAt = &now
		}
	}
	return nil
}
