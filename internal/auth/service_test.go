package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/fitplan/fitplan/internal/api/models"
	"github.com/fitplan/fitplan/internal/auth"
)

func newAuthService() *auth.Service {
	return auth.NewService(auth.ServiceConfig{
		JWTService:  newJWT("test-key", "iss", "aud"),
		UserRepo:    auth.NewInMemoryUserRepository(),
		RefreshRepo: auth.NewInMemoryRefreshTokenRepository(),
		BcryptCost:  bcrypt.MinCost,
	})
}

func TestService_RegisterAndLogin(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	reg, err := svc.Register(ctx, &auth.RegisterRequest{Email: "Sam@Example.com", Password: "s3cretpass", Name: " Sam "})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", reg.TokenType)
	assert.NotEmpty(t, reg.AccessToken)
	assert.NotEmpty(t, reg.RefreshToken)
	assert.Equal(t, "sam@example.com", reg.User.Email)
	assert.Equal(t, "Sam", reg.User.Name)
	assert.Regexp(t, `^usr_`, reg.User.ID)

	userID, err := svc.ValidateAccessToken(reg.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, userID)

	login, err := svc.Login(ctx, &auth.LoginRequest{Email: "sam@example.com", Password: "s3cretpass"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)

	_, err = svc.Login(ctx, &auth.LoginRequest{Email: "sam@example.com", Password: "wrongpass"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &auth.LoginRequest{Email: "nobody@example.com", Password: "s3cretpass"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestService_RegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &auth.RegisterRequest{Email: "a@example.com", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &auth.RegisterRequest{Email: "A@example.com", Password: "password2"})
	assert.ErrorIs(t, err, auth.ErrEmailTaken)
}

func TestService_RegisterValidation(t *testing.T) {
	tests := []struct {
		name      string
		req       auth.RegisterRequest
		wantField string
	}{
		{"missing email", auth.RegisterRequest{Password: "password1"}, "email"},
		{"bad email", auth.RegisterRequest{Email: "not-an-email", Password: "password1"}, "email"},
		{"short password", auth.RegisterRequest{Email: "a@example.com", Password: "short"}, "password"},
	}

	svc := newAuthService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), &tt.req)

			var verr *models.ValidationError
			require.True(t, errors.As(err, &verr))
			require.NotEmpty(t, verr.Errors)
			assert.Equal(t, tt.wantField, verr.Errors[0].Field)
		})
	}
}

func TestService_RefreshRotation(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	reg, err := svc.Register(ctx, &auth.RegisterRequest{Email: "r@example.com", Password: "password1"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshAccessToken(ctx, reg.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, reg.RefreshToken, refreshed.RefreshToken)

	_, err = svc.RefreshAccessToken(ctx, reg.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)

	_, err = svc.RefreshAccessToken(ctx, "unknown")
	assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)
}

func TestService_Logout(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	reg, err := svc.Register(ctx, &auth.RegisterRequest{Email: "l@example.com", Password: "password1"})
	require.NoError(t, err)
	second, err := svc.Login(ctx, &auth.LoginRequest{Email: "l@example.com", Password: "password1"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, reg.RefreshToken))
	_, err = svc.RefreshAccessToken(ctx, reg.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)

	require.NoError(t, svc.LogoutAll(ctx, reg.User.ID))
	_, err = svc.RefreshAccessToken(ctx, second.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)
}

func TestService_DeleteAccount(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	reg, err := svc.Register(ctx, &auth.RegisterRequest{Email: "d@example.com", Password: "password1"})
	require.NoError(t, err)

	ids, err := svc.ListUserIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{reg.User.ID}, ids)

	require.NoError(t, svc.DeleteAccount(ctx, reg.User.ID))
	_, err = svc.GetUser(ctx, reg.User.ID)
	assert.ErrorIs(t, err, auth.ErrUserNotFound)

	_, err = svc.Register(ctx, &auth.RegisterRequest{Email: "d@example.com", Password: "password1"})
	assert.NoError(t, err)
}
