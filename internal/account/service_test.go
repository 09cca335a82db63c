package account_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toolroom/toolroom/internal/account"
	"github.com/toolroom/toolroom/internal/api/models"
)

func testAccountService() *account.Service {
	tokens := account.NewTokenService(account.TokenConfig{
		SigningKey: "test-secret-key-for-testing-only",
		Issuer:     "toolroom-test",
	})
	return account.NewService(account.ServiceConfig{
		Repository:   account.NewInMemoryRepository(),
		TokenService: tokens,
		Logger:       zerolog.Nop(),
	})
}

func TestService_Register(t *testing.T) {
	service := testAccountService()
	ctx := context.Background()

	user, err := service.Register(ctx, &models.RegisterRequest{
		Username: "marta",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "marta", user.Username)
	assert.Equal(t, "marta", user.DisplayName, "display name defaults to username")
	assert.False(t, user.IsAdmin, "registered accounts are never admin")
}

func TestService_Register_DuplicateUsername(t *testing.T) {
	service := testAccountService()
	ctx := context.Background()

	_, err := service.Register(ctx, &models.RegisterRequest{Username: "marta", Password: "password-one"})
	require.NoError(t, err)

	_, err = service.Register(ctx, &models.RegisterRequest{Username: "marta", Password: "password-two"})
	assert.ErrorIs(t, err, account.ErrUsernameTaken)
}

func TestService_Login_TokenRoundTrip(t *testing.T) {
	service := testAccountService()
	ctx := context.Background()

	_, err := service.Register(ctx, &models.RegisterRequest{Username: "marta", Password: "correct horse battery"})
	require.NoError(t, err)

	token, err := service.Login(ctx, &models.LoginRequest{Username: "marta", Password: "correct horse battery"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.NotEmpty(t, token.AccessToken)
	assert.Greater(t, token.ExpiresIn, int64(0))

	claims, err := service.Authenticate(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, token.User.ID, claims.UserID)
	assert.Equal(t, "marta", claims.Username)
	assert.False(t, claims.Admin)
}

func TestService_Login_InvalidCredentials(t *testing.T) {
	service := testAccountService()
	ctx := context.Background()

	_, err := service.Register(ctx, &models.RegisterRequest{Username: "marta", Password: "correct horse battery"})
	require.NoError(t, err)

	// Unknown username and wrong password are indistinguishable
	_, unknownErr := service.Login(ctx, &models.LoginRequest{Username: "nobody", Password: "whatever"})
	_, wrongErr := service.Login(ctx, &models.LoginRequest{Username: "marta", Password: "wrong"})

	assert.ErrorIs(t, unknownErr, account.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, account.ErrInvalidCredentials)
	assert.Equal(t, unknownErr, wrongErr)
}

func TestService_Authenticate_RejectsGarbage(t *testing.T) {
	service := testAccountService()

	_, err := service.Authenticate("not-a-token")
	assert.ErrorIs(t, err, account.ErrInvalidToken)
}

func TestService_Authenticate_RejectsForeignSignature(t *testing.T) {
	service := testAccountService()
	ctx := context.Background()

	_, err := service.Register(ctx, &models.RegisterRequest{Username: "marta", Password: "correct horse battery"})
	require.NoError(t, err)
	token, err := service.Login(ctx, &models.LoginRequest{Username: "marta", Password: "correct horse battery"})
	require.NoError(t, err)

	other := account.NewTokenService(account.TokenConfig{
		SigningKey: "a-different-signing-key",
		Issuer:     "toolroom-test",
	})
	otherService := account.NewService(account.ServiceConfig{
		Repository:   account.NewInMemoryRepository(),
		TokenService: other,
		Logger:       zerolog.Nop(),
	})

	_, err = otherService.Authenticate(token.AccessToken)
	assert.Error(t, err)
}

func TestService_EnsureAdmin(t *testing.T) {
	service := testAccountService()
	ctx := context.Background()

	require.NoError(t, service.EnsureAdmin(ctx, "admin", "workshop-admin-pass"))

	token, err := service.Login(ctx, &models.LoginRequest{Username: "admin", Password: "workshop-admin-pass"})
	require.NoError(t, err)
	assert.True(t, token.User.IsAdmin)

	// Idempotent: a second call does not fail or reset the password
	require.NoError(t, service.EnsureAdmin(ctx, "admin", "some-other-pass"))
	_, err = service.Login(ctx, &models.LoginRequest{Username: "admin", Password: "workshop-admin-pass"})
	assert.NoError(t, err)

	var getUserErr error
	_, getUserErr = service.GetUser(ctx, token.User.ID)
	assert.NoError(t, getUserErr)
}

func TestService_GetUser_NotFound(t *testing.T) {
	service := testAccountService()

	_, err := service.GetUser(context.Background(), 42)
	assert.True(t, errors.Is(err, account.ErrUserNotFound))
}
