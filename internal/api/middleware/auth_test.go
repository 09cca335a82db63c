package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toolroom/toolroom/internal/account"
	"github.com/toolroom/toolroom/internal/api/middleware"
	"github.com/toolroom/toolroom/internal/api/models"
)

func testAccounts(t *testing.T) *account.Service {
	t.Helper()
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

func sessionToken(t *testing.T, accounts *account.Service, username string, admin bool) string {
	t.Helper()
	ctx := context.Background()

	if admin {
		require.NoError(t, accounts.EnsureAdmin(ctx, username, "test-password-123"))
	} else {
		_, err := accounts.Register(ctx, &models.RegisterRequest{
			Username: username,
			Password: "test-password-123",
		})
		require.NoError(t, err)
	}

	token, err := accounts.Login(ctx, &models.LoginRequest{
		Username: username,
		Password: "test-password-123",
	})
	require.NoError(t, err)
	return token.AccessToken
}

func TestAuth_ValidToken(t *testing.T) {
	accounts := testAccounts(t)
	token := sessionToken(t, accounts, "marta", false)

	handler := middleware.Auth(accounts)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := middleware.GetSession(r.Context())
		require.NotNil(t, session)
		assert.Equal(t, "marta", session.Username)
		assert.False(t, session.Admin)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuth_RejectsBadCredentials(t *testing.T) {
	accounts := testAccounts(t)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not bearer", header: "Basic dXNlcjpwYXNz"},
		{name: "empty token", header: "Bearer "},
		{name: "garbage token", header: "Bearer not-a-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := middleware.Auth(accounts)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("handler should not be reached")
			}))

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
		})
	}
}

func TestAdmin_RequiresAdminSession(t *testing.T) {
	accounts := testAccounts(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Anonymous request, no session in context
	w := httptest.NewRecorder()
	middleware.Admin(next).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/test", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Authenticated non-admin
	userToken := sessionToken(t, accounts, "marta", false)
	chain := middleware.Auth(accounts)(middleware.Admin(next))

	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	w = httptest.NewRecorder()
	chain.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admin passes
	adminToken := sessionToken(t, accounts, "admin", true)
	req = httptest.NewRequest(http.MethodPost, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w = httptest.NewRecorder()
	chain.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
