package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/toolroom/toolroom/internal/account"
	"github.com/toolroom/toolroom/internal/api/models"
	"github.com/toolroom/toolroom/internal/api/response"
)

// AuthHandler serves authentication endpoints.
type AuthHandler struct {
	accounts *account.Service
	logger   zerolog.Logger
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(accounts *account.Service, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
		logger:   logger.With().Str("handler", "auth").Logger(),
	}
}

// Register creates a new non-admin user account.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid request body", nil)
		return
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		response.BadRequest(w, r, "validation failed", fieldErrors)
		return
	}

	user, err := h.accounts.Register(r.Context(), &req)
	switch {
	case errors.Is(err, account.ErrUsernameTaken):
		response.Conflict(w, r, "username is already taken")
	case err != nil:
		h.logger.Error().Err(err).Msg("failed to register user")
		response.InternalError(w, r, "failed to register user")
	default:
		response.Created(w, r, fmt.Sprintf("/api/auth/users/%d", user.ID), user)
	}
}

// Login verifies credentials and issues a session token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid request body", nil)
		return
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		response.BadRequest(w, r, "validation failed", fieldErrors)
		return
	}

	token, err := h.accounts.Login(r.Context(), &req)
	switch {
	case errors.Is(err, account.ErrInvalidCredentials):
		response.Unauthorized(w, r, "invalid username or password")
	case err != nil:
		h.logger.Error().Err(err).Msg("failed to log in user")
		response.InternalError(w, r, "failed to log in")
	default:
		response.JSON(w, r, http.StatusOK, token)
	}
}

// Me returns the profile of the authenticated user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	session := GetSession(r.Context())
	if session == nil {
		response.Unauthorized(w, r, "authentication required")
		return
	}

	user, err := h.accounts.GetUser(r.Context(), session.UserID)
	switch {
	case errors.Is(err, account.ErrUserNotFound):
		response.Unauthorized(w, r, "account no longer exists")
	case err != nil:
		h.logger.Error().Err(err).Int64("user_id", session.UserID).Msg("failed to load user")
		response.InternalError(w, r, "failed to load user")
	default:
		response.JSON(w, r, http.StatusOK, user)
	}
}
