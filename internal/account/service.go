package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/toolroom/toolroom/internal/api/models"
)

// dummyHash is a bcrypt hash compared against when the username is unknown,
// so the unknown-user and wrong-password paths cost the same.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Service provides account operations.
type Service struct {
	repo   Repository
	tokens *TokenService
	logger zerolog.Logger
}

// ServiceConfig holds configuration for the account service.
type ServiceConfig struct {
	Repository   Repository
	TokenService *TokenService
	Logger       zerolog.Logger
}

// NewService creates a new account service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		repo:   cfg.Repository,
		tokens: cfg.TokenService,
		logger: cfg.Logger,
	}
}

// Register creates a new non-admin account.
func (s *Service) Register(ctx context.Context, input *models.RegisterRequest) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	displayName := input.DisplayName
	if displayName == "" {
		displayName = input.Username
	}

	user := &User{
		Username:     input.Username,
		PasswordHash: string(hash),
		DisplayName:  displayName,
		IsAdmin:      false,
		CreatedAt:    time.Now(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Str("username", user.Username).
		Msg("user registered")

	result := toAPIUser(user)
	return &result, nil
}

// Login verifies the credentials and issues a session token. Unknown
// usernames and wrong passwords both return ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, input *models.LoginRequest) (*models.TokenResponse, error) {
	user, err := s.repo.GetByUsername(ctx, input.Username)
	if err != nil {
		// Burn a comparison so the response time does not reveal whether
		// the account exists.
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(input.Password))
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Generate(user)
	if err != nil {
		return nil, fmt.Errorf("issuing session token: %w", err)
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Str("username", user.Username).
		Msg("user logged in")

	return &models.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(time.Until(expiresAt).Seconds()),
		User:        toAPIUser(user),
	}, nil
}

// Authenticate validates a session token and returns its claims.
func (s *Service) Authenticate(tokenString string) (*Claims, error) {
	return s.tokens.Validate(tokenString)
}

// GetUser retrieves a user by ID.
func (s *Service) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := toAPIUser(user)
	return &result, nil
}

// EnsureAdmin creates the seed administrator account if it does not exist.
// Called once at startup.
func (s *Service) EnsureAdmin(ctx context.Context, username, password string) error {
	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return nil
	} else if !errors.Is(err, ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	admin := &User{
		Username:     username,
		PasswordHash: string(hash),
		DisplayName:  "Administrator",
		IsAdmin:      true,
		CreatedAt:    time.Now(),
	}
	if err := s.repo.Create(ctx, admin); err != nil {
		return fmt.Errorf("creating seed admin: %w", err)
	}

	s.logger.Info().
		Int64("user_id", admin.ID).
		Str("username", admin.Username).
		Msg("seed admin created")
	return nil
}

// toAPIUser converts a domain User to an API User.
func toAPIUser(u *User) models.User {
	return models.User{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		IsAdmin:     u.IsAdmin,
		CreatedAt:   models.Timestamp(u.CreatedAt),
	}
}
