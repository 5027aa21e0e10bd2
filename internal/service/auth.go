// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pictor/pictor/internal/auth"
	"github.com/pictor/pictor/internal/metrics"
	"github.com/pictor/pictor/internal/model"
	"github.com/pictor/pictor/internal/repository"
)

// Auth service errors.
var (
	ErrMissingFields      = errors.New("username and password required")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrUsernameExists     = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// UserStore is the credential store surface the auth service needs.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}

// UserCache caches user records on the login path.
type UserCache interface {
	GetUser(ctx context.Context, username string) (*model.User, error)
	SetUser(ctx context.Context, user *model.User) error
	DeleteUser(ctx context.Context, username string) error
}

// AuthService orchestrates registration and login against the credential
// store and the token service. It holds no request state of its own.
type AuthService struct {
	store   UserStore
	cache   UserCache
	tokens  *auth.TokenService
	metrics metrics.Recorder
	logger  *slog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(store UserStore, cache UserCache, tokens *auth.TokenService, recorder metrics.Recorder, logger *slog.Logger) *AuthService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		store:   store,
		cache:   cache,
		tokens:  tokens,
		metrics: recorder,
		logger:  logger,
	}
}

// RegisterInput defines input for registration.
type RegisterInput struct {
	Username string
	Password string
}

// Register creates a new user and returns a bearer token for it.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (string, error) {
	if input.Username == "" || input.Password == "" {
		s.metrics.IncRegistration("invalid")
		return "", ErrMissingFields
	}
	if len(input.Password) < MinPasswordLength {
		s.metrics.IncRegistration("invalid")
		return "", ErrPasswordTooShort
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     input.Username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			s.metrics.IncRegistration("conflict")
			return "", ErrUsernameExists
		}
		return "", fmt.Errorf("create user: %w", err)
	}

	// Write-through so the first login skips the store. Failures here do
	// not fail the registration.
	if s.cache != nil {
		if err := s.cache.SetUser(ctx, user); err != nil {
			s.logger.Warn("user cache write failed", "username", user.Username, "error", err)
		}
	}

	token, err := s.tokens.Issue(user.Username)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	s.metrics.IncRegistration("success")
	return token, nil
}

// LoginInput defines input for login.
type LoginInput struct {
	Username string
	Password string
}

// Login verifies credentials and returns a bearer token.
// Unknown username and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (string, error) {
	if input.Username == "" || input.Password == "" {
		return "", ErrMissingFields
	}

	user, err := s.lookupUser(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.metrics.IncLogin("rejected")
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	match, err := auth.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil || !match {
		s.metrics.IncLogin("rejected")
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Username)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	s.metrics.IncLogin("success")
	return token, nil
}

// lookupUser consults the cache before the store and back-fills on a miss.
func (s *AuthService) lookupUser(ctx context.Context, username string) (*model.User, error) {
	if s.cache != nil {
		cached, err := s.cache.GetUser(ctx, username)
		if err == nil && cached != nil {
			s.metrics.IncUserCacheHit()
			return cached, nil
		}
		s.metrics.IncUserCacheMiss()
	}

	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetUser(ctx, user); err != nil {
			s.logger.Warn("user cache write failed", "username", username, "error", err)
		}
	}

	return user, nil
}
