package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/rahularya002/make-songs/internal/auth"
	"github.com/rahularya002/make-songs/internal/models"
	"github.com/rahularya002/make-songs/internal/repository"
)

var (
	// ErrAuthenticationFailed is the single failure returned to callers for
	// every login failure path. The specific cause is logged server-side only.
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrUserExists           = errors.New("user already exists")
	ErrMissingFields        = errors.New("all fields are required")
)

// AuthService validates credentials and issues session tokens.
type AuthService struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
	logger *zap.SugaredLogger
}

func NewAuthService(users repository.UserRepository, tokens *auth.TokenManager, logger *zap.SugaredLogger) *AuthService {
	return &AuthService{users: users, tokens: tokens, logger: logger}
}

// Signup hashes the password and persists a new credential record.
func (s *AuthService) Signup(ctx context.Context, firstName, lastName, email, password string) error {
	if firstName == "" || lastName == "" || email == "" || password == "" {
		return ErrMissingFields
	}

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return ErrUserExists
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// The unique index closes the lookup/insert race.
		if mongo.IsDuplicateKeyError(err) {
			return ErrUserExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Authenticate verifies email/password. Every failure collapses to
// ErrAuthenticationFailed so callers cannot enumerate accounts.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		s.logger.Warn("login rejected: missing credentials")
		return nil, ErrAuthenticationFailed
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.logger.Warnf("login rejected: no user with email %s", email)
		} else {
			s.logger.Errorf("login lookup failed for %s: %v", email, err)
		}
		return nil, ErrAuthenticationFailed
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		s.logger.Warnf("login rejected: invalid password for %s", email)
		return nil, ErrAuthenticationFailed
	}
	return user, nil
}

// Login authenticates and wraps the identity in a signed session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, time.Time, *models.User, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return "", time.Time{}, nil, err
	}
	token, expires, err := s.tokens.Generate(user.ID.Hex(), user.Email, user.DisplayName())
	if err != nil {
		s.logger.Errorf("session token signing failed for %s: %v", email, err)
		return "", time.Time{}, nil, ErrAuthenticationFailed
	}
	return token, expires, user, nil
}
