// Package auth implements password hashing and the login flow: look the
// user up, verify the password, issue a token.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/crucial707/league-api/internal/models"
	"github.com/crucial707/league-api/internal/repo"
	"github.com/crucial707/league-api/internal/token"
)

// CredentialStore finds users by exact, case-sensitive username. It must
// return repo.ErrNotFound when no such user exists.
type CredentialStore interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// TokenIssuer signs tokens for authenticated users.
type TokenIssuer interface {
	Issue(s token.Subject) (string, time.Time, error)
}

// LoginResult is returned on a successful login. User never carries the
// password hash.
type LoginResult struct {
	User      models.User `json:"user"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// Service runs the login flow. It holds no per-request state.
type Service struct {
	Users  CredentialStore
	Hasher PasswordHasher
	Tokens TokenIssuer
}

// NewService wires a login service.
func NewService(users CredentialStore, hasher PasswordHasher, tokens TokenIssuer) *Service {
	return &Service{Users: users, Hasher: hasher, Tokens: tokens}
}

// Login authenticates username/password and issues a token.
//
// Errors: ErrValidation for empty input, ErrInvalidCredentials for an
// unknown user or wrong password, *DependencyError for store or signing
// failures.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, ErrValidation
	}

	user, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, &DependencyError{Op: "lookup", Err: err}
	}

	if !s.Hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	signed, exp, err := s.Tokens.Issue(token.Subject{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
	if err != nil {
		return nil, &DependencyError{Op: "issue token", Err: err}
	}

	return &LoginResult{
		User:      user.Sanitized(),
		Token:     signed,
		ExpiresAt: exp,
	}, nil
}
