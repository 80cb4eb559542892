package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/lborres/stele/core"
	"github.com/lborres/stele/pkg/crypto"
)

// AuthService verifies credentials and manages the session lifecycle
// around them.
type AuthService struct {
	users    core.UserStorage
	hasher   crypto.PasswordHandler
	sessions *SessionManager
}

func NewAuthService(users core.UserStorage, hasher crypto.PasswordHandler, sessions *SessionManager) *AuthService {
	return &AuthService{
		users:    users,
		hasher:   hasher,
		sessions: sessions,
	}
}

// LoginResult contains the authenticated user and their session
type LoginResult struct {
	User    *core.User    `json:"user"`
	Session *core.Session `json:"session"`
	Token   string        `json:"token"` // The raw token (not the hash)
}

// Login authenticates a user with username and password.
//
// An unknown username and a wrong password both return
// core.ErrInvalidCredentials so callers cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	// Step 1: Find the user by username
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			return nil, core.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	// Step 2: Verify the password
	valid, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !valid {
		return nil, core.ErrInvalidCredentials
	}

	// Step 3: Create a new session
	sessionResult, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &LoginResult{
		User:    user,
		Session: sessionResult.Session,
		Token:   sessionResult.Token,
	}, nil
}

// Logout invalidates the session matching token.
//
// It is idempotent: an empty token and a token with no matching
// session are both no-op successes.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	err := s.sessions.Destroy(ctx, token)
	if err != nil && !errors.Is(err, core.ErrSessionNotFound) {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Authorize resolves a raw token to an active session for the duration
// of one request.
func (s *AuthService) Authorize(ctx context.Context, token string) (*core.Session, error) {
	return s.sessions.Verify(ctx, token)
}
