package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lborres/stele/core"
	"github.com/lborres/stele/pkg/crypto"
)

// SessionManager mints, verifies, and destroys opaque-token sessions.
type SessionManager struct {
	config  core.SessionConfig
	storage core.SessionStorage
	cache   core.Cache // optional, can be nil if caching is disabled
}

type CreateSessionResult struct {
	Session *core.Session `json:"session"`
	Token   string        `json:"token"`
}

func NewSessionManager(config core.SessionConfig, storage core.SessionStorage, cache core.Cache) *SessionManager {
	if config.MaxAge <= 0 {
		config = core.DefaultSessionConfig()
	}
	return &SessionManager{config: config, storage: storage, cache: cache}
}

func (sm *SessionManager) Create(ctx context.Context, userID int64) (*CreateSessionResult, error) {
	// Generate cryptographic material
	pair, err := crypto.GenerateHashedToken(crypto.DefaultTokenLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	now := time.Now()
	session := &core.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		TokenHash: pair.Hash,
		CreatedAt: now,
		ExpiresAt: now.Add(sm.config.MaxAge),
	}

	// Persist session
	if err := sm.storage.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	// Cache session if caching is enabled (cache is non-nil)
	if sm.cache != nil {
		// We don't fail the request if caching fails
		_ = sm.cache.Set(pair.Hash, session)
	}

	return &CreateSessionResult{Session: session, Token: pair.Token}, nil
}

// Verify resolves a raw token to an unexpired session.
//
// Expiry is checked against the persisted timestamp, not just cookie
// lifetime; expired rows are deleted lazily on first touch.
func (sm *SessionManager) Verify(ctx context.Context, token string) (*core.Session, error) {
	// Validate input
	if token == "" {
		return nil, core.ErrInvalidToken
	}

	tokenHash := crypto.HashToken(token)

	// Try cache first if caching is enabled
	if sm.cache != nil {
		if session, err := sm.cache.Get(tokenHash); err == nil {
			// Cache hit - validate expiry
			if time.Now().After(session.ExpiresAt) {
				_ = sm.cache.Delete(tokenHash)
				_ = sm.storage.DeleteSessionByID(ctx, session.ID)
				return nil, core.ErrSessionExpired
			}
			return session, nil
		}
		// Cache miss - fall through to storage
	}

	session, err := sm.storage.GetSessionByHash(ctx, tokenHash)
	if err != nil {
		return nil, core.ErrSessionNotFound
	}

	valid, err := crypto.VerifyToken(token, session.TokenHash)
	if err != nil || !valid {
		return nil, core.ErrInvalidToken
	}

	if time.Now().After(session.ExpiresAt) {
		_ = sm.storage.DeleteSessionByID(ctx, session.ID)
		return nil, core.ErrSessionExpired
	}

	if sm.cache != nil {
		_ = sm.cache.Set(tokenHash, session)
	}

	return session, nil
}

// Destroy removes the session matching token, if any.
func (sm *SessionManager) Destroy(ctx context.Context, token string) error {
	tokenHash := crypto.HashToken(token)

	// Invalidate cache if available
	if sm.cache != nil {
		_ = sm.cache.Delete(tokenHash)
	}

	return sm.storage.DeleteSessionByHash(ctx, tokenHash)
}
