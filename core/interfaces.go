package core

import (
	"context"
	"time"
)

// Ports define interfaces for external dependencies

// ============================================
// STORAGE PORTS (Database operations)
// ============================================

// UserStorage defines user-related database operations
type UserStorage interface {
	CreateUser(ctx context.Context, u *User) error
	GetUserByID(ctx context.Context, id int64) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	CountUsers(ctx context.Context) (int, error)
}

// SessionStorage defines session-related database operations
type SessionStorage interface {
	CreateSession(ctx context.Context, s *Session) error
	GetSessionByHash(ctx context.Context, tokenHash string) (*Session, error)
	DeleteSessionByID(ctx context.Context, id string) error
	DeleteSessionByHash(ctx context.Context, tokenHash string) error
}

// ContentReader defines the committed-state reads behind the public
// partials and the admin post list.
type ContentReader interface {
	ListSettings(ctx context.Context) ([]*SettingEntry, error)
	GetProfile(ctx context.Context) (*Profile, error)
	ListSocialLinks(ctx context.Context, profileID int64) ([]*SocialLink, error)
	ListPosts(ctx context.Context) ([]*Post, error)
	ListUpcomingEvents(ctx context.Context, from string) ([]*Event, error)
}

// ContentTx is the write surface available inside one mutation unit.
// Statements apply in call order; the whole unit commits or rolls back
// together.
type ContentTx interface {
	UpsertSetting(ctx context.Context, key, value string) error
	UpdateProfile(ctx context.Context, p *Profile) error
	DeleteSocialLinks(ctx context.Context, profileID int64) error
	InsertSocialLink(ctx context.Context, l *SocialLink) error
	InsertPost(ctx context.Context, p *Post) error
	UpsertEvent(ctx context.Context, e *Event) error
}

// ContentStorage groups the read surface with the atomic write primitive.
type ContentStorage interface {
	ContentReader

	// Atomic runs fn inside a single transaction. Any error from fn
	// rolls the whole unit back; nil commits it.
	Atomic(ctx context.Context, fn func(ctx context.Context, tx ContentTx) error) error
}

// StorageAdapter is the full set a backend must implement.
type StorageAdapter interface {
	UserStorage
	SessionStorage
	ContentStorage
}

// ============================================
// CACHE PORT
// ============================================

// Cache defines session caching operations
type Cache interface {
	Get(tokenHash string) (*Session, error)
	Set(tokenHash string, session *Session) error
	Delete(tokenHash string) error
	Clear() error
}

// CacheConfig configures cache behavior
type CacheConfig struct {
	TTL     time.Duration
	MaxSize int
}

// CacheStats tracks cache performance metrics
type CacheStats struct {
	Hits      int64         `json:"hits"`
	Misses    int64         `json:"misses"`
	Sets      int64         `json:"sets"`
	Deletes   int64         `json:"deletes"`
	Evictions int64         `json:"evictions"`
	Size      int           `json:"size"`
	TTL       time.Duration `json:"ttl"`
}

// ============================================
// SESSION CONFIG
// ============================================

type SessionConfig struct {
	MaxAge time.Duration
}

func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		MaxAge: 24 * time.Hour,
	}
}
