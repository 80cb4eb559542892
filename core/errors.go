package core

import "errors"

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password") // 401, covers both unknown user and wrong password
)

// Session errors
var (
	ErrInvalidToken    = errors.New("invalid session token")
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
	ErrCacheNotFound   = errors.New("session not found in cache")
)

// Content errors
var (
	ErrProfileNotFound = errors.New("profile not found")
)
