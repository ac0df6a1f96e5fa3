// Package auth manages access tokens for the amoCRM API: long-lived
// static tokens and OAuth2 refresh-token rotation.
package auth

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Static errors for err113 compliance.
var (
	ErrStaticTokenCannotRefresh = errors.New("static token cannot be refreshed")
	ErrNoRefreshToken           = errors.New("no refresh token available")
)

// TokenManager provides access tokens for API requests.
type TokenManager interface {
	// GetToken returns a valid access token, refreshing if necessary.
	GetToken(ctx context.Context) (string, error)
	// RefreshToken forces a refresh.
	RefreshToken(ctx context.Context) error
	// SetToken stores a token with its expiry.
	SetToken(token string, expiresAt time.Time)
}

// StaticTokenManager serves one fixed token, the shape of amoCRM
// long-lived tokens.
type StaticTokenManager struct {
	mu    sync.RWMutex
	token string
}

// NewStaticTokenManager creates a manager around a fixed token.
func NewStaticTokenManager(token string) *StaticTokenManager {
	return &StaticTokenManager{token: token}
}

// GetToken implements TokenManager.
func (m *StaticTokenManager) GetToken(_ context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.token, nil
}

// RefreshToken implements TokenManager.
func (m *StaticTokenManager) RefreshToken(_ context.Context) error {
	return ErrStaticTokenCannotRefresh
}

// SetToken implements TokenManager.
func (m *StaticTokenManager) SetToken(token string, _ time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = token
}

// tokenStore holds the current token pair behind a mutex.
type tokenStore struct {
	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	expiresAt    time.Time
}

func (s *tokenStore) get() (string, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.accessToken, s.expiresAt
}

func (s *tokenStore) refreshTokenValue() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.refreshToken
}

func (s *tokenStore) set(accessToken, refreshToken string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accessToken = accessToken
	if refreshToken != "" {
		s.refreshToken = refreshToken
	}

	s.expiresAt = expiresAt
}
