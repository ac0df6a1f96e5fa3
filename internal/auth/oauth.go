package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// expirySkew is how long before the recorded expiry a token is treated
// as stale.
const expirySkew = 30 * time.Second

// OAuth2Config configures the refresh-token grant against an amoCRM
// account.
type OAuth2Config struct {
	// TokenURL is the token endpoint, normally
	// "<account>/oauth2/access_token".
	TokenURL     string
	ClientID     string
	ClientSecret string
	RedirectURI  string
	// RefreshToken seeds the first refresh. amoCRM rotates refresh
	// tokens on every grant; the manager keeps the latest one.
	RefreshToken string
}

// OAuth2TokenManager obtains and renews access tokens via the
// refresh-token grant. Safe for concurrent use.
type OAuth2TokenManager struct {
	config     *OAuth2Config
	store      tokenStore
	httpClient *http.Client
}

// NewOAuth2TokenManager creates a manager running the refresh-token
// grant.
func NewOAuth2TokenManager(config *OAuth2Config) *OAuth2TokenManager {
	manager := &OAuth2TokenManager{
		config:     config,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	manager.store.refreshToken = config.RefreshToken

	return manager
}

// GetToken returns a valid access token, refreshing when the stored
// one is missing or about to expire.
func (m *OAuth2TokenManager) GetToken(ctx context.Context) (string, error) {
	token, expiresAt := m.store.get()
	if token != "" && time.Now().Add(expirySkew).Before(expiresAt) {
		return token, nil
	}

	if err := m.RefreshToken(ctx); err != nil {
		return "", err
	}

	token, _ = m.store.get()

	return token, nil
}

// RefreshToken runs one refresh-token grant and stores the rotated
// token pair.
func (m *OAuth2TokenManager) RefreshToken(ctx context.Context) error {
	refreshToken := m.store.refreshTokenValue()
	if refreshToken == "" {
		return ErrNoRefreshToken
	}

	grant := map[string]string{
		"client_id":     m.config.ClientID,
		"client_secret": m.config.ClientSecret,
		"grant_type":    "refresh_token",
		"refresh_token": refreshToken,
		"redirect_uri":  m.config.RedirectURI,
	}

	body, err := json.Marshal(grant)
	if err != nil {
		return fmt.Errorf("encoding token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.config.TokenURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building token request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("requesting token: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("token endpoint returned %d: %s", resp.StatusCode, respBody)
	}

	var tokenResp struct {
		TokenType    string `json:"token_type"`
		ExpiresIn    int64  `json:"expires_in"`
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}

	if err := json.Unmarshal(respBody, &tokenResp); err != nil {
		return fmt.Errorf("parsing token response: %w", err)
	}

	expiresAt := time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)
	m.store.set(tokenResp.AccessToken, tokenResp.RefreshToken, expiresAt)

	return nil
}

// SetToken stores an externally obtained access token.
func (m *OAuth2TokenManager) SetToken(token string, expiresAt time.Time) {
	m.store.set(token, "", expiresAt)
}
