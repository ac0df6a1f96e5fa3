package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tokenEndpoint serves the refresh-token grant, rotating the refresh
// token on every call.
func tokenEndpoint(t *testing.T, grants *atomic.Int64) http.HandlerFunc {
	t.Helper()

	return func(writer http.ResponseWriter, request *http.Request) {
		grants.Add(1)

		assert.Equal(t, http.MethodPost, request.Method)
		assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

		var grant map[string]string
		require.NoError(t, json.NewDecoder(request.Body).Decode(&grant))
		assert.Equal(t, "refresh_token", grant["grant_type"])
		assert.Equal(t, "client-id", grant["client_id"])
		assert.Equal(t, "client-secret", grant["client_secret"])
		assert.NotEmpty(t, grant["refresh_token"])

		_ = json.NewEncoder(writer).Encode(map[string]any{
			"token_type":    "Bearer",
			"expires_in":    86400,
			"access_token":  "access-" + grant["refresh_token"],
			"refresh_token": "rotated-" + grant["refresh_token"],
		})
	}
}

func newTestManager(serverURL string) *OAuth2TokenManager {
	return NewOAuth2TokenManager(&OAuth2Config{
		TokenURL:     serverURL + "/oauth2/access_token",
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "https://example.com/callback",
		RefreshToken: "seed",
	})
}

func TestOAuth2TokenManagerRefreshesOnFirstUse(t *testing.T) {
	t.Parallel()

	var grants atomic.Int64

	server := httptest.NewServer(tokenEndpoint(t, &grants))
	defer server.Close()

	manager := newTestManager(server.URL)

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "access-seed", token)
	assert.Equal(t, int64(1), grants.Load())

	// A fresh token is served from the store without another grant.
	token, err = manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "access-seed", token)
	assert.Equal(t, int64(1), grants.Load())
}

func TestOAuth2TokenManagerRotatesRefreshToken(t *testing.T) {
	t.Parallel()

	var grants atomic.Int64

	server := httptest.NewServer(tokenEndpoint(t, &grants))
	defer server.Close()

	manager := newTestManager(server.URL)

	require.NoError(t, manager.RefreshToken(context.Background()))
	require.NoError(t, manager.RefreshToken(context.Background()))

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "access-rotated-seed", token)
	assert.Equal(t, int64(2), grants.Load())
}

func TestOAuth2TokenManagerRefreshesNearExpiry(t *testing.T) {
	t.Parallel()

	var grants atomic.Int64

	server := httptest.NewServer(tokenEndpoint(t, &grants))
	defer server.Close()

	manager := newTestManager(server.URL)
	manager.SetToken("stale", time.Now().Add(5*time.Second))

	// Inside the expiry skew window the stored token is not trusted.
	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "access-seed", token)
	assert.Equal(t, int64(1), grants.Load())
}

func TestOAuth2TokenManagerWithoutRefreshToken(t *testing.T) {
	t.Parallel()

	manager := NewOAuth2TokenManager(&OAuth2Config{TokenURL: "http://127.0.0.1:1"})

	err := manager.RefreshToken(context.Background())
	assert.ErrorIs(t, err, ErrNoRefreshToken)
}

func TestOAuth2TokenManagerEndpointError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusBadRequest)
		_, _ = writer.Write([]byte(`{"hint": "invalid refresh token"}`))
	}))
	defer server.Close()

	manager := newTestManager(server.URL)

	err := manager.RefreshToken(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}
