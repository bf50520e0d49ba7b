package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/oauth2"

	"github.com/fewebahr/gogctl/internal/profile"
)

func sessionStore(t *testing.T, token profile.TokenSet) profile.Store {
	t.Helper()
	store := profile.NewFileStore(t.TempDir())
	require.NoError(t, store.SaveCredentials("work", &profile.Credentials{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		Token:        token,
	}))
	return store
}

// refreshEndpoint serves refresh_token grants; fail controls the response.
func refreshEndpoint(t *testing.T, fail bool) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.FormValue("grant_type"))
		if fail {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"error":"invalid_grant"}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		// Refresh responses omit the refresh token; the stored one must
		// survive the merge.
		fmt.Fprint(w, `{
			"access_token": "refreshed-access",
			"token_type": "Bearer",
			"expires_in": 3600
		}`)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testProvider(store profile.Store, tokenURL string) *Provider {
	p := NewProvider(store)
	p.endpoint = oauth2.Endpoint{TokenURL: tokenURL}
	p.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return p
}

func TestSessionMissingCredentials(t *testing.T) {
	store := profile.NewFileStore(t.TempDir())
	p := NewProvider(store)

	_, err := p.Session(context.Background(), "work")
	var missing *MissingCredentialsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "work", missing.Profile)
	// The message must point at the add-profile flow for this profile.
	assert.Contains(t, err.Error(), "gogctl profile add work")
}

func TestSessionEagerRefreshOnExpiredToken(t *testing.T) {
	srv := refreshEndpoint(t, false)
	store := sessionStore(t, profile.TokenSet{
		AccessToken:  "stale-access",
		RefreshToken: "stored-refresh",
		TokenType:    "Bearer",
		ExpiryDate:   time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC).UnixMilli(),
	})
	p := testProvider(store, srv.URL+"/token")

	session, err := p.Session(context.Background(), "work")
	require.NoError(t, err)

	tok, err := session.TokenSource().Token()
	require.NoError(t, err)
	assert.Equal(t, "refreshed-access", tok.AccessToken)

	// The refreshed token was persisted with the original refresh token.
	creds, err := store.LoadCredentials("work")
	require.NoError(t, err)
	assert.Equal(t, "refreshed-access", creds.Token.AccessToken)
	assert.Equal(t, "stored-refresh", creds.Token.RefreshToken)
	assert.Greater(t, creds.Token.ExpiryDate, int64(0))
}

func TestSessionEagerRefreshFailure(t *testing.T) {
	srv := refreshEndpoint(t, true)
	store := sessionStore(t, profile.TokenSet{
		AccessToken:  "stale-access",
		RefreshToken: "revoked-refresh",
		ExpiryDate:   time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC).UnixMilli(),
	})
	p := testProvider(store, srv.URL+"/token")

	_, err := p.Session(context.Background(), "work")
	var refreshErr *TokenRefreshError
	require.ErrorAs(t, err, &refreshErr)
	assert.Equal(t, "work", refreshErr.Profile)
	assert.Contains(t, err.Error(), "work")
}

func TestSessionUnknownExpiryDefersRefresh(t *testing.T) {
	// No token endpoint is reachable; the session must still be handed out
	// because an unknown expiry defers refresh to on-demand behavior.
	store := sessionStore(t, profile.TokenSet{
		AccessToken:  "access",
		RefreshToken: "refresh",
	})
	p := testProvider(store, "http://127.0.0.1:1/token")

	session, err := p.Session(context.Background(), "work")
	require.NoError(t, err)
	assert.Equal(t, "work", session.Profile())
}

func TestPersistingSourcePreservesRefreshToken(t *testing.T) {
	store := sessionStore(t, profile.TokenSet{
		AccessToken:  "old-access",
		RefreshToken: "original-refresh",
		Scope:        "scope-a",
		TokenType:    "Bearer",
	})

	// Simulate the underlying source handing out a refreshed token that
	// omits the refresh token.
	ps := &persistingSource{
		store:        store,
		profileName:  "work",
		clientID:     "client-id",
		clientSecret: "client-secret",
		logger:       slog.Default(),
		last: profile.TokenSet{
			AccessToken:  "old-access",
			RefreshToken: "original-refresh",
			Scope:        "scope-a",
			TokenType:    "Bearer",
		},
		src: oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: "new-access",
			TokenType:   "Bearer",
		}),
	}

	_, err := ps.Token()
	require.NoError(t, err)

	creds, err := store.LoadCredentials("work")
	require.NoError(t, err)
	assert.Equal(t, "new-access", creds.Token.AccessToken)
	assert.Equal(t, "original-refresh", creds.Token.RefreshToken)
	assert.Equal(t, "scope-a", creds.Token.Scope)
	assert.Equal(t, "client-id", creds.ClientID)
}

func TestPersistingSourceSkipsUnchangedToken(t *testing.T) {
	store := sessionStore(t, profile.TokenSet{
		AccessToken:  "same-access",
		RefreshToken: "refresh",
	})

	ps := &persistingSource{
		store:       store,
		profileName: "work",
		clientID:    "client-id",
		logger:      slog.Default(),
		last:        profile.TokenSet{AccessToken: "same-access", RefreshToken: "refresh"},
		src:         oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "same-access"}),
	}

	_, err := ps.Token()
	require.NoError(t, err)

	// Nothing changed, so the stored secret fields are untouched.
	creds, err := store.LoadCredentials("work")
	require.NoError(t, err)
	assert.Equal(t, "client-secret", creds.ClientSecret)
}
