package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	goauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/fewebahr/gogctl/internal/logging"
	"github.com/fewebahr/gogctl/internal/profile"
)

// Provider produces authenticated sessions for stored profiles.
type Provider struct {
	store    profile.Store
	endpoint oauth2.Endpoint
	logger   *slog.Logger
	now      func() time.Time
}

// NewProvider creates a session provider backed by store.
func NewProvider(store profile.Store) *Provider {
	return &Provider{
		store:    store,
		endpoint: google.Endpoint,
		logger:   logging.WithOperation(slog.Default(), "auth.session"),
		now:      time.Now,
	}
}

// Session is an authenticated, auto-refreshing credential handle for one
// profile. Refreshed tokens are written back to the profile store as they
// are obtained.
type Session struct {
	profileName string
	store       profile.Store
	source      oauth2.TokenSource
}

// Session returns a ready-to-use credential handle for the named profile.
//
// If the stored access token is known to have expired, a refresh is forced
// before returning so the first API call does not fail or double-retry.
// An unknown expiry defers refresh to the first API call.
func (p *Provider) Session(ctx context.Context, name string) (*Session, error) {
	creds, err := p.store.LoadCredentials(name)
	if err != nil {
		return nil, err
	}
	if creds == nil {
		return nil, &MissingCredentialsError{Profile: name}
	}

	conf := &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Endpoint:     p.endpoint,
		Scopes:       Scopes,
	}

	// conf.TokenSource refreshes on demand; the persisting wrapper observes
	// every token it hands out and commits changes back to the store.
	source := &persistingSource{
		store:        p.store,
		profileName:  name,
		clientID:     creds.ClientID,
		clientSecret: creds.ClientSecret,
		last:         creds.Token,
		src:          conf.TokenSource(ctx, creds.Token.OAuth2()),
		logger:       logging.WithProfile(p.logger, name),
	}

	if creds.Token.Expired(p.now()) {
		if _, err := source.Token(); err != nil {
			return nil, &TokenRefreshError{Profile: name, Err: err}
		}
	}

	return &Session{
		profileName: name,
		store:       p.store,
		source:      source,
	}, nil
}

// Profile returns the profile name this session is associated with.
func (s *Session) Profile() string {
	return s.profileName
}

// TokenSource returns the auto-refreshing, persisting token source.
func (s *Session) TokenSource() oauth2.TokenSource {
	return s.source
}

// HTTPClient returns an HTTP client authenticated with the session.
// The client is configured to use HTTP/1.1 to avoid HTTP/2 protocol errors
// with the Google APIs.
func (s *Session) HTTPClient(ctx context.Context) *http.Client {
	client := oauth2.NewClient(ctx, s.source)
	transport := client.Transport.(*oauth2.Transport)
	transport.Base = &http.Transport{
		ForceAttemptHTTP2: false,
	}
	return client
}

// Email resolves the account email for this session, lazily.
//
// The first call fetches it from the userinfo endpoint and caches it in the
// profile config; later calls return the cached value.
func (s *Session) Email(ctx context.Context) (string, error) {
	cfg, err := s.store.LoadConfig(s.profileName)
	if err != nil {
		return "", err
	}
	if cfg != nil && cfg.Email != "" {
		return cfg.Email, nil
	}

	svc, err := goauth2.NewService(ctx, option.WithTokenSource(s.source))
	if err != nil {
		return "", fmt.Errorf("failed to create userinfo service: %w", err)
	}
	info, err := svc.Userinfo.Get().Do()
	if err != nil {
		return "", fmt.Errorf("failed to fetch userinfo: %w", err)
	}
	slog.Default().Debug("resolved account email",
		logging.Profile(s.profileName), logging.UserHash(info.Email))

	if cfg == nil {
		cfg = &profile.Config{CreatedAt: time.Now().UTC()}
	}
	cfg.Email = info.Email
	if err := s.store.SaveConfig(s.profileName, cfg); err != nil {
		return "", err
	}
	return info.Email, nil
}

// persistingSource wraps a refreshing token source and writes every token
// change back to the profile store, preserving the stored refresh token
// whenever a refresh response omits one.
type persistingSource struct {
	store        profile.Store
	profileName  string
	clientID     string
	clientSecret string
	logger       *slog.Logger
	src          oauth2.TokenSource

	mu   sync.Mutex
	last profile.TokenSet
}

func (ps *persistingSource) Token() (*oauth2.Token, error) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	tok, err := ps.src.Token()
	if err != nil {
		return nil, err
	}
	if tok.AccessToken == ps.last.AccessToken {
		return tok, nil
	}

	merged := ps.last.Merge(profile.TokenSetFromOAuth2(tok))
	creds := &profile.Credentials{
		ClientID:     ps.clientID,
		ClientSecret: ps.clientSecret,
		Token:        merged,
	}
	if err := ps.store.SaveCredentials(ps.profileName, creds); err != nil {
		return nil, fmt.Errorf("failed to persist refreshed token: %w", err)
	}
	ps.last = merged
	ps.logger.Debug("refreshed token persisted",
		slog.String("access_token", logging.SanitizeToken(merged.AccessToken)))
	return tok, nil
}
