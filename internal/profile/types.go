package profile

import (
	"time"

	"golang.org/x/oauth2"
)

// ConfigVersion is written into the global config record so future layout
// changes can be migrated.
const ConfigVersion = 1

// TokenSet holds the OAuth token material for a profile.
//
// ExpiryDate is epoch milliseconds to keep the on-disk record portable
// across client implementations.
type TokenSet struct {
	// AccessToken is the bearer token for API access.
	AccessToken string `json:"accessToken"`

	// RefreshToken is used to obtain new access tokens. Providers only
	// issue it on first consent, so it must never be overwritten with an
	// empty value.
	RefreshToken string `json:"refreshToken,omitempty"`

	// Scope is the space-separated list of granted scopes.
	Scope string `json:"scope,omitempty"`

	// TokenType is typically "Bearer".
	TokenType string `json:"tokenType,omitempty"`

	// ExpiryDate is when the access token expires, in epoch milliseconds.
	// Zero means the expiry is unknown.
	ExpiryDate int64 `json:"expiryDate,omitempty"`
}

// Expired reports whether the access token is known to have expired.
// An unknown expiry is never considered expired.
func (t TokenSet) Expired(now time.Time) bool {
	if t.ExpiryDate == 0 {
		return false
	}
	return t.ExpiryDate < now.UnixMilli()
}

// Expiry returns the expiry as a time.Time, or the zero time if unknown.
func (t TokenSet) Expiry() time.Time {
	if t.ExpiryDate == 0 {
		return time.Time{}
	}
	return time.UnixMilli(t.ExpiryDate)
}

// Merge overlays a refresh response onto the stored token set.
// The previous refresh token is preserved whenever the update omits one.
func (t TokenSet) Merge(update TokenSet) TokenSet {
	merged := update
	if merged.RefreshToken == "" {
		merged.RefreshToken = t.RefreshToken
	}
	if merged.Scope == "" {
		merged.Scope = t.Scope
	}
	if merged.TokenType == "" {
		merged.TokenType = t.TokenType
	}
	return merged
}

// OAuth2 converts the token set into an oauth2.Token.
func (t TokenSet) OAuth2() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    t.TokenType,
		Expiry:       t.Expiry(),
	}
}

// TokenSetFromOAuth2 converts an oauth2.Token into a TokenSet.
func TokenSetFromOAuth2(tok *oauth2.Token) TokenSet {
	ts := TokenSet{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
	}
	if !tok.Expiry.IsZero() {
		ts.ExpiryDate = tok.Expiry.UnixMilli()
	}
	return ts
}

// Credentials is the per-profile credentials record: the OAuth client the
// profile was created with plus its current token material.
//
// ClientID and ClientSecret are immutable once the profile exists.
type Credentials struct {
	ClientID     string   `json:"clientId"`
	ClientSecret string   `json:"clientSecret"`
	Token        TokenSet `json:"tokens"`
}

// Config is the per-profile config record.
type Config struct {
	// Email is the account email, resolved lazily after authorization.
	Email string `json:"email,omitempty"`

	// CreatedAt is when the profile was created.
	CreatedAt time.Time `json:"createdAt"`
}

// GlobalConfig is the single process-wide config record.
type GlobalConfig struct {
	// DefaultProfile names the profile used when none is selected
	// explicitly. Empty means no default is set.
	DefaultProfile string `json:"defaultProfile,omitempty"`

	Version int `json:"version"`
}
