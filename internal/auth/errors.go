package auth

import "fmt"

// AuthorizationDeniedError indicates the provider returned an error on the
// OAuth callback, typically because the user declined consent.
type AuthorizationDeniedError struct {
	Reason string
}

func (e *AuthorizationDeniedError) Error() string {
	return fmt.Sprintf("authorization denied by provider: %s", e.Reason)
}

// PortBindError indicates no ephemeral local port could be acquired for the
// callback listener.
type PortBindError struct {
	Err error
}

func (e *PortBindError) Error() string {
	return fmt.Sprintf("failed to bind local callback port: %v", e.Err)
}

func (e *PortBindError) Unwrap() error { return e.Err }

// TokenExchangeError indicates the authorization code could not be
// exchanged for tokens.
type TokenExchangeError struct {
	Err error
}

func (e *TokenExchangeError) Error() string {
	return fmt.Sprintf("failed to exchange authorization code: %v", e.Err)
}

func (e *TokenExchangeError) Unwrap() error { return e.Err }

// MissingCredentialsError indicates a session was requested for a profile
// with no stored credentials.
type MissingCredentialsError struct {
	Profile string
}

func (e *MissingCredentialsError) Error() string {
	return fmt.Sprintf("no credentials stored for profile %q: run 'gogctl profile add %s' to authorize it", e.Profile, e.Profile)
}

// TokenRefreshError indicates the stored refresh token is invalid or the
// refresh call failed.
type TokenRefreshError struct {
	Profile string
	Err     error
}

func (e *TokenRefreshError) Error() string {
	return fmt.Sprintf("failed to refresh token for profile %q (re-authorize with 'gogctl profile remove %s' and 'gogctl profile add %s'): %v",
		e.Profile, e.Profile, e.Profile, e.Err)
}

func (e *TokenRefreshError) Unwrap() error { return e.Err }

// InvalidClientFileError indicates the supplied OAuth client descriptor is
// missing, unreadable, or lacks both "installed" and "web" shapes.
type InvalidClientFileError struct {
	Path   string
	Reason string
}

func (e *InvalidClientFileError) Error() string {
	return fmt.Sprintf("invalid OAuth client file %s: %s", e.Path, e.Reason)
}
