package auth

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/browser"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/fewebahr/gogctl/internal/logging"
	"github.com/fewebahr/gogctl/internal/profile"
)

// CallbackTimeout is how long the flow waits for the browser redirect
// before giving up.
const CallbackTimeout = 5 * time.Minute

const successPage = `<html><body>
<h1>Authorization complete</h1>
<p>You can close this window and return to the terminal.</p>
</body></html>`

const failurePage = `<html><body>
<h1>Authorization failed</h1>
<p>%s</p>
<p>You can close this window and return to the terminal.</p>
</body></html>`

// Flow performs the one-time interactive OAuth grant for a new profile and
// persists the resulting token set.
//
// The flow binds an OS-assigned ephemeral port, opens the user's browser on
// the authorization URL, waits for exactly one meaningful callback request,
// exchanges the code, and writes the credentials through the profile store.
// The callback listener is shut down on every exit path.
type Flow struct {
	store    profile.Store
	endpoint oauth2.Endpoint

	// openBrowser launches the user's browser; replaced in tests.
	openBrowser func(url string) error

	// out receives the authorization URL so headless users can open it
	// manually.
	out io.Writer

	timeout time.Duration
	logger  *slog.Logger
}

// NewFlow creates an authorization flow backed by store.
func NewFlow(store profile.Store) *Flow {
	return &Flow{
		store:       store,
		endpoint:    google.Endpoint,
		openBrowser: browser.OpenURL,
		out:         os.Stdout,
		timeout:     CallbackTimeout,
		logger:      logging.WithOperation(slog.Default(), "auth.flow"),
	}
}

// callbackResult is delivered exactly once by the callback handler.
type callbackResult struct {
	code string
	err  error
}

// Authorize runs the interactive grant for a new profile.
//
// The profile must not already exist. On success the exchanged credentials
// and a fresh profile config are persisted; if no default profile is set,
// the new profile becomes the default.
func (f *Flow) Authorize(ctx context.Context, name, clientID, clientSecret string) error {
	if !profile.ValidName(name) {
		return &profile.InvalidNameError{Name: name}
	}
	if f.store.Exists(name) {
		return &profile.DuplicateProfileError{Name: name}
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return &PortBindError{Err: err}
	}
	port := listener.Addr().(*net.TCPAddr).Port
	logger := logging.WithProfile(f.logger, name)
	logger.Debug("callback listener bound", slog.Int("port", port))

	conf := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     f.endpoint,
		RedirectURL:  fmt.Sprintf("http://127.0.0.1:%d/", port),
		Scopes:       Scopes,
	}

	state := uuid.NewString()
	authURL := conf.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"))

	results := make(chan callbackResult, 1)
	var once sync.Once
	deliver := func(res callbackResult) {
		once.Do(func() { results <- res })
	}

	srv := &http.Server{Handler: callbackHandler(state, deliver)}
	go func() {
		// Serve returns ErrServerClosed on shutdown; any earlier error
		// means the callback can never arrive.
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			deliver(callbackResult{err: fmt.Errorf("callback listener failed: %w", err)})
		}
	}()
	// The listener must never outlive the flow, on success or failure.
	defer srv.Close()

	if err := f.openBrowser(authURL); err != nil {
		logger.Debug("browser launch failed, falling back to manual URL", logging.Err(err))
	}
	fmt.Fprintf(f.out, "Open this URL in your browser to authorize profile %q:\n\n  %s\n\n", name, authURL)

	timer := time.NewTimer(f.timeout)
	defer timer.Stop()

	var res callbackResult
	select {
	case res = <-results:
	case <-timer.C:
		return fmt.Errorf("timed out after %s waiting for the authorization callback", f.timeout)
	case <-ctx.Done():
		return ctx.Err()
	}
	if res.err != nil {
		return res.err
	}

	// Stop listening before the exchange round trip; the callback port has
	// served its single purpose. Graceful shutdown lets the success page
	// finish flushing to the browser.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	_ = srv.Shutdown(shutdownCtx)
	cancel()

	tok, err := conf.Exchange(ctx, res.code)
	if err != nil {
		return &TokenExchangeError{Err: err}
	}

	tokens := profile.TokenSetFromOAuth2(tok)
	if scope, ok := tok.Extra("scope").(string); ok && scope != "" {
		tokens.Scope = scope
	} else {
		tokens.Scope = strings.Join(Scopes, " ")
	}

	creds := &profile.Credentials{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Token:        tokens,
	}
	if err := f.store.SaveCredentials(name, creds); err != nil {
		return err
	}
	if err := f.store.SaveConfig(name, &profile.Config{CreatedAt: time.Now().UTC()}); err != nil {
		return err
	}

	def, err := f.store.Default()
	if err != nil {
		return err
	}
	if def == "" {
		if err := f.store.SetDefault(name); err != nil {
			return err
		}
	}

	logger.Info("profile authorized", logging.Status(logging.StatusSuccess))
	return nil
}

// callbackHandler handles the single meaningful redirect request.
//
// Requests carrying neither code nor error (browser prefetch, favicon) get
// a 404 and the listener keeps waiting.
func callbackHandler(state string, deliver func(callbackResult)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		query := r.URL.Query()

		if errParam := query.Get("error"); errParam != "" {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			fmt.Fprintf(w, failurePage, "The provider reported: "+errParam)
			deliver(callbackResult{err: &AuthorizationDeniedError{Reason: errParam}})
			return
		}

		if code := query.Get("code"); code != "" {
			if query.Get("state") != state {
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				fmt.Fprintf(w, failurePage, "State parameter mismatch.")
				deliver(callbackResult{err: &AuthorizationDeniedError{Reason: "state mismatch"}})
				return
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			fmt.Fprint(w, successPage)
			deliver(callbackResult{code: code})
			return
		}

		http.NotFound(w, r)
	})
}
