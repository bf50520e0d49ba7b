// Package auth implements the OAuth credential lifecycle for gogctl
// profiles: the one-time browser-mediated authorization flow with its
// ephemeral callback listener, and the session provider that hands out
// auto-refreshing credential handles whose refreshed tokens are persisted
// back to the profile store.
package auth
