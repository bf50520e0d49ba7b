// Package gmail wraps the Gmail API behind a small, profile-scoped client.
package gmail
