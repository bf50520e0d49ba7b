// Package logging provides structured logging utilities for gogctl.
//
// It centralizes attribute naming and sanitization so the rest of the
// codebase logs through the standard library's slog package in a consistent
// shape. User emails are hashed before logging and tokens are never logged
// directly.
package logging
