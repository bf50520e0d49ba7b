// Package drive wraps the Google Drive API behind a small, read-only,
// profile-scoped client.
package drive
