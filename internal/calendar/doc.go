// Package calendar wraps the Google Calendar API behind a small,
// profile-scoped client.
package calendar
