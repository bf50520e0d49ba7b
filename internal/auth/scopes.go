package auth

// Scopes are the Google OAuth scopes gogctl requests during authorization.
//
// The stored token's scope must remain a superset of these:
//   - Gmail: read, modify, send
//   - Calendar: read/write events
//   - Drive: read-only
var Scopes = []string{
	"https://www.googleapis.com/auth/gmail.readonly",
	"https://www.googleapis.com/auth/gmail.modify",
	"https://www.googleapis.com/auth/gmail.send",
	"https://www.googleapis.com/auth/calendar.events",
	"https://www.googleapis.com/auth/drive.readonly",
}
