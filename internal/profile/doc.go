// Package profile stores named, isolated OAuth credential namespaces.
//
// Each profile holds the OAuth client it was authorized with and its current
// token material. A single global config record tracks the default profile.
// Storage is plain JSON under the XDG config home; the Store interface
// allows an alternate backend (or a temp-dir store in tests) to be injected.
package profile
