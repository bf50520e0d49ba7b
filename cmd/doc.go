// Package cmd implements the command-line interface for gogctl.
//
// This package provides the following command groups:
//   - profile: Manage Google account profiles (add, list, remove, set-default, current, whoami)
//   - gmail: Read, send, and organize Gmail messages
//   - calendar: List calendars and manage events
//   - drive: Browse and download Drive files
//   - version: Display version information
//
// Every command that talks to a Google API resolves the active profile
// from the --profile flag, the GOGCTL_PROFILE environment variable, or
// the stored default, in that order.
package cmd
