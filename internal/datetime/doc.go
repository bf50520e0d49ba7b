// Package datetime converts loosely formatted human date/time strings into
// absolute instants for calendar event scheduling.
package datetime
