package calendar

import "time"

// CalendarInfo describes a calendar list entry.
type CalendarInfo struct {
	ID         string `json:"id"`
	Summary    string `json:"summary"`
	Primary    bool   `json:"primary,omitempty"`
	AccessRole string `json:"accessRole,omitempty"`
	TimeZone   string `json:"timeZone,omitempty"`
}

// EventSummary describes a calendar event in listings.
type EventSummary struct {
	ID        string   `json:"id"`
	Summary   string   `json:"summary"`
	Start     string   `json:"start,omitempty"`
	End       string   `json:"end,omitempty"`
	Location  string   `json:"location,omitempty"`
	Status    string   `json:"status,omitempty"`
	Attendees []string `json:"attendees,omitempty"`
	HTMLLink  string   `json:"htmlLink,omitempty"`
}

// EventInput describes a calendar event to create.
type EventInput struct {
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	Attendees   []string
}
