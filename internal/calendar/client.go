package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/fewebahr/gogctl/internal/auth"
	"github.com/fewebahr/gogctl/internal/datetime"
	"github.com/fewebahr/gogctl/internal/logging"
)

// Client wraps the Google Calendar service for one profile's session.
type Client struct {
	svc     *calendar.Service
	profile string
}

// NewClient creates a Calendar client authenticated with the given session.
func NewClient(ctx context.Context, session *auth.Session) (*Client, error) {
	svc, err := calendar.NewService(ctx, option.WithHTTPClient(session.HTTPClient(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar service: %w", err)
	}
	slog.Default().Debug("service client created",
		logging.Service("calendar"), logging.Profile(session.Profile()))
	return &Client{svc: svc, profile: session.Profile()}, nil
}

// Profile returns the profile name this client is associated with.
func (c *Client) Profile() string {
	return c.profile
}

// ListCalendars lists all calendars accessible to the user.
func (c *Client) ListCalendars() ([]CalendarInfo, error) {
	list, err := c.svc.CalendarList.List().Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list calendars: %w", err)
	}

	var calendars []CalendarInfo
	for _, entry := range list.Items {
		calendars = append(calendars, CalendarInfo{
			ID:         entry.Id,
			Summary:    entry.Summary,
			Primary:    entry.Primary,
			AccessRole: entry.AccessRole,
			TimeZone:   entry.TimeZone,
		})
	}
	return calendars, nil
}

// ListEvents lists events in a calendar within a time range.
func (c *Client) ListEvents(calendarID string, timeMin, timeMax time.Time, query string) ([]EventSummary, error) {
	call := c.svc.Events.List(calendarID).
		TimeMin(datetime.FormatUTC(timeMin)).
		TimeMax(datetime.FormatUTC(timeMax)).
		SingleEvents(true).
		OrderBy("startTime")

	if query != "" {
		call = call.Q(query)
	}

	events, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	var summaries []EventSummary
	for _, event := range events.Items {
		summaries = append(summaries, toEventSummary(event))
	}
	return summaries, nil
}

// CreateEvent creates a new calendar event.
func (c *Client) CreateEvent(calendarID string, input EventInput) (*EventSummary, error) {
	if input.Summary == "" {
		return nil, fmt.Errorf("event summary is required")
	}
	if !input.End.After(input.Start) {
		return nil, fmt.Errorf("event end must be after its start")
	}

	event := &calendar.Event{
		Summary:     input.Summary,
		Description: input.Description,
		Location:    input.Location,
		Start: &calendar.EventDateTime{
			DateTime: datetime.FormatUTC(input.Start),
		},
		End: &calendar.EventDateTime{
			DateTime: datetime.FormatUTC(input.End),
		},
	}

	if len(input.Attendees) > 0 {
		var attendees []*calendar.EventAttendee
		for _, email := range input.Attendees {
			attendees = append(attendees, &calendar.EventAttendee{Email: email})
		}
		event.Attendees = attendees
	}

	created, err := c.svc.Events.Insert(calendarID, event).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	summary := toEventSummary(created)
	return &summary, nil
}

// DeleteEvent deletes a calendar event.
func (c *Client) DeleteEvent(calendarID, eventID string) error {
	if err := c.svc.Events.Delete(calendarID, eventID).Do(); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}

// toEventSummary converts an API event; all-day events carry a date instead
// of a date-time.
func toEventSummary(event *calendar.Event) EventSummary {
	summary := EventSummary{
		ID:       event.Id,
		Summary:  event.Summary,
		Location: event.Location,
		Status:   event.Status,
		HTMLLink: event.HtmlLink,
	}
	if event.Start != nil {
		summary.Start = eventTime(event.Start)
	}
	if event.End != nil {
		summary.End = eventTime(event.End)
	}
	for _, a := range event.Attendees {
		summary.Attendees = append(summary.Attendees, a.Email)
	}
	return summary
}

func eventTime(edt *calendar.EventDateTime) string {
	if edt.DateTime != "" {
		return edt.DateTime
	}
	return edt.Date
}
