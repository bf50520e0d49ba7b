package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fewebahr/gogctl/internal/calendar"
	"github.com/fewebahr/gogctl/internal/datetime"
)

func newCalendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "List and schedule calendar events",
	}
	cmd.AddCommand(newCalendarCalendarsCmd())
	cmd.AddCommand(newCalendarEventsCmd())
	cmd.AddCommand(newCalendarCreateCmd())
	cmd.AddCommand(newCalendarDeleteCmd())
	return cmd
}

func calendarClient(cmd *cobra.Command) (*calendar.Client, error) {
	session, err := resolveSession(cmd.Context())
	if err != nil {
		return nil, err
	}
	return calendar.NewClient(cmd.Context(), session)
}

func newCalendarCalendarsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "calendars",
		Short: "List calendars",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := calendarClient(cmd)
			if err != nil {
				return err
			}
			calendars, err := client.ListCalendars()
			if err != nil {
				return err
			}

			if flagJSON {
				return writeJSON(cmd.OutOrStdout(), calendars)
			}
			w, flush := tableWriter(cmd.OutOrStdout())
			defer flush()
			printRow(w, "ID", "NAME", "ROLE", "PRIMARY")
			for _, c := range calendars {
				marker := ""
				if c.Primary {
					marker = "*"
				}
				printRow(w, c.ID, c.Summary, c.AccessRole, marker)
			}
			return nil
		},
	}
}

func newCalendarEventsCmd() *cobra.Command {
	var calendarID, from, to, query string

	cmd := &cobra.Command{
		Use:   "events",
		Short: "List events in a time window",
		Long: `List events in a calendar. The window bounds accept the same loose
date/time forms as event creation: RFC 3339, "YYYY-MM-DD HH:MM",
"today 9:00", "tomorrow 2pm" or a bare time of day.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			timeMin := time.Now()
			if from != "" {
				var err error
				if timeMin, err = datetime.Parse(from); err != nil {
					return err
				}
			}
			timeMax := timeMin.AddDate(0, 0, 7)
			if to != "" {
				var err error
				if timeMax, err = datetime.Parse(to); err != nil {
					return err
				}
			}

			client, err := calendarClient(cmd)
			if err != nil {
				return err
			}
			events, err := client.ListEvents(calendarID, timeMin, timeMax, query)
			if err != nil {
				return err
			}

			if flagJSON {
				return writeJSON(cmd.OutOrStdout(), events)
			}
			if len(events) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No events")
				return nil
			}
			w, flush := tableWriter(cmd.OutOrStdout())
			defer flush()
			printRow(w, "ID", "START", "END", "SUMMARY")
			for _, e := range events {
				printRow(w, e.ID, e.Start, e.End, e.Summary)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&calendarID, "calendar", "primary", "Calendar ID")
	cmd.Flags().StringVar(&from, "from", "", "Window start (default: now)")
	cmd.Flags().StringVar(&to, "to", "", "Window end (default: start + 7 days)")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Free-text event filter")
	return cmd
}

func newCalendarCreateCmd() *cobra.Command {
	var calendarID, start, end string
	input := calendar.EventInput{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an event",
		Long: `Create a calendar event. Start and end accept loose date/time forms:
"2025-01-15T10:00", "2025-01-15 10:00", "tomorrow 2pm" or "14:00".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if input.Start, err = datetime.Parse(start); err != nil {
				return err
			}
			if input.End, err = datetime.Parse(end); err != nil {
				return err
			}

			client, err := calendarClient(cmd)
			if err != nil {
				return err
			}
			created, err := client.CreateEvent(calendarID, input)
			if err != nil {
				return err
			}

			if flagJSON {
				return writeJSON(cmd.OutOrStdout(), created)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created event %s (%s)\n", created.ID, created.HTMLLink)
			return nil
		},
	}

	cmd.Flags().StringVar(&calendarID, "calendar", "primary", "Calendar ID")
	cmd.Flags().StringVar(&input.Summary, "summary", "", "Event title")
	cmd.Flags().StringVar(&input.Description, "description", "", "Event description")
	cmd.Flags().StringVar(&input.Location, "location", "", "Event location")
	cmd.Flags().StringVar(&start, "start", "", "Event start")
	cmd.Flags().StringVar(&end, "end", "", "Event end")
	cmd.Flags().StringSliceVar(&input.Attendees, "attendee", nil, "Attendee email (repeatable)")
	_ = cmd.MarkFlagRequired("summary")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func newCalendarDeleteCmd() *cobra.Command {
	var calendarID string

	cmd := &cobra.Command{
		Use:   "delete <eventID>",
		Short: "Delete an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := calendarClient(cmd)
			if err != nil {
				return err
			}
			if err := client.DeleteEvent(calendarID, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted event %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&calendarID, "calendar", "primary", "Calendar ID")
	return cmd
}
