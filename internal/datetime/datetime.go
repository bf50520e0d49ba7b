package datetime

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// UnparseableDateTimeError indicates the input matched none of the
// recognized date/time shapes.
type UnparseableDateTimeError struct {
	Input string
}

func (e *UnparseableDateTimeError) Error() string {
	return fmt.Sprintf("could not parse date/time %q", e.Input)
}

// timeOfDay matches "H", "H:MM", "Ham", "H:MMpm" and similar.
var timeOfDay = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?\s*(?i:(am|pm))?$`)

// Parse converts a loosely formatted human date/time string into an
// absolute instant, resolving zone-less inputs in the local timezone.
func Parse(input string) (time.Time, error) {
	return ParseAt(input, time.Now())
}

// ParseAt is Parse with an injectable reference time.
//
// Accepted forms, tried in order, first match wins:
//  1. ISO 8601 date-time ("2025-01-15T10:00", optionally with seconds and
//     zone offset)
//  2. "today"/"tomorrow" prefix, optionally followed by a time of day
//  3. "YYYY-MM-DD HH:MM"
//  4. time of day alone ("9", "9:30", "2pm", "14:00")
//  5. free-form fallback via dateparse
func ParseAt(input string, now time.Time) (time.Time, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return time.Time{}, &UnparseableDateTimeError{Input: input}
	}
	loc := now.Location()

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}

	if base, rest, ok := dayKeyword(s, now); ok {
		if rest == "" {
			return base, nil
		}
		if t, ok := applyTimeOfDay(rest, base); ok {
			return t, nil
		}
		// Keyword with an unrecognized remainder falls through to the
		// free-form attempt on the full original string.
	} else {
		if t, err := time.ParseInLocation("2006-01-02 15:04", s, loc); err == nil {
			return t, nil
		}
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
		if t, ok := applyTimeOfDay(s, today); ok {
			return t, nil
		}
	}

	if t, err := dateparse.ParseIn(s, loc); err == nil {
		return t, nil
	}
	return time.Time{}, &UnparseableDateTimeError{Input: input}
}

// FormatUTC renders an instant in the canonical UTC-normalized RFC 3339
// form used for Calendar event start/end fields.
func FormatUTC(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// dayKeyword strips a leading "today" or "tomorrow" (case-insensitive) and
// returns the resulting base date at midnight plus the remainder.
func dayKeyword(s string, now time.Time) (base time.Time, rest string, ok bool) {
	lower := strings.ToLower(s)
	days := 0
	switch {
	case strings.HasPrefix(lower, "today"):
		rest = s[len("today"):]
	case strings.HasPrefix(lower, "tomorrow"):
		rest = s[len("tomorrow"):]
		days = 1
	default:
		return time.Time{}, "", false
	}
	base = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return base.AddDate(0, 0, days), strings.TrimSpace(rest), true
}

// applyTimeOfDay interprets a time-of-day string against a base date.
//
// 12-hour conversion: "pm" with hour < 12 adds 12, "am" with hour 12 sets
// hour 0. Without a suffix the hour is taken literally (24-hour clock).
func applyTimeOfDay(s string, base time.Time) (time.Time, bool) {
	m := timeOfDay.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return time.Time{}, false
	}

	hour, err := strconv.Atoi(m[1])
	if err != nil {
		return time.Time{}, false
	}
	minute := 0
	if m[2] != "" {
		if minute, err = strconv.Atoi(m[2]); err != nil || minute > 59 {
			return time.Time{}, false
		}
	}

	switch strings.ToLower(m[3]) {
	case "pm":
		if hour < 1 || hour > 12 {
			return time.Time{}, false
		}
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour < 1 || hour > 12 {
			return time.Time{}, false
		}
		if hour == 12 {
			hour = 0
		}
	default:
		if hour > 23 {
			return time.Time{}, false
		}
	}

	return time.Date(base.Year(), base.Month(), base.Day(), hour, minute, 0, 0, base.Location()), true
}
