package datetime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reference is "today" for all deterministic tests: 2025-06-01 09:30 local.
func reference(t *testing.T) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	return time.Date(2025, 6, 1, 9, 30, 0, 0, loc)
}

func TestParseAt(t *testing.T) {
	now := reference(t)
	loc := now.Location()

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{
			name:  "rfc3339 utc",
			input: "2025-01-15T10:00:00Z",
			want:  time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			name:  "rfc3339 with offset",
			input: "2025-01-15T10:00:00+02:00",
			want:  time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC),
		},
		{
			name:  "iso without zone is local",
			input: "2025-01-15T10:00",
			want:  time.Date(2025, 1, 15, 10, 0, 0, 0, loc),
		},
		{
			name:  "space separated date time",
			input: "2025-01-15 10:00",
			want:  time.Date(2025, 1, 15, 10, 0, 0, 0, loc),
		},
		{
			name:  "tomorrow with pm time",
			input: "tomorrow 2pm",
			want:  time.Date(2025, 6, 2, 14, 0, 0, 0, loc),
		},
		{
			name:  "today with minute time",
			input: "today 9:15",
			want:  time.Date(2025, 6, 1, 9, 15, 0, 0, loc),
		},
		{
			name:  "keyword is case insensitive",
			input: "Tomorrow 10AM",
			want:  time.Date(2025, 6, 2, 10, 0, 0, 0, loc),
		},
		{
			name:  "bare tomorrow is midnight",
			input: "tomorrow",
			want:  time.Date(2025, 6, 2, 0, 0, 0, 0, loc),
		},
		{
			name:  "24 hour time without suffix",
			input: "14:00",
			want:  time.Date(2025, 6, 1, 14, 0, 0, 0, loc),
		},
		{
			name:  "bare hour",
			input: "9",
			want:  time.Date(2025, 6, 1, 9, 0, 0, 0, loc),
		},
		{
			name:  "pm conversion",
			input: "2:30pm",
			want:  time.Date(2025, 6, 1, 14, 30, 0, 0, loc),
		},
		{
			name:  "noon stays noon",
			input: "12pm",
			want:  time.Date(2025, 6, 1, 12, 0, 0, 0, loc),
		},
		{
			name:  "12am is midnight",
			input: "12am",
			want:  time.Date(2025, 6, 1, 0, 0, 0, 0, loc),
		},
		{
			name:  "surrounding whitespace",
			input: "  today 2pm  ",
			want:  time.Date(2025, 6, 1, 14, 0, 0, 0, loc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAt(tt.input, now)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
		})
	}
}

func TestParseAtInvalid(t *testing.T) {
	now := reference(t)

	tests := []struct {
		name  string
		input string
	}{
		{name: "13pm is out of 12-hour range", input: "13pm"},
		{name: "0am out of range", input: "0am"},
		{name: "garbage", input: "not a date at all zzz"},
		{name: "empty", input: ""},
		{name: "whitespace only", input: "   "},
		{name: "minute overflow", input: "9:75"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAt(tt.input, now)
			var parseErr *UnparseableDateTimeError
			require.ErrorAs(t, err, &parseErr)
			// The error names the original input verbatim.
			assert.Equal(t, tt.input, parseErr.Input)
		})
	}
}

func TestParseAtFreeFormFallback(t *testing.T) {
	now := reference(t)

	got, err := ParseAt("Jan 15, 2025 10:00", now)
	require.NoError(t, err)
	assert.Equal(t, 2025, got.Year())
	assert.Equal(t, time.January, got.Month())
	assert.Equal(t, 15, got.Day())
	assert.Equal(t, 10, got.Hour())
}

func TestFormatUTC(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	instant := time.Date(2025, 6, 2, 14, 0, 0, 0, loc)
	assert.Equal(t, "2025-06-02T18:00:00Z", FormatUTC(instant))
}
