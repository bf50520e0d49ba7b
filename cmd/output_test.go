package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{
			name:     "struct",
			value:    struct{ Name string }{Name: "work"},
			expected: "{\n  \"Name\": \"work\"\n}\n",
		},
		{
			name:     "slice",
			value:    []string{"a", "b"},
			expected: "[\n  \"a\",\n  \"b\"\n]\n",
		},
		{
			name:     "empty slice",
			value:    []string{},
			expected: "[]\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := writeJSON(&buf, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestTableWriter(t *testing.T) {
	var buf bytes.Buffer
	tw, flush := tableWriter(&buf)
	printRow(tw, "NAME", "EMAIL")
	printRow(tw, "work", "alice@example.com")
	printRow(tw, "personal", "bob@example.com")
	flush()

	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "alice@example.com")

	// Columns line up: every row starts EMAIL at the same offset.
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)
	idx := bytes.Index(lines[0], []byte("EMAIL"))
	assert.Equal(t, idx, bytes.Index(lines[2], []byte("bob@example.com")))
}

func TestPrintRow(t *testing.T) {
	var buf bytes.Buffer
	printRow(&buf, "a", 2, true)
	assert.Equal(t, "a\t2\ttrue\n", buf.String())
}
