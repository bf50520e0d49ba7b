package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
)

// writeJSON renders v as indented JSON for machine consumption.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// tableWriter returns a tab-aligned writer and its flush func.
func tableWriter(w io.Writer) (*tabwriter.Writer, func()) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	return tw, func() { _ = tw.Flush() }
}

// printRow writes one tab-separated table row.
func printRow(w io.Writer, cols ...any) {
	for i, col := range cols {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, col)
	}
	fmt.Fprintln(w)
}
