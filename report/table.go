// Package report renders a pool's stats as a plain, non-interactive table
// once a run finishes - deliberately not a live terminal UI (spec.md §1
// places the terminal UI out of scope).
package report

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"

	"github.com/corefuzz/corefuzz/pool"
)

// Table renders one or more pools' Stats side by side as a single table:
// one row per distinct field name across all pools, one column per pool.
// Grounded on gooze-dev-gooze's internal/controller/simple.go, which
// renders its own per-file mutation counts the same way.
func Table(stats ...pool.Stats) string {
	var buf bytes.Buffer

	header := []string{"field"}
	for _, s := range stats {
		header = append(header, s.Name)
	}

	table := tablewriter.NewWriter(&buf)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")

	fieldNames := orderedFieldNames(stats)
	for _, name := range fieldNames {
		row := []string{name}
		for _, s := range stats {
			row = append(row, valueFor(s, name))
		}
		table.Append(row)
	}

	table.Render()
	return buf.String()
}

// orderedFieldNames collects every field name across stats, preserving
// first-seen order so columns line up predictably run over run.
func orderedFieldNames(stats []pool.Stats) []string {
	seen := make(map[string]bool)
	var names []string
	for _, s := range stats {
		for _, f := range s.Fields {
			if !seen[f.Name] {
				seen[f.Name] = true
				names = append(names, f.Name)
			}
		}
	}
	return names
}

func valueFor(s pool.Stats, name string) string {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	return "-"
}

// CSV renders the same stats as gooze's ToCSV convention: one line per
// pool, not transposed - useful for piping into a spreadsheet or another
// tool rather than reading at a terminal.
func CSV(stats ...pool.Stats) string {
	var out string
	for i, s := range stats {
		if i > 0 {
			out += "\n"
		}
		out += pool.ToCSV(s)
	}
	return out
}

// Summary formats a short one-line progress report for a running fuzzer,
// the kind printed to stderr periodically rather than rendered as a table.
func Summary(iterations int, corpusSize int, elapsed string) string {
	return fmt.Sprintf("iterations=%d corpus=%d elapsed=%s", iterations, corpusSize, elapsed)
}
