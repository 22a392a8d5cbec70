package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
)

// Generate writes human-readable terminal output.
func (r *TextReporter) Generate(data Data) error {
	tw := tabwriter.NewWriter(r.Writer, 0, 4, 2, ' ', 0)
	w := &errWriter{w: r.Writer}

	title := fmt.Sprintf("%s: %s dataset report", data.Tool, data.Dataset)
	w.println(title)
	w.println(strings.Repeat("=", len(title)))
	w.printf("Filter: (%d) %s\n", data.Filter.ID, data.Filter.Label)
	w.println("")

	if len(data.Statistics) > 0 {
		writeStatistics(w, data.Statistics)
		w.println("")
	}

	switch {
	case len(data.Table.Columns) == 0:
	case len(data.Table.Rows) == 0:
		w.println("No countries matched the filter.")
		w.println("")
	default:
		tw2 := &errWriter{w: tw}
		tw2.printf("%s\n", strings.Join(data.Table.Columns, "\t"))
		tw2.printf("%s\n", strings.Join(underline(data.Table.Columns), "\t"))
		for _, row := range data.Table.Rows {
			tw2.printf("%s\n", strings.Join(row, "\t"))
		}
		if tw2.err != nil {
			return tw2.err
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		w.println("")
	}

	writeTextSummary(w, data)
	return w.err
}

func writeStatistics(w *errWriter, stats []Stat) {
	width := 0
	for _, s := range stats {
		if len(s.Name) > width {
			width = len(s.Name)
		}
	}
	w.println("General statistics")
	w.println("------------------")
	for _, s := range stats {
		w.printf("%-*s  %s\n", width+1, s.Name+":", s.Value)
	}
}

func writeTextSummary(w *errWriter, data Data) {
	w.println("Summary")
	w.println("-------")
	w.printf("Rows read:            %d\n", data.Summary.RowsRead)
	if data.Summary.RowsDropped > 0 {
		w.printf("Rows dropped:         %d\n", data.Summary.RowsDropped)
	}
	w.printf("Countries aggregated: %d\n", data.Summary.CountriesAggregated)
	if data.Summary.Kind != "general" {
		w.printf("Countries selected:   %d\n", data.Summary.CountriesSelected)
		w.printf("Detail records:       %d\n", data.Summary.DetailRecords)
	}

	if len(data.Files) > 0 {
		w.println("")
		w.println("Files written:")
		for _, f := range data.Files {
			w.printf("  %s\n", f)
		}
	}

	if len(data.Submissions) > 0 {
		w.println("")
		writeSubmissions(w, data.Submissions)
	}

	if len(data.Errors) > 0 {
		w.printf("\nWarnings (%d):\n", len(data.Errors))
		for _, e := range data.Errors {
			w.printf("  - %s\n", e)
		}
	}
}

// WriteSubmissions prints the outcome of each submission.
func WriteSubmissions(out io.Writer, subs []Submission) error {
	w := &errWriter{w: out}
	writeSubmissions(w, subs)
	return w.err
}

func writeSubmissions(w *errWriter, subs []Submission) {
	w.printf("Submissions (%d):\n", len(subs))
	for _, s := range subs {
		switch {
		case s.OK:
			w.printf("  #%d SUCCESS status=%d request=%s\n", s.Index, s.StatusCode, s.RequestID)
		case s.Error != "":
			w.printf("  #%d FAILED request=%s: %s\n", s.Index, s.RequestID, s.Error)
		default:
			w.printf("  #%d FAILED status=%d request=%s\n", s.Index, s.StatusCode, s.RequestID)
		}
		if body := strings.TrimSpace(s.Body); body != "" {
			w.printf("      %s\n", body)
		}
	}
}

func underline(cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = strings.Repeat("-", len(c))
	}
	return out
}

// FormatCounts renders a count map as "k=v" pairs sorted by key.
func FormatCounts(m map[string]int) string {
	return strings.Join(formatMapSorted(m), ", ")
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}

func formatMapSorted(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, m[k]))
	}
	return parts
}
