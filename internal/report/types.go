package report

import (
	"io"
	"time"

	"github.com/ppiankov/covidetl/internal/analyzer"
)

// Reporter is the interface for output formatters.
type Reporter interface {
	Generate(data Data) error
}

// Data holds all information needed to generate a run report.
type Data struct {
	Tool        string           `json:"tool"`
	Version     string           `json:"version"`
	RunID       string           `json:"run_id"`
	Timestamp   time.Time        `json:"timestamp"`
	Dataset     string           `json:"dataset"`
	Filter      Filter           `json:"filter"`
	Summary     analyzer.Summary `json:"summary"`
	Table       Table            `json:"table"`
	Statistics  []Stat           `json:"statistics,omitempty"`
	Files       []string         `json:"files,omitempty"`
	Submissions []Submission     `json:"submissions,omitempty"`
	Errors      []string         `json:"errors,omitempty"`
}

// Filter identifies the filter applied in the run.
type Filter struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Label string `json:"label"`
}

// Table is a rendered view of the selected countries.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Stat is a single named figure of the general statistics.
type Stat struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Submission is the outcome of one POST to the remote endpoint.
type Submission struct {
	Index      int    `json:"index"`
	RequestID  string `json:"request_id"`
	StatusCode int    `json:"status_code,omitempty"`
	OK         bool   `json:"ok"`
	Body       string `json:"body,omitempty"`
	Error      string `json:"error,omitempty"`
}

// TextReporter generates human-readable terminal output.
type TextReporter struct {
	Writer io.Writer
}

// JSONReporter generates the run report as indented JSON.
type JSONReporter struct {
	Writer io.Writer
}
