// Package pipeline runs one dataset through load, aggregation, filtering,
// assembly and export.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ppiankov/covidetl/internal/analyzer"
	"github.com/ppiankov/covidetl/internal/dataset"
	"github.com/ppiankov/covidetl/internal/export"
	"github.com/ppiankov/covidetl/internal/filter"
	"github.com/ppiankov/covidetl/internal/record"
	"github.com/ppiankov/covidetl/internal/report"
	"github.com/ppiankov/covidetl/internal/submit"
)

// Defaults holds the per-dataset business constants.
type Defaults struct {
	DataPath      string
	Endpoint      string
	SampleRecords int
}

// DatasetDefaults are used when neither config nor flags set a value.
var DatasetDefaults = map[record.Dataset]Defaults{
	record.DatasetBeds: {
		DataPath:      "data/hospital_beds.csv",
		Endpoint:      "https://api-covid-pi.now.sh/bed",
		SampleRecords: 24,
	},
	record.DatasetMeasures: {
		DataPath:      "data/measures.csv",
		Endpoint:      "https://jsonplaceholder.typicode.com/posts",
		SampleRecords: 30,
	},
}

// Options controls a single run.
type Options struct {
	Dataset       record.Dataset
	DataPath      string
	ExportDir     string
	TopN          int
	Sample        bool
	SampleRecords int
}

// Result is the outcome of a run. Export failures are recorded in Errors and
// do not fail the run.
type Result struct {
	RunID      string
	Timestamp  time.Time
	Dataset    record.Dataset
	Strategy   filter.Strategy
	TopN       int
	Documents  report.Documents
	Summary    analyzer.Summary
	Table      report.Table
	Statistics []report.Stat
	Files      []string
	Errors     []string
}

// output is what a dataset processor produces from a loaded table.
type output struct {
	documents  report.Documents
	summary    analyzer.Summary
	table      report.Table
	statistics []report.Stat
}

type processor interface {
	filters() filter.Table
	detailSuffix() string
	process(t *dataset.Table, s filter.Strategy, topN int) (*output, error)
}

func processorFor(ds record.Dataset) (processor, error) {
	switch ds {
	case record.DatasetBeds:
		return bedsProcessor{}, nil
	case record.DatasetMeasures:
		return newMeasuresProcessor(), nil
	default:
		return nil, fmt.Errorf("unknown dataset %q", ds)
	}
}

// Filters returns the filter table of a dataset.
func Filters(ds record.Dataset) (filter.Table, error) {
	p, err := processorFor(ds)
	if err != nil {
		return nil, err
	}
	return p.filters(), nil
}

// Run loads the dataset, applies the strategy and exports the documents.
func Run(ctx context.Context, opts Options, s filter.Strategy) (*Result, error) {
	p, err := processorFor(opts.Dataset)
	if err != nil {
		return nil, err
	}
	opts = withDefaults(opts)

	res := &Result{
		RunID:     uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Dataset:   opts.Dataset,
		Strategy:  s,
		TopN:      opts.TopN,
	}
	log := logrus.WithFields(logrus.Fields{
		"component": "pipeline",
		"run_id":    res.RunID,
		"dataset":   opts.Dataset,
		"filter":    s.Name,
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tbl, err := dataset.Load(opts.DataPath)
	if err != nil {
		return nil, err
	}
	if opts.Sample {
		tbl = tbl.Head(opts.SampleRecords)
		log.WithField("rows", len(tbl.Rows)).Debug("sampling dataset")
	}

	out, err := p.process(tbl, s, opts.TopN)
	if err != nil {
		return nil, err
	}
	res.Documents = out.documents
	res.Summary = out.summary
	res.Table = out.table
	res.Statistics = out.statistics

	writer, err := export.NewWriter(opts.ExportDir, string(opts.Dataset))
	if err != nil {
		return nil, err
	}
	res.exportSlot(writer, s.Name+export.SuffixGeneral, res.Documents.General, log)
	if res.Documents.HasDetail() {
		res.exportSlot(writer, s.Name+p.detailSuffix(), res.Documents.Detail, log)
	}

	log.WithFields(logrus.Fields{
		"countries": res.Summary.CountriesSelected,
		"files":     len(res.Files),
	}).Info("pipeline run complete")
	return res, nil
}

func (r *Result) exportSlot(w *export.Writer, name string, data []byte, log *logrus.Entry) {
	path, err := w.Write(name, data)
	if err != nil {
		log.WithError(err).Warn("could not write export file")
		r.Errors = append(r.Errors, fmt.Sprintf("could not write %s: %v", path, err))
		return
	}
	r.Files = append(r.Files, path)
}

// Submit posts every document of the result to endpoint.
func Submit(ctx context.Context, client *submit.Client, endpoint string, r *Result) []report.Submission {
	results := client.Send(ctx, endpoint, r.Documents.Payloads())
	out := make([]report.Submission, len(results))
	for i, sr := range results {
		out[i] = report.Submission{
			Index:      sr.Index,
			RequestID:  sr.RequestID,
			StatusCode: sr.StatusCode,
			OK:         sr.OK(),
			Body:       sr.Body,
		}
		if sr.Err != nil {
			out[i].Error = sr.Err.Error()
		}
	}
	return out
}

// Report builds the run report for the reporters.
func (r *Result) Report(tool, version string, submissions []report.Submission) report.Data {
	return report.Data{
		Tool:      tool,
		Version:   version,
		RunID:     r.RunID,
		Timestamp: r.Timestamp,
		Dataset:   string(r.Dataset),
		Filter: report.Filter{
			ID:    r.Strategy.ID,
			Name:  r.Strategy.Name,
			Label: r.Strategy.DisplayLabel(r.TopN),
		},
		Summary:     r.Summary,
		Table:       r.Table,
		Statistics:  r.Statistics,
		Files:       r.Files,
		Submissions: submissions,
		Errors:      r.Errors,
	}
}

func withDefaults(opts Options) Options {
	d := DatasetDefaults[opts.Dataset]
	if opts.DataPath == "" {
		opts.DataPath = d.DataPath
	}
	if opts.SampleRecords <= 0 {
		opts.SampleRecords = d.SampleRecords
	}
	if opts.TopN <= 0 {
		opts.TopN = filter.DefaultTopN
	}
	if opts.ExportDir == "" {
		opts.ExportDir = export.DefaultDir
	}
	return opts
}
