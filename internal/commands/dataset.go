package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ppiankov/covidetl/internal/config"
	"github.com/ppiankov/covidetl/internal/filter"
	"github.com/ppiankov/covidetl/internal/pipeline"
	"github.com/ppiankov/covidetl/internal/record"
	"github.com/ppiankov/covidetl/internal/report"
	"github.com/ppiankov/covidetl/internal/submit"
)

const defaultFormat = "text"

// runFlags are the options of a single dataset run.
type runFlags struct {
	filter     string
	post       bool
	sample     bool
	topN       int
	data       string
	endpoint   string
	exportDir  string
	format     string
	outputFile string
}

var (
	bedsFlags     runFlags
	measuresFlags runFlags
)

var bedsCmd = newDatasetCmd(record.DatasetBeds, &bedsFlags,
	"Aggregate the hospital bed capacity dataset",
	`Group bed capacity rows by country and bed type, compute totals, averages and
population estimates, and apply one of the beds filters.`)

var measuresCmd = newDatasetCmd(record.DatasetMeasures, &measuresFlags,
	"Aggregate the measures and restrictions dataset",
	`Resolve country names to ISO codes, group measures by country, count keywords
and sources, and apply one of the measures filters.`)

func newDatasetCmd(ds record.Dataset, f *runFlags, short, long string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   string(ds),
		Short: short,
		Long:  long,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDataset(cmd, ds, *f)
		},
	}
	cmd.Flags().StringVarP(&f.filter, "filter", "f", "1", "Filter index or name (see 'covidetl menu')")
	cmd.Flags().BoolVar(&f.post, "post", false, "Send the results to the API")
	cmd.Flags().BoolVar(&f.sample, "sample", false, "Only process the first sample records of the dataset")
	cmd.Flags().IntVar(&f.topN, "top", filter.DefaultTopN, "Number of countries kept by top and bottom filters")
	cmd.Flags().StringVar(&f.data, "data", "", "Input dataset path (.csv or .xlsx)")
	cmd.Flags().StringVar(&f.endpoint, "endpoint", "", "API endpoint for --post")
	cmd.Flags().StringVar(&f.exportDir, "export-dir", "", "Directory for exported JSON files (default: export)")
	cmd.Flags().StringVar(&f.format, "format", defaultFormat, "Output format: text or json")
	cmd.Flags().StringVarP(&f.outputFile, "output", "o", "", "Output file path (default: stdout)")
	return cmd
}

// settings is a run configuration after flags, environment and file values
// have been merged.
type settings struct {
	opts       pipeline.Options
	endpoint   string
	post       bool
	format     string
	outputFile string
	client     *submit.Client
}

func runDataset(cmd *cobra.Command, ds record.Dataset, f runFlags) error {
	st, err := resolveSettings(ds, f)
	if err != nil {
		return err
	}
	table, err := pipeline.Filters(ds)
	if err != nil {
		return err
	}
	s, err := table.Parse(f.filter)
	if err != nil {
		return enhanceError("select filter", err)
	}
	return execute(cmd, ds, s, st, nil)
}

func resolveSettings(ds record.Dataset, f runFlags) (settings, error) {
	if err := config.LoadEnv("."); err != nil {
		logrus.WithError(err).Warn("Failed to load .env file")
	}
	cfg, err := config.Load(".")
	if err != nil {
		logrus.WithError(err).Warn("Failed to load config file")
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return settings{}, err
	}
	applyConfigDefaults(ds, &f, cfg)

	if f.endpoint == "" {
		f.endpoint = pipeline.DatasetDefaults[ds].Endpoint
	}
	if f.topN <= 0 {
		return settings{}, fmt.Errorf("--top must be positive, got %d", f.topN)
	}

	return settings{
		opts: pipeline.Options{
			Dataset:       ds,
			DataPath:      f.data,
			ExportDir:     f.exportDir,
			TopN:          f.topN,
			Sample:        f.sample,
			SampleRecords: cfg.For(ds).SampleRecords,
		},
		endpoint:   f.endpoint,
		post:       f.post,
		format:     f.format,
		outputFile: f.outputFile,
		client: &submit.Client{
			Concurrency: cfg.Submit.Concurrency,
			Retries:     cfg.Submit.Retries,
			Timeout:     cfg.Submit.TimeoutDuration(),
		},
	}, nil
}

// applyConfigDefaults fills flags left at their defaults from the config.
func applyConfigDefaults(ds record.Dataset, f *runFlags, cfg config.Config) {
	dc := cfg.For(ds)
	if f.data == "" {
		f.data = dc.Data
	}
	if f.endpoint == "" {
		f.endpoint = dc.Endpoint
	}
	if f.exportDir == "" {
		f.exportDir = cfg.ExportDir
	}
	if (f.format == "" || f.format == defaultFormat) && cfg.Format != "" {
		f.format = cfg.Format
	}
	if (f.topN == 0 || f.topN == filter.DefaultTopN) && cfg.TopN > 0 {
		f.topN = cfg.TopN
	}
}

// execute runs the pipeline and reports the result. When ask is nil the run is
// non-interactive and st.post decides whether to submit; otherwise ask is
// consulted after the report has been shown.
func execute(cmd *cobra.Command, ds record.Dataset, s filter.Strategy, st settings, ask func() bool) error {
	ctx := cmd.Context()
	res, err := pipeline.Run(ctx, st.opts, s)
	if err != nil {
		return enhanceError(fmt.Sprintf("process %s dataset", ds), err)
	}

	reporter, closeOut, err := selectReporter(st.format, st.outputFile, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer closeOut()

	if ask == nil {
		var subs []report.Submission
		if st.post {
			subs = pipeline.Submit(ctx, st.client, st.endpoint, res)
		}
		return reporter.Generate(res.Report(toolName, version, subs))
	}

	if err := reporter.Generate(res.Report(toolName, version, nil)); err != nil {
		return err
	}
	if !ask() {
		return nil
	}
	subs := pipeline.Submit(ctx, st.client, st.endpoint, res)
	return report.WriteSubmissions(cmd.OutOrStdout(), subs)
}

func selectReporter(format, outputFile string, stdout io.Writer) (report.Reporter, func() error, error) {
	w := stdout
	closeOut := func() error { return nil }
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return nil, nil, fmt.Errorf("create output file: %w", err)
		}
		w = f
		closeOut = f.Close
	}

	switch format {
	case "json":
		return &report.JSONReporter{Writer: w}, closeOut, nil
	case "text", "":
		return &report.TextReporter{Writer: w}, closeOut, nil
	default:
		_ = closeOut()
		return nil, nil, fmt.Errorf("unsupported format: %s (use text or json)", format)
	}
}
