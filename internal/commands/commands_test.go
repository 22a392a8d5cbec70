package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ppiankov/covidetl/internal/config"
	"github.com/ppiankov/covidetl/internal/dataset"
	"github.com/ppiankov/covidetl/internal/filter"
	"github.com/ppiankov/covidetl/internal/isocode"
	"github.com/ppiankov/covidetl/internal/record"
)

const bedsCSV = `country,lat,lng,type,beds,population,source,source_url,year
DE,51.1,10.4,ACUTE,6.0,83.0,oecd,https://oecd.org,2018
FR,46.2,2.2,ACUTE,3.1,67.0,who,https://who.int,2017
`

func chdir(t *testing.T, dir string) {
	t.Helper()
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(origDir); err != nil {
			t.Log("failed to restore dir:", err)
		}
	})
}

// workspace creates a temp dir holding the default beds dataset and makes it
// the working directory.
func workspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	if err := os.MkdirAll(filepath.Join(dir, "data"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "data", "hospital_beds.csv"), []byte(bedsCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func execRoot(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	version = "0.1.0"
	commit = "abc123"
	date = "2026-02-28"

	out, err := execRoot(t, "", "version")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !strings.Contains(out, "covidetl 0.1.0 (commit abc123, built 2026-02-28)") {
		t.Errorf("version output = %q", out)
	}
}

func TestExecuteNoArgsOpensMenu(t *testing.T) {
	workspace(t)
	out, err := execRoot(t, "0\n")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !strings.Contains(out, "(1) Global bed capacity") {
		t.Errorf("menu not shown, got: %s", out)
	}
}

func TestExecutePositionalArgs(t *testing.T) {
	dir := workspace(t)
	out, err := execRoot(t, "", "1", "2")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	for _, name := range []string{"TOP_COUNTRIES_SCALE_GENERAL.json", "TOP_COUNTRIES_SCALE_TYPES.json"} {
		if _, err := os.Stat(filepath.Join(dir, "export", "beds", name)); err != nil {
			t.Errorf("missing export file %s", name)
		}
	}
	if !strings.Contains(out, "covidetl: beds dataset report") {
		t.Errorf("missing text report, got: %s", out)
	}
}

func TestExecutePositionalArgsErrors(t *testing.T) {
	workspace(t)
	tests := []struct {
		args []string
		want error
	}{
		{[]string{"3", "1"}, errInvalidOption},
		{[]string{"x", "1"}, errOnlyNumbers},
		{[]string{"1", "x"}, errOnlyNumbers},
		{[]string{"1", "11"}, filter.ErrNotImplemented},
	}
	for _, tt := range tests {
		_, err := execRoot(t, "", tt.args...)
		if !errors.Is(err, tt.want) {
			t.Errorf("args %v: error = %v, want %v", tt.args, err, tt.want)
		}
	}
	if _, err := execRoot(t, "", "1"); err == nil || !strings.Contains(err.Error(), "not enough arguments") {
		t.Errorf("single argument error = %v", err)
	}
}

func TestBedsCommandJSON(t *testing.T) {
	workspace(t)
	out, err := execRoot(t, "", "beds", "--filter", "GENERAL_STATISTICS", "--format", "json")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	var parsed map[string]any
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if parsed["dataset"] != "beds" {
		t.Errorf("dataset = %v, want beds", parsed["dataset"])
	}
	bedsFlags = runFlags{filter: "1", topN: filter.DefaultTopN, format: defaultFormat}
}

func TestBedsCommandMissingData(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	_, err := execRoot(t, "", "beds", "--data", filepath.Join(dir, "nope.csv"))
	bedsFlags = runFlags{filter: "1", topN: filter.DefaultTopN, format: defaultFormat}
	if !errors.Is(err, dataset.ErrInputNotFound) {
		t.Fatalf("error = %v, want ErrInputNotFound", err)
	}
	if !strings.Contains(err.Error(), "hint:") {
		t.Errorf("missing hint in: %s", err)
	}
}

func TestSubcommandsExist(t *testing.T) {
	for _, name := range []string{"beds", "measures", "menu", "init", "version"} {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil {
			t.Fatalf("Find(%s) error: %v", name, err)
		}
		if cmd.Name() != name {
			t.Errorf("command Name = %q, want %s", cmd.Name(), name)
		}
	}
}

func TestEnhanceErrorWithHint(t *testing.T) {
	tests := []struct {
		err  error
		hint string
	}{
		{fmt.Errorf("load: %w", dataset.ErrInputNotFound), "Check the dataset path"},
		{fmt.Errorf("x.csv: %w: beds", dataset.ErrMissingColumn), "expected header row"},
		{fmt.Errorf("%w: %q", isocode.ErrLookup, "Atlantis"), "override table"},
		{fmt.Errorf("%w: option 12", filter.ErrNotImplemented), "covidetl menu"},
		{errors.New("dial tcp: lookup api.invalid: no such host"), "endpoint is unreachable"},
		{errors.New("open export/beds/X.json: permission denied"), "write permissions"},
	}

	for _, tt := range tests {
		err := enhanceError("test", tt.err)
		if !strings.Contains(err.Error(), tt.hint) {
			t.Errorf("enhanceError(%q) missing hint %q, got: %s", tt.err, tt.hint, err)
		}
		if !errors.Is(err, tt.err) {
			t.Errorf("enhanceError(%q) should wrap the original error", tt.err)
		}
	}
}

func TestEnhanceErrorWithoutHint(t *testing.T) {
	err := enhanceError("process", errors.New("some random error"))
	if strings.Contains(err.Error(), "hint:") {
		t.Errorf("unexpected hint in: %s", err)
	}
	if !strings.Contains(err.Error(), "process:") {
		t.Errorf("missing action prefix in: %s", err)
	}
}

func TestRunInit(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	initFlags.force = false
	if err := runInit(nil, nil); err != nil {
		t.Fatalf("runInit() error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, ".covidetl.yaml")); err != nil {
		t.Error("config file not created")
	}
	if _, err := os.Stat(filepath.Join(dir, ".env.example")); err != nil {
		t.Error("env file not created")
	}

	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("sample config does not parse: %v", err)
	}
	if cfg.TopN != filter.DefaultTopN || cfg.Beds.SampleRecords != 24 || cfg.Measures.SampleRecords != 30 {
		t.Errorf("sample config = %+v", cfg)
	}
}

func TestRunInitNoOverwrite(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	if err := os.WriteFile(filepath.Join(dir, ".covidetl.yaml"), []byte("existing"), 0o644); err != nil {
		t.Fatal(err)
	}

	initFlags.force = false
	if err := runInit(nil, nil); err != nil {
		t.Fatalf("runInit() error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, ".covidetl.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "existing" {
		t.Error("config file should not be overwritten without --force")
	}
}

func TestRunInitForce(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	if err := os.WriteFile(filepath.Join(dir, ".covidetl.yaml"), []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	initFlags.force = true
	defer func() { initFlags.force = false }()
	if err := runInit(nil, nil); err != nil {
		t.Fatalf("runInit() error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, ".covidetl.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) == "old" {
		t.Error("config file should be overwritten with --force")
	}
}

func TestSelectReporter(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"text", false},
		{"json", false},
		{"", false},
		{"sarif", true},
	}
	for _, tt := range tests {
		r, closeOut, err := selectReporter(tt.format, "", &bytes.Buffer{})
		if tt.wantErr {
			if err == nil {
				t.Errorf("selectReporter(%q) should error", tt.format)
			}
			continue
		}
		if err != nil {
			t.Errorf("selectReporter(%q) error: %v", tt.format, err)
			continue
		}
		if r == nil {
			t.Errorf("selectReporter(%q) returned nil reporter", tt.format)
		}
		_ = closeOut()
	}
}

func TestSelectReporterOutputFile(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "report.json")

	r, closeOut, err := selectReporter("json", outFile, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("selectReporter with output file error: %v", err)
	}
	if r == nil {
		t.Fatal("reporter is nil")
	}
	if err := closeOut(); err != nil {
		t.Errorf("close output file: %v", err)
	}
	if _, err := os.Stat(outFile); err != nil {
		t.Error("output file not created")
	}
}

func TestApplyConfigDefaults(t *testing.T) {
	f := runFlags{topN: filter.DefaultTopN, format: defaultFormat}
	cfg := config.Config{
		Beds:      config.Dataset{Data: "cfg/beds.csv", Endpoint: "https://cfg/bed"},
		Measures:  config.Dataset{Data: "cfg/measures.csv"},
		ExportDir: "cfg-export",
		TopN:      5,
		Format:    "json",
	}

	applyConfigDefaults(record.DatasetBeds, &f, cfg)

	if f.data != "cfg/beds.csv" {
		t.Errorf("data = %q, want config value", f.data)
	}
	if f.endpoint != "https://cfg/bed" {
		t.Errorf("endpoint = %q", f.endpoint)
	}
	if f.exportDir != "cfg-export" || f.topN != 5 || f.format != "json" {
		t.Errorf("flags = %+v", f)
	}
}

func TestApplyConfigDefaultsNoOverride(t *testing.T) {
	f := runFlags{data: "flag.csv", topN: 3, format: "json", exportDir: "flag-export"}
	cfg := config.Config{
		Beds:      config.Dataset{Data: "cfg/beds.csv"},
		ExportDir: "cfg-export",
		TopN:      5,
		Format:    "text",
	}

	applyConfigDefaults(record.DatasetBeds, &f, cfg)

	if f.data != "flag.csv" {
		t.Errorf("data = %q, want flag.csv (flag should win)", f.data)
	}
	if f.topN != 3 {
		t.Errorf("topN = %d, want 3 (flag should win)", f.topN)
	}
	if f.format != "json" || f.exportDir != "flag-export" {
		t.Errorf("flags = %+v", f)
	}
}

func TestResolveSettingsEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	if err := os.WriteFile(filepath.Join(dir, ".covidetl.yaml"), []byte("top_n: 4\nbeds:\n  data: file.csv\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(config.EnvBedsData, "env.csv")
	t.Setenv(config.EnvTopN, "")

	st, err := resolveSettings(record.DatasetBeds, runFlags{topN: filter.DefaultTopN, format: defaultFormat})
	if err != nil {
		t.Fatal(err)
	}
	if st.opts.DataPath != "env.csv" {
		t.Errorf("DataPath = %q, want env.csv", st.opts.DataPath)
	}
	if st.opts.TopN != 4 {
		t.Errorf("TopN = %d, want 4", st.opts.TopN)
	}
	if st.endpoint != "https://api-covid-pi.now.sh/bed" {
		t.Errorf("endpoint = %q, want the default beds endpoint", st.endpoint)
	}

	st, err = resolveSettings(record.DatasetBeds, runFlags{data: "flag.csv", topN: filter.DefaultTopN})
	if err != nil {
		t.Fatal(err)
	}
	if st.opts.DataPath != "flag.csv" {
		t.Errorf("DataPath = %q, want flag.csv", st.opts.DataPath)
	}
}

func TestResolveSettingsRejectsNegativeTop(t *testing.T) {
	chdir(t, t.TempDir())
	if _, err := resolveSettings(record.DatasetBeds, runFlags{topN: -1}); err == nil {
		t.Error("expected error for negative --top")
	}
}

type call struct {
	ds   record.Dataset
	name string
	sent bool
}

func runMenuScript(t *testing.T, input string, runErr error) (string, []call, error) {
	t.Helper()
	var out bytes.Buffer
	var calls []call
	m := newMenu(strings.NewReader(input), &out, filter.DefaultTopN,
		func(ds record.Dataset, s filter.Strategy, ask func() bool) error {
			calls = append(calls, call{ds: ds, name: s.Name, sent: ask()})
			return runErr
		})
	err := m.loop()
	return out.String(), calls, err
}

func TestMenuRunsChosenFilter(t *testing.T) {
	out, calls, err := runMenuScript(t, "1\n2\n\n0\n2\n6\nyes\n0\n0\n", nil)
	if err != nil {
		t.Fatalf("loop() error: %v", err)
	}
	want := []call{
		{record.DatasetBeds, "TOP_COUNTRIES_SCALE", false},
		{record.DatasetMeasures, "GENERAL_STATISTICS", true},
	}
	if len(calls) != len(want) {
		t.Fatalf("calls = %+v, want %+v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("calls[%d] = %+v, want %+v", i, calls[i], want[i])
		}
	}
	for _, s := range []string{
		"Beds dataset chosen",
		"(2) Top 10 countries with highest bed capacity (scale)",
		"(0) Go back",
		"Measures dataset chosen",
		`Type "yes" if you want to`,
	} {
		if !strings.Contains(out, s) {
			t.Errorf("output missing %q", s)
		}
	}
}

func TestMenuRepromptsOnInvalidInput(t *testing.T) {
	out, calls, err := runMenuScript(t, "abc\n9\n1\n11\nx\n0\n0\n", nil)
	if err != nil {
		t.Fatalf("loop() error: %v", err)
	}
	if len(calls) != 0 {
		t.Errorf("calls = %+v, want none", calls)
	}
	if strings.Count(out, "Sorry, only numbers are valid! Try again") != 2 {
		t.Errorf("expected two non-numeric notices, got:\n%s", out)
	}
	if strings.Count(out, "Not a valid option! Try again") != 2 {
		t.Errorf("expected two out-of-range notices, got:\n%s", out)
	}
}

func TestMenuExitsOnClosedInput(t *testing.T) {
	if _, _, err := runMenuScript(t, "1\n", nil); err != nil {
		t.Errorf("loop() error = %v, want nil on EOF", err)
	}
	if _, _, err := runMenuScript(t, "", nil); err != nil {
		t.Errorf("loop() error = %v, want nil on EOF", err)
	}
}

func TestMenuNotImplementedIsRecoverable(t *testing.T) {
	out, calls, err := runMenuScript(t, "1\n3\n\n0\n0\n", fmt.Errorf("%w: test", filter.ErrNotImplemented))
	if err != nil {
		t.Fatalf("loop() error = %v, want recovery", err)
	}
	if len(calls) != 1 {
		t.Errorf("calls = %d, want 1", len(calls))
	}
	if !strings.Contains(out, "filter not implemented") {
		t.Errorf("missing not-implemented notice:\n%s", out)
	}
}

func TestMenuFatalErrorStops(t *testing.T) {
	boom := fmt.Errorf("load: %w", dataset.ErrInputNotFound)
	_, _, err := runMenuScript(t, "1\n1\n\n0\n0\n", boom)
	if !errors.Is(err, dataset.ErrInputNotFound) {
		t.Errorf("loop() error = %v, want ErrInputNotFound", err)
	}
}
