package measures

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ppiankov/covidetl/internal/dataset"
	"github.com/ppiankov/covidetl/internal/isocode"
)

const header = "Country,Keywords,Date Start,Date end intended,Description of measure implemented,Quantity,Exceptions,Implementing City,Implementing State/Province,Target country,Target region,Source\n"

const sampleCSV = header +
	`Germany,"curfew, school closure","Mar 16, 2020","Apr 19, 2020",Schools closed,,"essential workers, medical staff",Berlin,,,,https://www.bund.de/a` + "\n" +
	`US: California,"curfew","Mar 19, 2020",,Stay at home,5.0,,,California,,,https://ca.gov/x` + "\n" +
	`Germany,"border closure","Mar 16, 2020",,,,,,,"France, Austria",,https://www.bund.de/b` + "\n" +
	`,"curfew",,,,,,,,,,` + "\n" +
	`France,,,,,,,,,,,` + "\n"

func loadSample(t *testing.T) []Row {
	t.Helper()
	tbl, err := dataset.ReadCSV(strings.NewReader(sampleCSV), "measures.csv")
	if err != nil {
		t.Fatal(err)
	}
	rows, dropped, err := ParseRows(tbl, isocode.New())
	if err != nil {
		t.Fatalf("ParseRows() error: %v", err)
	}
	if dropped != 2 {
		t.Errorf("dropped = %d, want 2", dropped)
	}
	return rows
}

func TestParseRows(t *testing.T) {
	rows := loadSample(t)
	if len(rows) != 3 {
		t.Fatalf("rows len = %d, want 3", len(rows))
	}

	first := rows[0]
	if first.Code != "de" {
		t.Errorf("Code = %q, want de", first.Code)
	}
	if first.SourceDomain != "www.bund.de" {
		t.Errorf("SourceDomain = %q, want www.bund.de", first.SourceDomain)
	}
	d := first.Detail
	if d.DateStart == nil || *d.DateStart != "2020-03-16" {
		t.Errorf("DateStart = %v, want 2020-03-16", d.DateStart)
	}
	if d.DateEnd == nil || *d.DateEnd != "2020-04-19" {
		t.Errorf("DateEnd = %v, want 2020-04-19", d.DateEnd)
	}
	if diff := cmp.Diff([]string{"curfew", "school closure"}, d.Keywords); diff != "" {
		t.Errorf("Keywords mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"essential workers", "medical staff"}, d.Exceptions); diff != "" {
		t.Errorf("Exceptions mismatch (-want +got):\n%s", diff)
	}
	if d.Quantity != nil {
		t.Errorf("Quantity = %v, want nil", *d.Quantity)
	}
	if d.ImplementingStates != nil {
		t.Errorf("ImplementingStates = %v, want nil", d.ImplementingStates)
	}

	us := rows[1].Detail
	if us.Code != "us" {
		t.Errorf("Code = %q, want us", us.Code)
	}
	if us.Quantity == nil || *us.Quantity != 5 {
		t.Errorf("Quantity = %v, want 5", us.Quantity)
	}
	if us.DateEnd != nil {
		t.Errorf("DateEnd = %v, want nil", *us.DateEnd)
	}
	if diff := cmp.Diff([]string{"France", "Austria"}, rows[2].Detail.TargetCountries); diff != "" {
		t.Errorf("TargetCountries mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRowsUnresolvableCountry(t *testing.T) {
	tbl, err := dataset.ReadCSV(strings.NewReader(header+"Unknownland,curfew,,,,,,,,,,\n"), "measures.csv")
	if err != nil {
		t.Fatal(err)
	}
	_, _, err = ParseRows(tbl, isocode.New())
	if !errors.Is(err, isocode.ErrLookup) {
		t.Errorf("error = %v, want ErrLookup", err)
	}
}

func TestParseRowsBadDate(t *testing.T) {
	tbl, err := dataset.ReadCSV(strings.NewReader(header+"Germany,curfew,2020-03-16,,,,,,,,,\n"), "measures.csv")
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := ParseRows(tbl, isocode.New()); err == nil {
		t.Error("expected error for unparsable date")
	}
}

func TestParseRowsMissingColumn(t *testing.T) {
	tbl, err := dataset.ReadCSV(strings.NewReader("Country,Keywords\nGermany,curfew\n"), "measures.csv")
	if err != nil {
		t.Fatal(err)
	}
	_, _, err = ParseRows(tbl, isocode.New())
	if !errors.Is(err, dataset.ErrMissingColumn) {
		t.Errorf("error = %v, want ErrMissingColumn", err)
	}
}

func TestAggregate(t *testing.T) {
	groups := Aggregate(loadSample(t))
	if len(groups) != 2 {
		t.Fatalf("groups len = %d, want 2", len(groups))
	}

	de := groups[0]
	if de.Key() != "de" {
		t.Fatalf("groups[0] = %q, want de", de.Key())
	}
	wantKeywords := map[string]int{"curfew": 1, "school closure": 1, "border closure": 1}
	if diff := cmp.Diff(wantKeywords, de.Record.KeywordsCount); diff != "" {
		t.Errorf("KeywordsCount mismatch (-want +got):\n%s", diff)
	}
	if de.Record.KeywordsTotal != 3 {
		t.Errorf("KeywordsTotal = %d, want 3", de.Record.KeywordsTotal)
	}
	if de.Record.KeywordsRecordsTotal != 2 {
		t.Errorf("KeywordsRecordsTotal = %d, want 2", de.Record.KeywordsRecordsTotal)
	}
	if de.Record.SourcesCount["www.bund.de"] != 2 {
		t.Errorf("SourcesCount = %v", de.Record.SourcesCount)
	}
	if len(de.Measures) != 2 {
		t.Errorf("Measures len = %d, want 2", len(de.Measures))
	}

	if got, ok, err := de.Metric(MetricKeywordsTotal); err != nil || !ok || got != 3 {
		t.Errorf("Metric(keywordsTotal) = %v, %v, %v", got, ok, err)
	}
	if got, _, _ := de.Metric(MetricKeywordsRecordsTotal); got != 2 {
		t.Errorf("Metric(keywordsRecordsTotal) = %v, want 2", got)
	}
	if _, _, err := de.Metric("bogus"); err == nil {
		t.Error("Metric(bogus) should error")
	}
}

func TestStatistics(t *testing.T) {
	general := Statistics(loadSample(t))
	if diff := cmp.Diff(map[string]int{"de": 2, "us": 1}, general.CountriesMeasuresCount); diff != "" {
		t.Errorf("CountriesMeasuresCount mismatch (-want +got):\n%s", diff)
	}
	if general.AllKeywordsCount["curfew"] != 2 {
		t.Errorf("AllKeywordsCount[curfew] = %d, want 2", general.AllKeywordsCount["curfew"])
	}
	if general.AllSourcesCount["ca.gov"] != 1 {
		t.Errorf("AllSourcesCount[ca.gov] = %d, want 1", general.AllSourcesCount["ca.gov"])
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a, b", []string{"a", "b"}},
		{"a, , b", []string{"a", "b"}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, splitList(tt.in)); diff != "" {
			t.Errorf("splitList(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestDomain(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"https://www.who.int/news", "www.who.int"},
		{"", ""},
		{"not a url", ""},
	}
	for _, tt := range tests {
		if got := domain(tt.in); got != tt.want {
			t.Errorf("domain(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
