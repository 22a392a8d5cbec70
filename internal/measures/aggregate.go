package measures

import (
	"fmt"

	"github.com/ppiankov/covidetl/internal/record"
)

// Group is one country with its normalized measure records.
type Group struct {
	Record   record.MeasuresGroup
	Measures []record.MeasureDetail
}

// Key returns the country code.
func (g Group) Key() string {
	return g.Record.Code
}

// DetailCount returns the number of measure records in the group.
func (g Group) DetailCount() int {
	return len(g.Measures)
}

// Metric returns the named metric. Measures metrics are never null.
func (g Group) Metric(name string) (float64, bool, error) {
	switch name {
	case MetricKeywordsTotal:
		return float64(g.Record.KeywordsTotal), true, nil
	case MetricKeywordsRecordsTotal:
		return float64(g.Record.KeywordsRecordsTotal), true, nil
	default:
		return 0, false, fmt.Errorf("unknown measures metric %q", name)
	}
}

// Aggregate groups rows by country code in first-seen order.
func Aggregate(rows []Row) []Group {
	var order []string
	groups := make(map[string]*Group)
	for _, r := range rows {
		g, ok := groups[r.Code]
		if !ok {
			g = &Group{Record: record.MeasuresGroup{
				Code:          r.Code,
				KeywordsCount: make(map[string]int),
				SourcesCount:  make(map[string]int),
			}}
			groups[r.Code] = g
			order = append(order, r.Code)
		}
		for _, kw := range r.Detail.Keywords {
			g.Record.KeywordsCount[kw]++
		}
		if r.SourceDomain != "" {
			g.Record.SourcesCount[r.SourceDomain]++
		}
		g.Record.KeywordsRecordsTotal++
		g.Measures = append(g.Measures, r.Detail)
	}

	out := make([]Group, 0, len(order))
	for _, code := range order {
		g := groups[code]
		g.Record.KeywordsTotal = len(g.Record.KeywordsCount)
		out = append(out, *g)
	}
	return out
}

// Statistics computes dataset-wide measure counts.
func Statistics(rows []Row) record.MeasuresGeneral {
	general := record.MeasuresGeneral{
		CountriesMeasuresCount: make(map[string]int),
		AllKeywordsCount:       make(map[string]int),
		AllSourcesCount:        make(map[string]int),
	}
	for _, r := range rows {
		general.CountriesMeasuresCount[r.Code]++
		for _, kw := range r.Detail.Keywords {
			general.AllKeywordsCount[kw]++
		}
		if r.SourceDomain != "" {
			general.AllSourcesCount[r.SourceDomain]++
		}
	}
	return general
}
