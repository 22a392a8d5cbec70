package pipeline

import (
	"fmt"
	"strconv"

	"github.com/ppiankov/covidetl/internal/analyzer"
	"github.com/ppiankov/covidetl/internal/beds"
	"github.com/ppiankov/covidetl/internal/dataset"
	"github.com/ppiankov/covidetl/internal/export"
	"github.com/ppiankov/covidetl/internal/filter"
	"github.com/ppiankov/covidetl/internal/record"
	"github.com/ppiankov/covidetl/internal/report"
)

type bedsProcessor struct{}

func (bedsProcessor) filters() filter.Table { return filter.BedsTable }

func (bedsProcessor) detailSuffix() string { return export.SuffixTypes }

func (bedsProcessor) process(t *dataset.Table, s filter.Strategy, topN int) (*output, error) {
	rows, err := beds.ParseRows(t)
	if err != nil {
		return nil, err
	}
	groups := beds.Aggregate(rows)

	if s.Kind == filter.General {
		st := beds.Statistics(rows)
		docs, err := report.AssembleGeneral(st.General)
		if err != nil {
			return nil, err
		}
		return &output{
			documents: docs,
			summary: analyzer.Summary{
				RowsRead:            len(t.Rows),
				CountriesAggregated: len(groups),
				Filter:              s.Name,
				Kind:                s.Kind.String(),
			},
			statistics: bedsStatistics(st),
		}, nil
	}

	analysis, err := analyzer.Analyze(groups, s, analyzer.AnalyzerConfig{TopN: topN})
	if err != nil {
		return nil, err
	}
	analysis.Summary.RowsRead = len(t.Rows)

	general := make([]record.BedsRecord, 0, len(analysis.Selected))
	detail := make([]record.BedType, 0, analysis.Summary.DetailRecords)
	tbl := report.Table{
		Columns: []string{"CODE", "BEDS TOTAL", "BEDS AVG", "POPULATION AVG", "EST TOTAL", "EST AVG", "TYPES"},
	}
	for _, g := range analysis.Selected {
		general = append(general, g.Record)
		detail = append(detail, g.Types...)
		tbl.Rows = append(tbl.Rows, []string{
			g.Record.Code,
			formatFloat(g.Record.BedsTotal),
			formatFloat(g.Record.BedsAverage),
			formatFloat(g.Record.PopulationAverage),
			formatFloat(g.Record.EstimatedBedsTotal),
			formatNullable(g.Record.EstimatedBedsAverage),
			strconv.Itoa(len(g.Types)),
		})
	}

	docs, err := report.Assemble(general, detail)
	if err != nil {
		return nil, err
	}
	return &output{documents: docs, summary: analysis.Summary, table: tbl}, nil
}

func bedsStatistics(st beds.GeneralStatistics) []report.Stat {
	out := []report.Stat{
		{Name: "Bed count", Value: formatFloat(st.General.BedCount)},
		{Name: "Bed average", Value: formatNullable(st.General.BedAverage)},
		{Name: "Bed standard deviation", Value: formatFloat(st.General.BedStandardDeviation)},
		{Name: "Sources", Value: report.FormatCounts(st.General.SourcesCount)},
	}
	for _, tg := range st.Types {
		out = append(out, report.Stat{
			Name: "Type " + tg.Type,
			Value: fmt.Sprintf("count=%s percentage=%s average=%s std=%s",
				formatFloat(tg.Count), formatNullable(tg.Percentage),
				formatFloat(tg.Average), formatFloat(tg.StandardDeviation)),
		})
	}
	return out
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatNullable(v *float64) string {
	if v == nil {
		return "null"
	}
	return formatFloat(*v)
}
