package pipeline

import (
	"strconv"

	"github.com/ppiankov/covidetl/internal/analyzer"
	"github.com/ppiankov/covidetl/internal/dataset"
	"github.com/ppiankov/covidetl/internal/export"
	"github.com/ppiankov/covidetl/internal/filter"
	"github.com/ppiankov/covidetl/internal/isocode"
	"github.com/ppiankov/covidetl/internal/measures"
	"github.com/ppiankov/covidetl/internal/record"
	"github.com/ppiankov/covidetl/internal/report"
)

type measuresProcessor struct {
	resolver measures.Resolver
}

func newMeasuresProcessor() measuresProcessor {
	return measuresProcessor{resolver: isocode.New()}
}

func (measuresProcessor) filters() filter.Table { return filter.MeasuresTable }

func (measuresProcessor) detailSuffix() string { return export.SuffixMeasures }

func (p measuresProcessor) process(t *dataset.Table, s filter.Strategy, topN int) (*output, error) {
	rows, dropped, err := measures.ParseRows(t, p.resolver)
	if err != nil {
		return nil, err
	}
	groups := measures.Aggregate(rows)

	if s.Kind == filter.General {
		general := measures.Statistics(rows)
		docs, err := report.AssembleGeneral(general)
		if err != nil {
			return nil, err
		}
		return &output{
			documents: docs,
			summary: analyzer.Summary{
				RowsRead:            len(t.Rows),
				RowsDropped:         dropped,
				CountriesAggregated: len(groups),
				Filter:              s.Name,
				Kind:                s.Kind.String(),
			},
			statistics: []report.Stat{
				{Name: "Measures by country", Value: report.FormatCounts(general.CountriesMeasuresCount)},
				{Name: "Keywords", Value: report.FormatCounts(general.AllKeywordsCount)},
				{Name: "Sources", Value: report.FormatCounts(general.AllSourcesCount)},
			},
		}, nil
	}

	analysis, err := analyzer.Analyze(groups, s, analyzer.AnalyzerConfig{TopN: topN})
	if err != nil {
		return nil, err
	}
	analysis.Summary.RowsRead = len(t.Rows)
	analysis.Summary.RowsDropped = dropped

	general := make([]record.MeasuresGroup, 0, len(analysis.Selected))
	detail := make([]record.MeasureDetail, 0, analysis.Summary.DetailRecords)
	tbl := report.Table{
		Columns: []string{"CODE", "DIFFERENT MEASURES", "RECORDS", "SOURCES"},
	}
	for _, g := range analysis.Selected {
		general = append(general, g.Record)
		detail = append(detail, g.Measures...)
		tbl.Rows = append(tbl.Rows, []string{
			g.Record.Code,
			strconv.Itoa(g.Record.KeywordsTotal),
			strconv.Itoa(g.Record.KeywordsRecordsTotal),
			strconv.Itoa(len(g.Record.SourcesCount)),
		})
	}

	docs, err := report.Assemble(general, detail)
	if err != nil {
		return nil, err
	}
	return &output{documents: docs, summary: analysis.Summary, table: tbl}, nil
}
