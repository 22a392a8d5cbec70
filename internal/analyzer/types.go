package analyzer

import "github.com/ppiankov/covidetl/internal/filter"

// Summary holds aggregated statistics about a pipeline run.
type Summary struct {
	RowsRead            int    `json:"rows_read"`
	RowsDropped         int    `json:"rows_dropped"`
	CountriesAggregated int    `json:"countries_aggregated"`
	CountriesSelected   int    `json:"countries_selected"`
	DetailRecords       int    `json:"detail_records"`
	Filter              string `json:"filter"`
	Kind                string `json:"kind"`
}

// AnalysisResult holds the selected groups and computed summary.
type AnalysisResult[G filter.Group] struct {
	Selected []G     `json:"selected"`
	Summary  Summary `json:"summary"`
}

// AnalyzerConfig controls analysis behavior.
type AnalyzerConfig struct {
	TopN int
}

// detailer is implemented by groups that carry category records.
type detailer interface {
	DetailCount() int
}
