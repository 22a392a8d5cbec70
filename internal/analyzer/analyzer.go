package analyzer

import (
	"fmt"

	"github.com/ppiankov/covidetl/internal/filter"
)

// Analyze applies the strategy to the aggregated groups and computes summary
// statistics over the selection. General statistics strategies are rejected;
// they have no per-country selection.
func Analyze[G filter.Group](groups []G, s filter.Strategy, cfg AnalyzerConfig) (*AnalysisResult[G], error) {
	if s.Kind == filter.General {
		return nil, fmt.Errorf("analyze %s: general statistics have no country selection", s.Name)
	}
	n := cfg.TopN
	if n <= 0 {
		n = filter.DefaultTopN
	}

	selected, err := filter.Select(groups, s, n)
	if err != nil {
		return nil, err
	}

	summary := Summary{
		CountriesAggregated: len(groups),
		CountriesSelected:   len(selected),
		Filter:              s.Name,
		Kind:                s.Kind.String(),
	}
	for _, g := range selected {
		if d, ok := any(g).(detailer); ok {
			summary.DetailRecords += d.DetailCount()
		}
	}

	return &AnalysisResult[G]{
		Selected: selected,
		Summary:  summary,
	}, nil
}
