package beds

import (
	"strings"

	"github.com/ppiankov/covidetl/internal/record"
	"github.com/ppiankov/covidetl/internal/stats"
)

// GeneralStatistics holds dataset-wide figures computed directly over rows.
type GeneralStatistics struct {
	General record.BedsGeneral
	Types   []record.BedTypeGeneral
}

// Statistics computes dataset-wide bed statistics and a per-type breakdown.
func Statistics(rows []Row) GeneralStatistics {
	beds := make([]float64, 0, len(rows))
	sources := make(map[string]int)

	var typeOrder []string
	byType := make(map[string][]float64)

	for _, r := range rows {
		beds = append(beds, r.Beds)
		if r.Source != "" {
			sources[r.Source]++
		}
		name := strings.ToLower(strings.TrimSpace(r.Type))
		if _, ok := byType[name]; !ok {
			typeOrder = append(typeOrder, name)
		}
		byType[name] = append(byType[name], r.Beds)
	}

	total := stats.Sum(beds)
	general := record.BedsGeneral{
		BedCount:             total,
		BedStandardDeviation: stats.StdDev(beds),
		SourcesCount:         sources,
	}
	if avg, ok := stats.Mean(beds); ok {
		general.BedAverage = record.Float(avg)
	}

	types := make([]record.BedTypeGeneral, 0, len(typeOrder))
	for _, name := range typeOrder {
		values := byType[name]
		count := stats.Sum(values)
		avg, _ := stats.Mean(values)
		tg := record.BedTypeGeneral{
			Type:              name,
			Count:             count,
			Average:           avg,
			StandardDeviation: stats.StdDev(values),
		}
		if pct, ok := stats.Percentage(count, total); ok {
			tg.Percentage = record.Float(pct)
		}
		types = append(types, tg)
	}

	return GeneralStatistics{General: general, Types: types}
}
