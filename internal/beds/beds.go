// Package beds aggregates the hospital bed capacity dataset by country and bed type.
package beds

import (
	"fmt"
	"strings"

	"github.com/ppiankov/covidetl/internal/dataset"
	"github.com/ppiankov/covidetl/internal/record"
	"github.com/ppiankov/covidetl/internal/stats"
)

// EstimateScale converts population × beds into an estimated bed count
// (beds are reported per ten inhabitants in the source data).
const EstimateScale = 10.0

// Input columns.
const (
	ColCountry    = "country"
	ColLat        = "lat"
	ColLng        = "lng"
	ColType       = "type"
	ColBeds       = "beds"
	ColPopulation = "population"
	ColSource     = "source"
	ColSourceURL  = "source_url"
	ColYear       = "year"
)

// Columns lists the columns a beds dataset must carry.
var Columns = []string{ColCountry, ColLat, ColLng, ColType, ColBeds, ColPopulation, ColSource, ColSourceURL, ColYear}

// Metric names accepted by Group.Metric.
const (
	MetricBedsTotal            = "bedsTotal"
	MetricBedsAverage          = "bedsAverage"
	MetricEstimatedBedsTotal   = "estimatedBedsTotal"
	MetricEstimatedBedsAverage = "estimatedBedsAverage"
)

// Row is a parsed beds dataset row.
type Row struct {
	Country    string
	Lat        float64
	Lng        float64
	Type       string
	Beds       float64
	Population float64
	Source     string
	SourceURL  string
	Year       int
}

// ParseRows converts table rows into typed rows. Any row with a missing or
// malformed required field aborts parsing.
func ParseRows(t *dataset.Table) ([]Row, error) {
	if err := t.Require(Columns...); err != nil {
		return nil, err
	}
	rows := make([]Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		row, err := parseRow(r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", t.Source, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRow(r dataset.Row) (Row, error) {
	var (
		row Row
		err error
	)
	if row.Country, err = r.Required(ColCountry); err != nil {
		return Row{}, err
	}
	if row.Type, err = r.Required(ColType); err != nil {
		return Row{}, err
	}
	if row.Lat, err = r.Float(ColLat); err != nil {
		return Row{}, err
	}
	if row.Lng, err = r.Float(ColLng); err != nil {
		return Row{}, err
	}
	if row.Beds, err = r.Float(ColBeds); err != nil {
		return Row{}, err
	}
	if row.Population, err = r.Float(ColPopulation); err != nil {
		return Row{}, err
	}
	if row.Year, err = r.Int(ColYear); err != nil {
		return Row{}, err
	}
	row.Source = r.Get(ColSource)
	row.SourceURL = r.Get(ColSourceURL)
	return row, nil
}

// Group is one country with its bed type breakdown.
type Group struct {
	Record record.BedsRecord
	Types  []record.BedType
}

// Key returns the country code.
func (g Group) Key() string {
	return g.Record.Code
}

// DetailCount returns the number of bed types in the group.
func (g Group) DetailCount() int {
	return len(g.Types)
}

// Metric returns the named metric. The second value is false for a null metric.
func (g Group) Metric(name string) (float64, bool, error) {
	switch name {
	case MetricBedsTotal:
		return g.Record.BedsTotal, true, nil
	case MetricBedsAverage:
		return g.Record.BedsAverage, true, nil
	case MetricEstimatedBedsTotal:
		return g.Record.EstimatedBedsTotal, true, nil
	case MetricEstimatedBedsAverage:
		if g.Record.EstimatedBedsAverage == nil {
			return 0, false, nil
		}
		return *g.Record.EstimatedBedsAverage, true, nil
	default:
		return 0, false, fmt.Errorf("unknown beds metric %q", name)
	}
}

// Aggregate groups rows by country in first-seen order.
func Aggregate(rows []Row) []Group {
	var order []string
	builders := make(map[string]*countryBuilder)
	for _, r := range rows {
		key := countryKey(r.Country)
		b, ok := builders[key]
		if !ok {
			b = newCountryBuilder(key, r)
			builders[key] = b
			order = append(order, key)
		}
		b.add(r)
	}

	groups := make([]Group, 0, len(order))
	for _, key := range order {
		groups = append(groups, builders[key].build())
	}
	return groups
}

func countryKey(country string) string {
	return strings.ToLower(strings.TrimSpace(country))
}

// countryBuilder collects the rows of one country. The record is only
// produced by build, once every bed type is known.
type countryBuilder struct {
	code       string
	lat, lng   float64
	beds       []float64
	population []float64
	typeOrder  []string
	types      map[string]*typeBuilder
}

type typeBuilder struct {
	name       string
	total      float64
	population float64
	source     string
	sourceURL  string
	year       int
}

func newCountryBuilder(code string, first Row) *countryBuilder {
	return &countryBuilder{
		code:  code,
		lat:   first.Lat,
		lng:   first.Lng,
		types: make(map[string]*typeBuilder),
	}
}

func (b *countryBuilder) add(r Row) {
	b.beds = append(b.beds, r.Beds)
	b.population = append(b.population, r.Population)

	name := strings.ToLower(strings.TrimSpace(r.Type))
	tb, ok := b.types[name]
	if !ok {
		tb = &typeBuilder{
			name:       name,
			population: r.Population,
			source:     r.Source,
			sourceURL:  r.SourceURL,
			year:       r.Year,
		}
		b.types[name] = tb
		b.typeOrder = append(b.typeOrder, name)
	}
	tb.total += r.Beds
}

func (b *countryBuilder) build() Group {
	total := stats.Sum(b.beds)
	avg, _ := stats.Mean(b.beds)
	popAvg, _ := stats.Mean(b.population)

	types := make([]record.BedType, 0, len(b.typeOrder))
	var estimatedTotal float64
	for _, name := range b.typeOrder {
		tb := b.types[name]
		estimated := tb.population * tb.total / EstimateScale
		estimatedTotal += estimated

		bt := record.BedType{
			Code:                   b.code,
			Type:                   tb.name,
			Total:                  tb.total,
			Population:             tb.population,
			EstimatedForPopulation: estimated,
			Source:                 tb.source,
			SourceURL:              tb.sourceURL,
			Year:                   tb.year,
		}
		if pct, ok := stats.Percentage(tb.total, total); ok {
			bt.Percentage = record.Float(pct)
		}
		types = append(types, bt)
	}

	rec := record.BedsRecord{
		Code:               b.code,
		Lat:                b.lat,
		Lng:                b.lng,
		BedsTotal:          total,
		BedsAverage:        avg,
		PopulationAverage:  popAvg,
		EstimatedBedsTotal: estimatedTotal,
	}
	if len(types) > 0 {
		rec.EstimatedBedsAverage = record.Float(estimatedTotal / float64(len(types)))
	}
	return Group{Record: rec, Types: types}
}
