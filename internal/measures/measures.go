// Package measures aggregates the pandemic measures and restrictions dataset by country.
package measures

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ppiankov/covidetl/internal/dataset"
	"github.com/ppiankov/covidetl/internal/record"
)

// Input columns.
const (
	ColCountry           = "Country"
	ColKeywords          = "Keywords"
	ColDateStart         = "Date Start"
	ColDateEnd           = "Date end intended"
	ColDescription       = "Description of measure implemented"
	ColQuantity          = "Quantity"
	ColExceptions        = "Exceptions"
	ColImplementingCity  = "Implementing City"
	ColImplementingState = "Implementing State/Province"
	ColTargetCountry     = "Target country"
	ColTargetRegion      = "Target region"
	ColSource            = "Source"
)

const (
	listSeparator        = ", "
	sourceDateLayout     = "Jan 2, 2006"
	normalizedDateLayout = "2006-01-02"
)

// Columns lists the columns a measures dataset must carry.
var Columns = []string{
	ColCountry, ColKeywords, ColDateStart, ColDateEnd, ColDescription, ColQuantity,
	ColExceptions, ColImplementingCity, ColImplementingState, ColTargetCountry,
	ColTargetRegion, ColSource,
}

// Metric names accepted by Group.Metric.
const (
	MetricKeywordsTotal        = "keywordsTotal"
	MetricKeywordsRecordsTotal = "keywordsRecordsTotal"
)

// Resolver maps a country name to a two-letter code.
type Resolver interface {
	Resolve(name string) (string, error)
}

// Row is a parsed, normalized measures row.
type Row struct {
	Code         string
	SourceDomain string
	Detail       record.MeasureDetail
}

// ParseRows normalizes table rows. Rows without a country or keywords are
// dropped; an unresolvable country name aborts parsing.
func ParseRows(t *dataset.Table, resolver Resolver) (rows []Row, dropped int, err error) {
	if err := t.Require(Columns...); err != nil {
		return nil, 0, err
	}
	rows = make([]Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		if r.Get(ColCountry) == "" || r.Get(ColKeywords) == "" {
			dropped++
			continue
		}
		row, err := parseRow(r, resolver)
		if err != nil {
			return nil, dropped, fmt.Errorf("%s: %w", t.Source, err)
		}
		rows = append(rows, row)
	}
	return rows, dropped, nil
}

func parseRow(r dataset.Row, resolver Resolver) (Row, error) {
	code, err := resolver.Resolve(r.Get(ColCountry))
	if err != nil {
		return Row{}, fmt.Errorf("line %d: %w", r.Line, err)
	}
	code = strings.ToLower(code)

	start, err := parseDate(r, ColDateStart)
	if err != nil {
		return Row{}, err
	}
	end, err := parseDate(r, ColDateEnd)
	if err != nil {
		return Row{}, err
	}
	quantity, err := r.OptionalInt(ColQuantity)
	if err != nil {
		return Row{}, err
	}

	source := r.Get(ColSource)
	return Row{
		Code:         code,
		SourceDomain: domain(source),
		Detail: record.MeasureDetail{
			Code:               code,
			DateStart:          start,
			DateEnd:            end,
			Description:        record.String(r.Get(ColDescription)),
			Keywords:           splitList(r.Get(ColKeywords)),
			Exceptions:         splitList(r.Get(ColExceptions)),
			Quantity:           quantity,
			ImplementingCities: splitList(r.Get(ColImplementingCity)),
			ImplementingStates: splitList(r.Get(ColImplementingState)),
			TargetCountries:    splitList(r.Get(ColTargetCountry)),
			TargetRegions:      splitList(r.Get(ColTargetRegion)),
			Source:             record.String(source),
		},
	}, nil
}

// parseDate normalizes "Mar 15, 2020" to "2020-03-15". An empty cell yields nil.
func parseDate(r dataset.Row, col string) (*string, error) {
	v := r.Get(col)
	if v == "" {
		return nil, nil
	}
	ts, err := time.Parse(sourceDateLayout, v)
	if err != nil {
		return nil, fmt.Errorf("line %d: column %q: %w", r.Line, col, err)
	}
	s := ts.Format(normalizedDateLayout)
	return &s, nil
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, listSeparator)
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// domain returns the host part of a source URL, or "" when there is none.
func domain(source string) string {
	if source == "" {
		return ""
	}
	u, err := url.Parse(source)
	if err != nil {
		return ""
	}
	return u.Host
}
