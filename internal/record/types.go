package record

// Dataset identifies one of the supported input datasets.
type Dataset string

const (
	DatasetBeds     Dataset = "beds"
	DatasetMeasures Dataset = "measures"
)

// Datasets lists the datasets in menu order.
var Datasets = []Dataset{DatasetBeds, DatasetMeasures}

// BedsRecord is the per-country record of the bed capacity dataset.
// EstimatedBedsAverage is nil when the country has no bed types.
type BedsRecord struct {
	Code                 string   `json:"code"`
	Lat                  float64  `json:"lat"`
	Lng                  float64  `json:"lng"`
	BedsTotal            float64  `json:"bedsTotal"`
	BedsAverage          float64  `json:"bedsAverage"`
	PopulationAverage    float64  `json:"populationAverage"`
	EstimatedBedsTotal   float64  `json:"estimatedBedsTotal"`
	EstimatedBedsAverage *float64 `json:"estimatedBedsAverage"`
}

// BedType holds the figures of one bed type within a country.
type BedType struct {
	Code                   string   `json:"code"`
	Type                   string   `json:"type"`
	Total                  float64  `json:"total"`
	Percentage             *float64 `json:"percentage"`
	Population             float64  `json:"population"`
	EstimatedForPopulation float64  `json:"estimatedForPopulation"`
	Source                 string   `json:"source"`
	SourceURL              string   `json:"sourceUrl"`
	Year                   int      `json:"year"`
}

// BedsGeneral holds dataset-wide bed statistics.
type BedsGeneral struct {
	BedCount             float64        `json:"bedCount"`
	BedAverage           *float64       `json:"bedAverage"`
	BedStandardDeviation float64        `json:"bedStandardDeviation"`
	SourcesCount         map[string]int `json:"sourcesCount"`
}

// BedTypeGeneral holds dataset-wide statistics for a single bed type.
type BedTypeGeneral struct {
	Type              string   `json:"type"`
	Count             float64  `json:"count"`
	Percentage        *float64 `json:"percentage"`
	Average           float64  `json:"average"`
	StandardDeviation float64  `json:"standardDeviation"`
}

// MeasuresGroup is the per-country record of the measures dataset.
type MeasuresGroup struct {
	Code                 string         `json:"code"`
	KeywordsCount        map[string]int `json:"keywordsCount"`
	KeywordsTotal        int            `json:"keywordsTotal"`
	KeywordsRecordsTotal int            `json:"keywordsRecordsTotal"`
	SourcesCount         map[string]int `json:"sourcesCount"`
}

// MeasureDetail is a single normalized measure record.
type MeasureDetail struct {
	Code               string   `json:"code"`
	DateStart          *string  `json:"dateStart"`
	DateEnd            *string  `json:"dateEnd"`
	Description        *string  `json:"description"`
	Keywords           []string `json:"keywords"`
	Exceptions         []string `json:"exceptions"`
	Quantity           *int     `json:"quantity"`
	ImplementingCities []string `json:"implementingCities"`
	ImplementingStates []string `json:"implementingStates"`
	TargetCountries    []string `json:"targetCountries"`
	TargetRegions      []string `json:"targetRegions"`
	Source             *string  `json:"source"`
}

// MeasuresGeneral holds dataset-wide measures statistics.
type MeasuresGeneral struct {
	CountriesMeasuresCount map[string]int `json:"countriesMeasuresCount"`
	AllKeywordsCount       map[string]int `json:"allKeywordsCount"`
	AllSourcesCount        map[string]int `json:"allSourcesCount"`
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}

// String returns a pointer to s, or nil when s is empty.
func String(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
