package filter

// Beds metric names, matching beds.Group.Metric.
const (
	bedsTotal            = "bedsTotal"
	bedsAverage          = "bedsAverage"
	estimatedBedsTotal   = "estimatedBedsTotal"
	estimatedBedsAverage = "estimatedBedsAverage"
)

// Measures metric names, matching measures.Group.Metric.
const (
	keywordsTotal        = "keywordsTotal"
	keywordsRecordsTotal = "keywordsRecordsTotal"
)

// BedsTable lists the filters of the bed capacity dataset.
var BedsTable = Table{
	{ID: 1, Name: "NUMBER_PERCENT_COUNTRY_NORMAL", Label: "Number and percentage of beds per type, by country (scale)", Kind: Unfiltered},
	{ID: 2, Name: "TOP_COUNTRIES_SCALE", Label: "Top %d countries with highest bed capacity (scale)", Kind: Top, Metric: bedsTotal},
	{ID: 3, Name: "BOTTOM_COUNTRIES_SCALE", Label: "Top %d countries with lowest bed capacity (scale)", Kind: Bottom, Metric: bedsTotal},
	{ID: 4, Name: "TOP_COUNTRIES_ESTIMATE", Label: "Top %d countries with highest bed capacity (estimated)", Kind: Top, Metric: estimatedBedsTotal},
	{ID: 5, Name: "BOTTOM_COUNTRIES_ESTIMATE", Label: "Top %d countries with lowest bed capacity (estimated)", Kind: Bottom, Metric: estimatedBedsTotal},
	{ID: 6, Name: "TOP_COUNTRIES_AVG_SCALE", Label: "Top %d countries with highest average bed capacity (scale)", Kind: Top, Metric: bedsAverage},
	{ID: 7, Name: "BOTTOM_COUNTRIES_AVG_SCALE", Label: "Top %d countries with lowest average bed capacity (scale)", Kind: Bottom, Metric: bedsAverage},
	{ID: 8, Name: "TOP_COUNTRIES_AVG_ESTIMATE", Label: "Top %d countries with highest average bed capacity (estimated)", Kind: Top, Metric: estimatedBedsAverage},
	{ID: 9, Name: "BOTTOM_COUNTRIES_AVG_ESTIMATE", Label: "Top %d countries with lowest average bed capacity (estimated)", Kind: Bottom, Metric: estimatedBedsAverage},
	{ID: 10, Name: "GENERAL_STATISTICS", Label: "General dataset statistics", Kind: General},
}

// MeasuresTable lists the filters of the measures dataset.
var MeasuresTable = Table{
	{ID: 1, Name: "GENERAL_COUNTRY_INFORMATION", Label: "General measures by country", Kind: Unfiltered},
	{ID: 2, Name: "TOP_COUNTRIES_MEASURE_COUNT", Label: "Top %d countries with highest count of different measures", Kind: Top, Metric: keywordsTotal},
	{ID: 3, Name: "BOTTOM_COUNTRIES_MEASURE_COUNT", Label: "Top %d countries with lowest count of different measures", Kind: Bottom, Metric: keywordsTotal},
	{ID: 4, Name: "TOP_COUNTRIES_RECORDS_COUNT", Label: "Top %d countries with highest count of measure records", Kind: Top, Metric: keywordsRecordsTotal},
	{ID: 5, Name: "BOTTOM_COUNTRIES_RECORDS_COUNT", Label: "Top %d countries with lowest count of measure records", Kind: Bottom, Metric: keywordsRecordsTotal},
	{ID: 6, Name: "GENERAL_STATISTICS", Label: "General dataset statistics", Kind: General},
}
