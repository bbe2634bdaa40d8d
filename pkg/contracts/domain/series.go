package domain

// SeriesSpec ties an upstream series or variable identifier to the field key
// used in MonthlyRecord and a human-readable name. The builder emits the full
// set as a provenance document alongside the panel.
type SeriesSpec struct {
	ID   string `json:"-"`
	Key  string `json:"key"`
	Name string `json:"name"`
}

// SeriesDefinitions maps native series identifiers to their panel field keys,
// grouped by source.
type SeriesDefinitions struct {
	Fred   map[string]SeriesSpec `json:"fred"`
	BLS    map[string]SeriesSpec `json:"bls"`
	Census map[string]SeriesSpec `json:"census"`
}

// The series each source contributes to the panel. Order matters only for
// stable output; lookups go through the ID.
var (
	FredSeries = []SeriesSpec{
		{ID: "UNRATE", Key: "unemployment_rate", Name: "Unemployment Rate"},
		{ID: "CPIAUCSL", Key: "cpi_all_items", Name: "Consumer Price Index for All Urban Consumers: All Items"},
		{ID: "FEDFUNDS", Key: "fed_funds_rate", Name: "Effective Federal Funds Rate"},
		{ID: "T10Y2Y", Key: "yield_spread_10y_2y", Name: "10-Year Treasury Constant Maturity Minus 2-Year"},
	}

	BLSSeries = []SeriesSpec{
		{ID: "LNS14000000", Key: "unemployment_rate_bls", Name: "Unemployment Rate"},
		{ID: "CES0000000001", Key: "total_nonfarm_payrolls", Name: "All Employees, Total Nonfarm"},
		{ID: "LNS11300000", Key: "labor_force_participation_rate", Name: "Labor Force Participation Rate"},
	}

	CensusVars = []SeriesSpec{
		{ID: "B01001_001E", Key: "total_population", Name: "Total Population"},
		{ID: "B19013_001E", Key: "median_household_income", Name: "Median Household Income"},
	}
)

// Definitions assembles the provenance document for all sources.
func Definitions() SeriesDefinitions {
	build := func(specs []SeriesSpec) map[string]SeriesSpec {
		out := make(map[string]SeriesSpec, len(specs))
		for _, s := range specs {
			out[s.ID] = SeriesSpec{Key: s.Key, Name: s.Name}
		}
		return out
	}
	return SeriesDefinitions{
		Fred:   build(FredSeries),
		BLS:    build(BLSSeries),
		Census: build(CensusVars),
	}
}
