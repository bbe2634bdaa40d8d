package domain

// UnemploymentMonth is one month ranked by its BLS unemployment rate.
type UnemploymentMonth struct {
	Date                string  `json:"date"`
	UnemploymentRateBLS float64 `json:"unemployment_rate_bls"`
}

// DecadeAverage is the mean unemployment rate over one decade, keyed like
// "1990s".
type DecadeAverage struct {
	Decade          string  `json:"decade"`
	AvgUnemployment float64 `json:"avg_unemployment"`
}

// InversionMonth is one month in which the 10Y-2Y Treasury spread was
// negative.
type InversionMonth struct {
	Date             string  `json:"date"`
	YieldSpread10Y2Y float64 `json:"yield_spread_10y_2y"`
}

// CrisisBand is a named reference period used to annotate query results.
type CrisisBand struct {
	Name  string `json:"name"`
	Start string `json:"start"`
	End   string `json:"end"`
}
