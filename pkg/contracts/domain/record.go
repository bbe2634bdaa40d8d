package domain

// MonthlyRecord represents one month of the assembled US macro/labor panel.
// It is the unit of output of the builder, the unit of storage in the
// document store, and the unit of exchange on the CRUD API. Every metric is
// independently nullable: nil means the source had no observation for that
// month, which is distinct from an observed zero.
type MonthlyRecord struct {
	Date   string       `json:"date" validate:"required,datetime=2006-01-02"`
	Fred   FredFields   `json:"fred"`
	BLS    BLSFields    `json:"bls"`
	Census CensusFields `json:"census"`
}

// FredFields holds the monthly FRED macro series.
type FredFields struct {
	UnemploymentRate *float64 `json:"unemployment_rate"`
	CPIAllItems      *float64 `json:"cpi_all_items"`
	FedFundsRate     *float64 `json:"fed_funds_rate"`
	YieldSpread10Y2Y *float64 `json:"yield_spread_10y_2y"`
}

// BLSFields holds the monthly BLS labor series.
type BLSFields struct {
	UnemploymentRateBLS          *float64 `json:"unemployment_rate_bls"`
	TotalNonfarmPayrolls         *float64 `json:"total_nonfarm_payrolls"`
	LaborForceParticipationRate  *float64 `json:"labor_force_participation_rate"`
}

// CensusFields holds the annual Census series, forward-filled to monthly.
type CensusFields struct {
	TotalPopulation       *float64 `json:"total_population"`
	MedianHouseholdIncome *float64 `json:"median_household_income"`
}
