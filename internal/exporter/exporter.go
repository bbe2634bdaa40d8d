// Package exporter writes the assembled panel to analyst-friendly formats.
// The JSON artifact is the source of truth; CSV and XLSX exports are flat
// views of it with one row per month. Absent values export as empty cells,
// never zero.
package exporter

import (
	"strconv"

	"macrocli/pkg/contracts/domain"
)

// Headers for the flat exports, in column order.
var columns = []string{
	"date",
	"unemployment_rate",
	"cpi_all_items",
	"fed_funds_rate",
	"yield_spread_10y_2y",
	"unemployment_rate_bls",
	"total_nonfarm_payrolls",
	"labor_force_participation_rate",
	"total_population",
	"median_household_income",
}

// flatten converts a record into one export row following the column order.
func flatten(rec domain.MonthlyRecord) []string {
	return []string{
		rec.Date,
		formatCell(rec.Fred.UnemploymentRate),
		formatCell(rec.Fred.CPIAllItems),
		formatCell(rec.Fred.FedFundsRate),
		formatCell(rec.Fred.YieldSpread10Y2Y),
		formatCell(rec.BLS.UnemploymentRateBLS),
		formatCell(rec.BLS.TotalNonfarmPayrolls),
		formatCell(rec.BLS.LaborForceParticipationRate),
		formatCell(rec.Census.TotalPopulation),
		formatCell(rec.Census.MedianHouseholdIncome),
	}
}

func formatCell(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
