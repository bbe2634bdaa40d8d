package panel

import (
	"time"

	"macrocli/pkg/contracts/domain"
)

// ACSIncomeCutoffYear is the first survey year with an authoritative ACS1
// median household income aggregate. Earlier years fall back to the weighted
// median computed from CPS ASEC microdata. The cutoff is a fixed year-range
// rule, not a data-quality comparison.
const ACSIncomeCutoffYear = 2005

// Inputs carries every normalized and reconciled series the assembler joins
// onto the month axis. Maps may be nil or sparse; missing data surfaces as
// explicit nulls in the output, never as zero.
type Inputs struct {
	// Fred and BLS are keyed by upstream series ID, then by YYYY-MM-01 date.
	Fred map[string]SeriesMap
	BLS  map[string]SeriesMap

	// Population is the reconciled vintage overlay, keyed by year.
	Population AnnualMap

	// ACS holds the annual ACS1 aggregates, keyed by year then variable ID.
	ACS map[int]map[string]*float64

	// CPSIncome holds the weighted-median household income computed from
	// CPS ASEC microdata, keyed by survey year.
	CPSIncome AnnualMap
}

// annualCandidate is one entry in a per-field fallback chain. resolve
// reports ok=false to fall through to the next candidate; when it reports
// ok=true its value is final, even if that value is absent.
type annualCandidate struct {
	source  string
	resolve func(in Inputs, year int) (*float64, bool)
}

// populationChain prefers the vintage-based estimate whenever it produced a
// value for the year, falling back to the ACS1 total otherwise.
var populationChain = []annualCandidate{
	{
		source: "pep_vintage",
		resolve: func(in Inputs, year int) (*float64, bool) {
			v := in.Population[year]
			return v, v != nil
		},
	},
	{
		source: "acs1",
		resolve: func(in Inputs, year int) (*float64, bool) {
			return in.ACS[year]["B01001_001E"], true
		},
	},
}

// incomeChain selects strictly by survey year: ACS1 from the cutoff year on,
// CPS-derived weighted median before it. An absent ACS1 value for a
// post-cutoff year stays absent.
var incomeChain = []annualCandidate{
	{
		source: "acs1",
		resolve: func(in Inputs, year int) (*float64, bool) {
			return in.ACS[year]["B19013_001E"], year >= ACSIncomeCutoffYear
		},
	},
	{
		source: "cps_asec",
		resolve: func(in Inputs, year int) (*float64, bool) {
			return in.CPSIncome[year], true
		},
	},
}

// resolveAnnual walks a fallback chain top-down and returns the first final
// value. Absent when no candidate takes the year.
func resolveAnnual(chain []annualCandidate, in Inputs, year int) *float64 {
	for _, candidate := range chain {
		if v, ok := candidate.resolve(in, year); ok {
			return v
		}
	}
	return nil
}

// Assemble joins all inputs onto the month axis, producing exactly one
// record per calendar month in [start, end] regardless of how sparse the
// inputs are. Annual census values are forward-filled: a year's resolved
// value applies identically to all twelve months. The output is ordered and
// deterministic for identical inputs.
func Assemble(start, end time.Time, in Inputs) []domain.MonthlyRecord {
	var records []domain.MonthlyRecord
	for month := range Months(start, end) {
		date := month.Format(DateFormat)
		year := month.Year()

		records = append(records, domain.MonthlyRecord{
			Date: date,
			Fred: domain.FredFields{
				UnemploymentRate: in.Fred["UNRATE"].Lookup(date),
				CPIAllItems:      in.Fred["CPIAUCSL"].Lookup(date),
				FedFundsRate:     in.Fred["FEDFUNDS"].Lookup(date),
				YieldSpread10Y2Y: in.Fred["T10Y2Y"].Lookup(date),
			},
			BLS: domain.BLSFields{
				UnemploymentRateBLS:         in.BLS["LNS14000000"].Lookup(date),
				TotalNonfarmPayrolls:        in.BLS["CES0000000001"].Lookup(date),
				LaborForceParticipationRate: in.BLS["LNS11300000"].Lookup(date),
			},
			Census: domain.CensusFields{
				TotalPopulation:       resolveAnnual(populationChain, in, year),
				MedianHouseholdIncome: resolveAnnual(incomeChain, in, year),
			},
		})
	}
	return records
}
