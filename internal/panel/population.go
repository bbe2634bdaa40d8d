package panel

import (
	"context"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"macrocli/internal/sources"
)

// PopulationSource is the slice of the Census client the reconciler needs.
type PopulationSource interface {
	PEPNationalByAge(ctx context.Context, month string) (sources.Table, error)
	PEPEstimates(ctx context.Context, dataset, descVar string) (sources.Table, error)
}

// vintageWindow is one bounded span of candidate population values. Windows
// are applied in the order they appear in populationVintages; a later window
// overwrites any year it shares with an earlier one.
type vintageWindow struct {
	name      string
	startYear int
	endYear   int
	fetch     func(ctx context.Context, src PopulationSource, startYear, endYear int) (AnnualMap, error)
}

// populationVintages is the fixed precedence order for the national
// population overlay. Adjacent vintages deliberately share a boundary year;
// the later, more recent methodology must win, so the order of this list is
// load-bearing.
var populationVintages = []vintageWindow{
	{name: "intercensal_1990s", startYear: 1990, endYear: 2000, fetch: fetchIntercensalByAge},
	{name: "intercensal_2000s", startYear: 2000, endYear: 2010, fetch: pepEstimatesFetch("2000/pep/int_population", "DATE_DESC")},
	{name: "postcensal_vintage2019", startYear: 2010, endYear: 2019, fetch: pepEstimatesFetch("2019/pep/population", "DATE_DESC")},
	{name: "postcensal_monthly_vintage2021", startYear: 2020, endYear: 2022, fetch: pepEstimatesFetch("2021/pep/natmonthly", "MONTHLY_DESC")},
}

// ReconcilePopulation merges the vintage windows into one year→population
// map over [startYear, endYear]. Each window is clipped to the requested
// range and skipped entirely when it does not intersect it or when its fetch
// fails; a failed window simply contributes no keys. The result is a
// deterministic last-writer-wins overlay in declaration order.
func ReconcilePopulation(ctx context.Context, src PopulationSource, startYear, endYear int, logger *slog.Logger) AnnualMap {
	if logger == nil {
		logger = slog.Default()
	}
	merged := make(AnnualMap)
	for _, window := range populationVintages {
		if window.endYear < startYear || window.startYear > endYear {
			continue
		}
		values, err := window.fetch(ctx, src, max(window.startYear, startYear), min(window.endYear, endYear))
		if err != nil {
			logger.Warn("population vintage unavailable",
				slog.String("vintage", window.name),
				slog.String("error", err.Error()),
			)
			continue
		}
		for year, pop := range values {
			merged[year] = pop
		}
		logger.Debug("population vintage applied",
			slog.String("vintage", window.name),
			slog.Int("years", len(values)),
		)
	}
	return merged
}

// fetchIntercensalByAge handles the 1990s intercensal dataset, where rows
// are single-year age bands and the national total for a year is the sum
// across bands. The dataset's reference-month filter has accepted both "7"
// and "07" across releases, so both are tried until one returns rows.
func fetchIntercensalByAge(ctx context.Context, src PopulationSource, startYear, endYear int) (AnnualMap, error) {
	var lastErr error
	for _, month := range []string{"7", "07"} {
		table, err := src.PEPNationalByAge(ctx, month)
		if err != nil {
			lastErr = err
			continue
		}
		if len(table) < 2 {
			continue
		}
		idx := headerIndex(table[0])
		yearCol, okYear := idx["YEAR"]
		popCol, okPop := idx["TOT_POP"]
		if !okYear || !okPop {
			continue
		}
		totals := make(map[int]float64)
		for _, row := range table[1:] {
			if yearCol >= len(row) || popCol >= len(row) {
				continue
			}
			year, err := strconv.Atoi(strings.TrimSpace(row[yearCol]))
			if err != nil || year < startYear || year > endYear {
				continue
			}
			pop := ParseValue(row[popCol])
			if pop == nil {
				continue
			}
			totals[year] += *pop
		}
		out := make(AnnualMap, len(totals))
		for year, total := range totals {
			out[year] = Float(total)
		}
		return out, nil
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return AnnualMap{}, nil
}

// pepEstimatesFetch builds a fetch for the description-tagged PEP vintages.
// Rows carry a free-text reference-date description; only the standard
// mid-year "July 1" estimates are kept, which drops April 1 census-day bases
// and any revised duplicates for the same year.
func pepEstimatesFetch(dataset, descVar string) func(context.Context, PopulationSource, int, int) (AnnualMap, error) {
	return func(ctx context.Context, src PopulationSource, startYear, endYear int) (AnnualMap, error) {
		table, err := src.PEPEstimates(ctx, dataset, descVar)
		if err != nil {
			return nil, err
		}
		if len(table) < 2 {
			return AnnualMap{}, nil
		}
		idx := headerIndex(table[0])
		descCol, okDesc := idx[descVar]
		popCol, okPop := idx["POP"]
		if !okDesc || !okPop {
			return AnnualMap{}, nil
		}
		out := make(AnnualMap)
		for _, row := range table[1:] {
			if descCol >= len(row) || popCol >= len(row) {
				continue
			}
			desc := row[descCol]
			if !strings.Contains(desc, "July 1") {
				continue
			}
			year, ok := yearFromText(desc)
			if !ok || year < startYear || year > endYear {
				continue
			}
			pop := ParseValue(row[popCol])
			if pop == nil {
				continue
			}
			out[year] = pop
		}
		return out, nil
	}
}

var yearPattern = regexp.MustCompile(`(19|20)\d{2}`)

// yearFromText pulls the first four-digit year out of a description string.
func yearFromText(text string) (int, bool) {
	match := yearPattern.FindString(text)
	if match == "" {
		return 0, false
	}
	year, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return year, true
}

// headerIndex maps column names to positions for a Census header row.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	return idx
}
