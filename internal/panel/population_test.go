package panel

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"macrocli/internal/sources"
)

// stubCensus serves canned tables per PEP dataset.
type stubCensus struct {
	byAge       sources.Table
	byAgeErr    error
	estimates   map[string]sources.Table
	estimateErr map[string]error
}

func (s *stubCensus) PEPNationalByAge(ctx context.Context, month string) (sources.Table, error) {
	if s.byAgeErr != nil {
		return nil, s.byAgeErr
	}
	return s.byAge, nil
}

func (s *stubCensus) PEPEstimates(ctx context.Context, dataset, descVar string) (sources.Table, error) {
	if err := s.estimateErr[dataset]; err != nil {
		return nil, err
	}
	return s.estimates[dataset], nil
}

func (s *stubCensus) ACS1(ctx context.Context, year int, variables []string) (sources.Table, error) {
	return nil, errors.New("not configured")
}

func (s *stubCensus) CPSASEC(ctx context.Context, year int) (sources.Table, error) {
	return nil, errors.New("not configured")
}

func TestReconcilePopulationSumsAgeBands(t *testing.T) {
	src := &stubCensus{
		byAge: sources.Table{
			{"YEAR", "MONTH", "TOT_POP", "AGE"},
			{"1995", "7", "100.0", "0"},
			{"1995", "7", "200.0", "1"},
			{"1995", "7", "300.0", "2"},
			{"1996", "7", "50.0", "0"},
		},
	}

	got := ReconcilePopulation(context.Background(), src, 1990, 2000, slog.Default())

	require.NotNil(t, got[1995])
	assert.Equal(t, 600.0, *got[1995], "age bands must be summed per year")
	require.NotNil(t, got[1996])
	assert.Equal(t, 50.0, *got[1996])
}

func TestReconcilePopulationLaterWindowWins(t *testing.T) {
	// The 1990s intercensal window and the 2000s window deliberately
	// overlap at year 2000; the later vintage must overwrite.
	src := &stubCensus{
		byAge: sources.Table{
			{"YEAR", "MONTH", "TOT_POP", "AGE"},
			{"2000", "7", "280000000", "0"},
		},
		estimates: map[string]sources.Table{
			"2000/pep/int_population": {
				{"DATE_DESC", "POP"},
				{"7/1/2000 population estimate", "281000000"},
			},
		},
	}

	got := ReconcilePopulation(context.Background(), src, 1990, 2010, slog.Default())

	require.NotNil(t, got[2000])
	assert.Equal(t, 281000000.0, *got[2000], "later window must win the boundary year")
}

func TestReconcilePopulationFailedWindowSkipped(t *testing.T) {
	src := &stubCensus{
		byAge: sources.Table{
			{"YEAR", "MONTH", "TOT_POP", "AGE"},
			{"2000", "7", "280000000", "0"},
		},
		estimateErr: map[string]error{
			"2000/pep/int_population": errors.New("HTTP 500"),
		},
	}

	got := ReconcilePopulation(context.Background(), src, 1990, 2010, slog.Default())

	require.NotNil(t, got[2000])
	assert.Equal(t, 280000000.0, *got[2000], "earlier window survives when the later one fails")
}

func TestReconcilePopulationJulyFirstFilter(t *testing.T) {
	src := &stubCensus{
		estimates: map[string]sources.Table{
			"2019/pep/population": {
				{"DATE_DESC", "POP"},
				{"4/1/2010 Census population", "308745538"},
				{"7/1/2015 population estimate", "320635163"},
				{"7/1/2019 population estimate", "328239523"},
				{"garbage row", "1"},
			},
		},
	}

	got := ReconcilePopulation(context.Background(), src, 2010, 2019, slog.Default())

	assert.Len(t, got, 2, "only July 1 reference-date rows survive")
	require.NotNil(t, got[2015])
	assert.Equal(t, 320635163.0, *got[2015])
	_, hasCensusDay := got[2010]
	assert.False(t, hasCensusDay, "April 1 census-day base must be discarded")
}

func TestReconcilePopulationMonthlyVintage(t *testing.T) {
	src := &stubCensus{
		estimates: map[string]sources.Table{
			"2021/pep/natmonthly": {
				{"MONTHLY_DESC", "POP"},
				{"6/1/2021 population estimate", "331800000"},
				{"7/1/2021 population estimate", "331893745"},
				{"8/1/2021 population estimate", "331950000"},
			},
		},
	}

	got := ReconcilePopulation(context.Background(), src, 2020, 2022, slog.Default())

	require.NotNil(t, got[2021])
	assert.Equal(t, 331893745.0, *got[2021], "monthly cadence reduces to the July 1 estimate")
}

func TestReconcilePopulationOutOfRangeWindows(t *testing.T) {
	src := &stubCensus{byAgeErr: errors.New("should not be called")}

	got := ReconcilePopulation(context.Background(), src, 2023, 2024, slog.Default())
	assert.Empty(t, got, "no window covers the requested range")
}

func TestYearFromText(t *testing.T) {
	tests := []struct {
		text string
		want int
		ok   bool
	}{
		{"7/1/2015 population estimate", 2015, true},
		{"July 1, 1998 intercensal estimate", 1998, true},
		{"no year here", 0, false},
		{"year 1889 is out of pattern", 0, false},
	}

	for _, tt := range tests {
		year, ok := yearFromText(tt.text)
		assert.Equal(t, tt.ok, ok, tt.text)
		if tt.ok {
			assert.Equal(t, tt.want, year, tt.text)
		}
	}
}
