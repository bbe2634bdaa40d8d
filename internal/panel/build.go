// Package panel implements the reconciliation and assembly engine for the
// US macro/labor monthly panel: the month axis, per-source normalizers, the
// population vintage overlay, the weighted-median income estimator, and the
// assembler that joins everything into one record per month.
package panel

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"macrocli/internal/sources"
	"macrocli/pkg/contracts/domain"
)

// CPSIncomeStartYear is the first CPS ASEC survey year with usable household
// income microdata for this panel.
const CPSIncomeStartYear = 1992

// FredSource provides monthly FRED observations.
type FredSource interface {
	Observations(ctx context.Context, seriesID string, start, end time.Time) ([]sources.FredObservation, error)
}

// BLSSource provides BLS timeseries data, capped at
// sources.MaxYearsPerRequest per call.
type BLSSource interface {
	Timeseries(ctx context.Context, seriesIDs []string, startYear, endYear int) ([]sources.BLSSeries, error)
}

// CensusSource provides everything the panel needs from the Census API:
// the PEP vintages, the ACS1 aggregates, and the CPS ASEC microdata.
type CensusSource interface {
	PopulationSource
	ACS1(ctx context.Context, year int, variables []string) (sources.Table, error)
	CPSASEC(ctx context.Context, year int) (sources.Table, error)
}

// Builder runs one full panel build. All fetching is strictly sequential;
// a Builder holds no state across runs and every run rebuilds from scratch.
type Builder struct {
	fred   FredSource
	bls    BLSSource
	census CensusSource
	logger *slog.Logger
}

// NewBuilder wires a builder to its three source collaborators. A nil
// logger falls back to slog.Default.
func NewBuilder(fred FredSource, bls BLSSource, census CensusSource, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		fred:   fred,
		bls:    bls,
		census: census,
		logger: logger.With(slog.String("component", "panel_builder")),
	}
}

// Build fetches, normalizes, reconciles, and assembles the panel over
// [start, end]. FRED and BLS failures are fatal: losing either source would
// blank its entire section of the panel, so the run stops. Census failures
// are contained per year or per vintage window and degrade to absent values.
func (b *Builder) Build(ctx context.Context, start, end time.Time) ([]domain.MonthlyRecord, error) {
	in := Inputs{
		Fred: make(map[string]SeriesMap, len(domain.FredSeries)),
		BLS:  make(map[string]SeriesMap, len(domain.BLSSeries)),
	}

	for _, s := range domain.FredSeries {
		observations, err := b.fred.Observations(ctx, s.ID, start, end)
		if err != nil {
			return nil, fmt.Errorf("fetch FRED series %s: %w", s.ID, err)
		}
		in.Fred[s.ID] = NormalizeFred(observations)
		b.logger.Info("FRED series normalized",
			slog.String("series_id", s.ID),
			slog.Int("observations", len(in.Fred[s.ID])),
		)
	}

	blsIDs := make([]string, 0, len(domain.BLSSeries))
	for _, s := range domain.BLSSeries {
		blsIDs = append(blsIDs, s.ID)
		in.BLS[s.ID] = make(SeriesMap)
	}
	for _, chunk := range YearChunks(start.Year(), end.Year(), sources.MaxYearsPerRequest) {
		series, err := b.bls.Timeseries(ctx, blsIDs, chunk[0], chunk[1])
		if err != nil {
			return nil, fmt.Errorf("fetch BLS years %d-%d: %w", chunk[0], chunk[1], err)
		}
		for _, s := range series {
			if s.SeriesID == "" {
				continue
			}
			if _, ok := in.BLS[s.SeriesID]; !ok {
				continue
			}
			in.BLS[s.SeriesID].Merge(NormalizeBLS(s))
		}
		b.logger.Info("BLS chunk normalized",
			slog.Int("start_year", chunk[0]),
			slog.Int("end_year", chunk[1]),
		)
	}

	in.ACS = b.fetchACS(ctx, ACSIncomeCutoffYear, end.Year())
	in.CPSIncome = b.fetchCPSIncome(ctx, CPSIncomeStartYear, min(ACSIncomeCutoffYear-1, end.Year()))
	in.Population = ReconcilePopulation(ctx, b.census, start.Year(), end.Year(), b.logger)

	return Assemble(start, end, in), nil
}

// fetchACS collects the national ACS1 aggregates year by year. ACS1 simply
// does not exist past the latest published release, so the loop stops at the
// first failing year instead of treating it as an error.
func (b *Builder) fetchACS(ctx context.Context, startYear, endYear int) map[int]map[string]*float64 {
	variables := make([]string, 0, len(domain.CensusVars))
	for _, v := range domain.CensusVars {
		variables = append(variables, v.ID)
	}

	out := make(map[int]map[string]*float64)
	for year := startYear; year <= endYear; year++ {
		table, err := b.census.ACS1(ctx, year, variables)
		if err != nil {
			b.logger.Info("ACS1 series ends",
				slog.Int("year", year),
				slog.String("error", err.Error()),
			)
			break
		}
		if len(table) < 2 {
			continue
		}
		idx := headerIndex(table[0])
		row := table[1]
		values := make(map[string]*float64, len(variables))
		for _, id := range variables {
			col, ok := idx[id]
			if !ok || col >= len(row) {
				values[id] = nil
				continue
			}
			values[id] = ParseValue(row[col])
		}
		out[year] = values
	}
	return out
}

// fetchCPSIncome computes the weighted-median household income per survey
// year from CPS ASEC microdata. Unlike ACS1, a failing year here is a gap in
// the microdata, not the end of the series, so the loop continues.
func (b *Builder) fetchCPSIncome(ctx context.Context, startYear, endYear int) AnnualMap {
	out := make(AnnualMap)
	for year := startYear; year <= endYear; year++ {
		table, err := b.census.CPSASEC(ctx, year)
		if err != nil {
			b.logger.Warn("CPS ASEC year unavailable",
				slog.Int("year", year),
				slog.String("error", err.Error()),
			)
			continue
		}
		if len(table) < 2 {
			continue
		}
		idx := headerIndex(table[0])
		incomeCol, okIncome := idx["HTOTVAL"]
		weightCol, okWeight := idx["HSUP_WGT"]
		if !okIncome || !okWeight {
			continue
		}
		var values, weights []float64
		for _, row := range table[1:] {
			if incomeCol >= len(row) || weightCol >= len(row) {
				continue
			}
			value := ParseValue(row[incomeCol])
			weight := ParseValue(row[weightCol])
			if value == nil || weight == nil || *weight <= 0 {
				continue
			}
			values = append(values, *value)
			weights = append(weights, *weight)
		}
		out[year] = WeightedMedian(values, weights)
	}
	return out
}
