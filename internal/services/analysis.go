package services

import (
	"context"
	"log/slog"

	"macrocli/pkg/contracts/domain"
)

// Analysis defaults, matching the documented query behavior.
const (
	DefaultUnemploymentThreshold = 8.0
	DefaultAnalysisLimit         = 10
)

// AnalysisStore is the slice of the store the analysis service needs.
type AnalysisStore interface {
	HighUnemploymentMonths(ctx context.Context, threshold float64, limit int) ([]domain.UnemploymentMonth, error)
	AvgUnemploymentByDecade(ctx context.Context) ([]domain.DecadeAverage, error)
	YieldCurveInversions(ctx context.Context, limit int) ([]domain.InversionMonth, error)
	YearSnapshot(ctx context.Context, year int) ([]domain.MonthlyRecord, error)
}

// crisisBands are the recession reference periods used to annotate results.
var crisisBands = []domain.CrisisBand{
	{Name: "Dotcom", Start: "2001-03-01", End: "2002-11-01"},
	{Name: "GFC", Start: "2007-12-01", End: "2009-06-01"},
	{Name: "COVID", Start: "2020-02-01", End: "2020-04-01"},
}

// AnalysisService answers the canned economic questions over the stored
// panel.
type AnalysisService struct {
	store  AnalysisStore
	logger *slog.Logger
}

// NewAnalysisService creates an analysis service.
func NewAnalysisService(store AnalysisStore, logger *slog.Logger) *AnalysisService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalysisService{
		store:  store,
		logger: logger.With(slog.String("component", "analysis_service")),
	}
}

// HighUnemploymentMonths returns months above the threshold, worst first.
// Zero threshold and limit take the documented defaults.
func (s *AnalysisService) HighUnemploymentMonths(ctx context.Context, threshold float64, limit int) ([]domain.UnemploymentMonth, error) {
	if threshold == 0 {
		threshold = DefaultUnemploymentThreshold
	}
	limit = clampLimit(limit)
	return s.store.HighUnemploymentMonths(ctx, threshold, limit)
}

// AvgUnemploymentByDecade returns per-decade unemployment averages.
func (s *AnalysisService) AvgUnemploymentByDecade(ctx context.Context) ([]domain.DecadeAverage, error) {
	return s.store.AvgUnemploymentByDecade(ctx)
}

// YieldCurveInversions returns the most inverted months.
func (s *AnalysisService) YieldCurveInversions(ctx context.Context, limit int) ([]domain.InversionMonth, error) {
	return s.store.YieldCurveInversions(ctx, clampLimit(limit))
}

// YearSnapshot returns all records for one year.
func (s *AnalysisService) YearSnapshot(ctx context.Context, year int) ([]domain.MonthlyRecord, error) {
	return s.store.YearSnapshot(ctx, year)
}

// CrisisBands returns the static recession reference periods.
func (s *AnalysisService) CrisisBands() []domain.CrisisBand {
	return crisisBands
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultAnalysisLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
