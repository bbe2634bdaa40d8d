package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"macrocli/pkg/contracts/domain"
)

type fakeAnalysisStore struct {
	lastThreshold float64
	lastLimit     int
	lastYear      int
}

func (f *fakeAnalysisStore) HighUnemploymentMonths(ctx context.Context, threshold float64, limit int) ([]domain.UnemploymentMonth, error) {
	f.lastThreshold, f.lastLimit = threshold, limit
	return nil, nil
}

func (f *fakeAnalysisStore) AvgUnemploymentByDecade(ctx context.Context) ([]domain.DecadeAverage, error) {
	return []domain.DecadeAverage{{Decade: "1990s", AvgUnemployment: 5.8}}, nil
}

func (f *fakeAnalysisStore) YieldCurveInversions(ctx context.Context, limit int) ([]domain.InversionMonth, error) {
	f.lastLimit = limit
	return nil, nil
}

func (f *fakeAnalysisStore) YearSnapshot(ctx context.Context, year int) ([]domain.MonthlyRecord, error) {
	f.lastYear = year
	return nil, nil
}

func TestAnalysisServiceDefaults(t *testing.T) {
	fake := &fakeAnalysisStore{}
	svc := NewAnalysisService(fake, nil)
	ctx := context.Background()

	_, err := svc.HighUnemploymentMonths(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultUnemploymentThreshold, fake.lastThreshold)
	assert.Equal(t, DefaultAnalysisLimit, fake.lastLimit)

	_, err = svc.HighUnemploymentMonths(ctx, 6.5, 1000)
	require.NoError(t, err)
	assert.Equal(t, 6.5, fake.lastThreshold)
	assert.Equal(t, MaxListLimit, fake.lastLimit)

	_, err = svc.YieldCurveInversions(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultAnalysisLimit, fake.lastLimit)

	_, err = svc.YearSnapshot(ctx, 2020)
	require.NoError(t, err)
	assert.Equal(t, 2020, fake.lastYear)
}

func TestAnalysisServiceCrisisBands(t *testing.T) {
	svc := NewAnalysisService(&fakeAnalysisStore{}, nil)

	bands := svc.CrisisBands()
	require.Len(t, bands, 3)
	assert.Equal(t, "Dotcom", bands[0].Name)
	assert.Equal(t, "2007-12-01", bands[1].Start)
	assert.Equal(t, "2020-04-01", bands[2].End)
}
