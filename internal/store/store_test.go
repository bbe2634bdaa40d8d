package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"macrocli/pkg/contracts/domain"
)

func f(v float64) *float64 { return &v }

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func record(date string, unemployment, spread *float64) domain.MonthlyRecord {
	return domain.MonthlyRecord{
		Date: date,
		Fred: domain.FredFields{YieldSpread10Y2Y: spread},
		BLS:  domain.BLSFields{UnemploymentRateBLS: unemployment},
	}
}

func TestStoreCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := record("2020-04-01", f(14.7), f(0.43))
	require.NoError(t, s.Insert(ctx, rec))

	assert.ErrorIs(t, s.Insert(ctx, rec), ErrExists)

	got, err := s.Get(ctx, "2020-04-01")
	require.NoError(t, err)
	require.NotNil(t, got.BLS.UnemploymentRateBLS)
	assert.Equal(t, 14.7, *got.BLS.UnemploymentRateBLS)
	assert.Nil(t, got.Fred.UnemploymentRate, "absent fields round-trip as nil")

	rec.BLS.UnemploymentRateBLS = f(13.2)
	require.NoError(t, s.Update(ctx, rec))
	got, err = s.Get(ctx, "2020-04-01")
	require.NoError(t, err)
	assert.Equal(t, 13.2, *got.BLS.UnemploymentRateBLS)

	require.NoError(t, s.Delete(ctx, "2020-04-01"))
	_, err = s.Get(ctx, "2020-04-01")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "2020-04-01"), ErrNotFound)
	assert.ErrorIs(t, s.Update(ctx, rec), ErrNotFound)
}

func TestStoreList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Insert out of order; listing must come back sorted by date.
	for _, date := range []string{"1990-03-01", "1990-01-01", "1990-02-01", "1990-04-01"} {
		require.NoError(t, s.Insert(ctx, record(date, f(5.0), nil)))
	}

	records, err := s.List(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "1990-02-01", records[0].Date)
	assert.Equal(t, "1990-03-01", records[1].Date)
}

func TestStoreReplaceAll(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, record("1985-01-01", f(7.3), nil)))
	require.NoError(t, s.Insert(ctx, record("1985-02-01", f(7.2), nil)))

	incoming := []domain.MonthlyRecord{
		record("1985-02-01", f(9.9), nil),
		record("1985-03-01", f(7.2), nil),
	}

	n, err := s.ReplaceAll(ctx, incoming, false)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count, "non-drop import upserts and keeps existing rows")

	got, err := s.Get(ctx, "1985-02-01")
	require.NoError(t, err)
	assert.Equal(t, 9.9, *got.BLS.UnemploymentRateBLS)

	n, err = s.ReplaceAll(ctx, incoming, true)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	count, err = s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count, "drop import replaces the whole collection")
}

func TestHighUnemploymentMonths(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, record("2009-10-01", f(10.0), nil)))
	require.NoError(t, s.Insert(ctx, record("2020-04-01", f(14.7), nil)))
	require.NoError(t, s.Insert(ctx, record("2019-12-01", f(3.5), nil)))
	require.NoError(t, s.Insert(ctx, record("2019-11-01", nil, nil)))

	months, err := s.HighUnemploymentMonths(ctx, 8.0, 10)
	require.NoError(t, err)
	require.Len(t, months, 2)
	assert.Equal(t, "2020-04-01", months[0].Date, "worst month first")
	assert.Equal(t, 14.7, months[0].UnemploymentRateBLS)
	assert.Equal(t, "2009-10-01", months[1].Date)

	months, err = s.HighUnemploymentMonths(ctx, 8.0, 1)
	require.NoError(t, err)
	assert.Len(t, months, 1)
}

func TestAvgUnemploymentByDecade(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, record("1992-01-01", f(7.0), nil)))
	require.NoError(t, s.Insert(ctx, record("1995-01-01", f(5.0), nil)))
	require.NoError(t, s.Insert(ctx, record("2003-01-01", f(6.0), nil)))
	require.NoError(t, s.Insert(ctx, record("2004-01-01", nil, nil)))

	decades, err := s.AvgUnemploymentByDecade(ctx)
	require.NoError(t, err)
	require.Len(t, decades, 2)
	assert.Equal(t, "1990s", decades[0].Decade)
	assert.InDelta(t, 6.0, decades[0].AvgUnemployment, 1e-9)
	assert.Equal(t, "2000s", decades[1].Decade)
	assert.InDelta(t, 6.0, decades[1].AvgUnemployment, 1e-9, "null months are excluded from the average")
}

func TestYieldCurveInversions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, record("2000-03-01", nil, f(-0.41))))
	require.NoError(t, s.Insert(ctx, record("2006-11-01", nil, f(-0.15))))
	require.NoError(t, s.Insert(ctx, record("2019-06-01", nil, f(0.25))))

	inversions, err := s.YieldCurveInversions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, inversions, 2)
	assert.Equal(t, "2000-03-01", inversions[0].Date, "most negative spread first")
	assert.Equal(t, -0.41, inversions[0].YieldSpread10Y2Y)
}

func TestYearSnapshot(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, record("2020-02-01", f(3.5), nil)))
	require.NoError(t, s.Insert(ctx, record("2020-01-01", f(3.6), nil)))
	require.NoError(t, s.Insert(ctx, record("2019-12-01", f(3.5), nil)))

	records, err := s.YearSnapshot(ctx, 2020)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2020-01-01", records[0].Date)
	assert.Equal(t, "2020-02-01", records[1].Date)
}
