package store

import (
	"context"
	"fmt"

	"macrocli/pkg/contracts/domain"
)

// HighUnemploymentMonths returns months where the BLS unemployment rate
// exceeded threshold, worst first.
func (s *Store) HighUnemploymentMonths(ctx context.Context, threshold float64, limit int) ([]domain.UnemploymentMonth, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date, json_extract(doc, '$.bls.unemployment_rate_bls') AS rate
		FROM records
		WHERE json_extract(doc, '$.bls.unemployment_rate_bls') IS NOT NULL
		  AND json_extract(doc, '$.bls.unemployment_rate_bls') > ?
		ORDER BY rate DESC, date
		LIMIT ?`, threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("query high unemployment months: %w", err)
	}
	defer rows.Close()

	var out []domain.UnemploymentMonth
	for rows.Next() {
		var m domain.UnemploymentMonth
		if err := rows.Scan(&m.Date, &m.UnemploymentRateBLS); err != nil {
			return nil, fmt.Errorf("scan unemployment month: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// AvgUnemploymentByDecade returns the mean BLS unemployment rate per decade,
// ascending. The decade key takes the first three characters of the date
// plus "0s", so 1994-05-01 lands in "1990s".
func (s *Store) AvgUnemploymentByDecade(ctx context.Context) ([]domain.DecadeAverage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT substr(date, 1, 3) || '0s' AS decade,
		       AVG(json_extract(doc, '$.bls.unemployment_rate_bls')) AS avg_rate
		FROM records
		WHERE json_extract(doc, '$.bls.unemployment_rate_bls') IS NOT NULL
		GROUP BY decade
		ORDER BY decade`)
	if err != nil {
		return nil, fmt.Errorf("query unemployment by decade: %w", err)
	}
	defer rows.Close()

	var out []domain.DecadeAverage
	for rows.Next() {
		var d domain.DecadeAverage
		if err := rows.Scan(&d.Decade, &d.AvgUnemployment); err != nil {
			return nil, fmt.Errorf("scan decade average: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// YieldCurveInversions returns months with a negative 10Y-2Y spread, most
// inverted first.
func (s *Store) YieldCurveInversions(ctx context.Context, limit int) ([]domain.InversionMonth, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date, json_extract(doc, '$.fred.yield_spread_10y_2y') AS spread
		FROM records
		WHERE json_extract(doc, '$.fred.yield_spread_10y_2y') IS NOT NULL
		  AND json_extract(doc, '$.fred.yield_spread_10y_2y') < 0
		ORDER BY spread, date
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query yield curve inversions: %w", err)
	}
	defer rows.Close()

	var out []domain.InversionMonth
	for rows.Next() {
		var m domain.InversionMonth
		if err := rows.Scan(&m.Date, &m.YieldSpread10Y2Y); err != nil {
			return nil, fmt.Errorf("scan inversion month: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// YearSnapshot returns all monthly records for one year, ascending by date.
func (s *Store) YearSnapshot(ctx context.Context, year int) ([]domain.MonthlyRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT doc FROM records WHERE date LIKE ? ORDER BY date`,
		fmt.Sprintf("%04d-%%", year))
	if err != nil {
		return nil, fmt.Errorf("query year snapshot: %w", err)
	}
	defer rows.Close()
	return collectRecords(rows)
}
