package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"macrocli/pkg/contracts/domain"
)

func seedAnalysisData(t *testing.T, router http.Handler) {
	t.Helper()

	seed := []struct {
		date         string
		unemployment *float64
		spread       *float64
	}{
		{"2009-10-01", fptr(10.0), fptr(2.2)},
		{"2020-04-01", fptr(14.7), fptr(0.43)},
		{"2000-03-01", fptr(4.0), fptr(-0.41)},
		{"2019-06-01", fptr(3.6), fptr(0.25)},
		{"2019-07-01", nil, nil},
	}
	for _, s := range seed {
		rec := domain.MonthlyRecord{
			Date: s.date,
			Fred: domain.FredFields{YieldSpread10Y2Y: s.spread},
			BLS:  domain.BLSFields{UnemploymentRateBLS: s.unemployment},
		}
		resp := doJSON(t, router, http.MethodPost, "/records", rec)
		require.Equal(t, http.StatusCreated, resp.Code)
	}
}

func fptr(v float64) *float64 { return &v }

func TestHighUnemploymentEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	seedAnalysisData(t, router)

	resp := doJSON(t, router, http.MethodGet, "/analysis/high-unemployment", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var months []domain.UnemploymentMonth
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &months))
	require.Len(t, months, 2)
	assert.Equal(t, "2020-04-01", months[0].Date)

	resp = doJSON(t, router, http.MethodGet, "/analysis/high-unemployment?threshold=12&limit=1", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &months))
	require.Len(t, months, 1)
	assert.Equal(t, 14.7, months[0].UnemploymentRateBLS)
}

func TestUnemploymentByDecadeEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	seedAnalysisData(t, router)

	resp := doJSON(t, router, http.MethodGet, "/analysis/unemployment-by-decade", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var decades []domain.DecadeAverage
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &decades))
	require.Len(t, decades, 3)
	assert.Equal(t, "2000s", decades[0].Decade)
	assert.Equal(t, "2010s", decades[1].Decade)
	assert.Equal(t, "2020s", decades[2].Decade)
}

func TestYieldInversionsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	seedAnalysisData(t, router)

	resp := doJSON(t, router, http.MethodGet, "/analysis/yield-inversions", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var inversions []domain.InversionMonth
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &inversions))
	require.Len(t, inversions, 1)
	assert.Equal(t, "2000-03-01", inversions[0].Date)
}

func TestYearSnapshotEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	seedAnalysisData(t, router)

	resp := doJSON(t, router, http.MethodGet, "/analysis/snapshot/2019", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var records []domain.MonthlyRecord
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "2019-06-01", records[0].Date)
	assert.Nil(t, records[1].BLS.UnemploymentRateBLS, "null fields survive the round trip")

	resp = doJSON(t, router, http.MethodGet, "/analysis/snapshot/not-a-year", nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestCrisisBandsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	resp := doJSON(t, router, http.MethodGet, "/analysis/crisis-bands", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var bands []domain.CrisisBand
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &bands))
	require.Len(t, bands, 3)
	assert.Equal(t, "GFC", bands[1].Name)
}
