package panel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"macrocli/internal/sources"
)

func TestNormalizeFred(t *testing.T) {
	observations := []sources.FredObservation{
		{Date: "1990-01-01", Value: "5.4"},
		{Date: "1990-02-01", Value: "."},
		{Date: "1990-03-01", Value: ""},
		{Date: "1990-04-01", Value: "not-a-number"},
		{Date: "", Value: "9.9"},
	}

	got := NormalizeFred(observations)

	require.Len(t, got, 4)
	require.NotNil(t, got["1990-01-01"])
	assert.Equal(t, 5.4, *got["1990-01-01"])
	assert.Nil(t, got["1990-02-01"], "the '.' sentinel is absent, not zero")
	assert.Nil(t, got["1990-03-01"])
	assert.Nil(t, got["1990-04-01"], "unparsable values degrade to absent")
}

func TestNormalizeBLS(t *testing.T) {
	series := sources.BLSSeries{
		SeriesID: "LNS14000000",
		Data: []sources.BLSDataPoint{
			{Year: "1995", Period: "M01", Value: "5.6"},
			{Year: "1995", Period: "M12", Value: "5.5"},
			{Year: "1995", Period: "M13", Value: "5.6"},
			{Year: "1995", Period: "A01", Value: "5.6"},
			{Year: "1995", Period: "M02", Value: "-"},
			{Year: "", Period: "M03", Value: "5.7"},
		},
	}

	got := NormalizeBLS(series)

	require.Len(t, got, 3)
	require.NotNil(t, got["1995-01-01"])
	assert.Equal(t, 5.6, *got["1995-01-01"])
	require.NotNil(t, got["1995-12-01"])
	assert.Equal(t, 5.5, *got["1995-12-01"])
	assert.Nil(t, got["1995-02-01"], "unparsable value is absent for that period")
	_, hasAnnual := got["1995-13-01"]
	assert.False(t, hasAnnual, "M13 annual average must be excluded")
}

func TestSeriesMapMerge(t *testing.T) {
	base := SeriesMap{
		"2004-12-01": Float(5.4),
		"2005-01-01": Float(5.2),
	}
	later := SeriesMap{
		"2005-01-01": Float(5.3),
		"2005-02-01": Float(5.4),
	}

	base.Merge(later)

	require.Len(t, base, 3)
	assert.Equal(t, 5.3, *base["2005-01-01"], "later chunk wins on collision")
	assert.Equal(t, 5.4, *base["2004-12-01"])
}

func TestYearChunks(t *testing.T) {
	tests := []struct {
		name      string
		startYear int
		endYear   int
		size      int
		want      [][2]int
	}{
		{
			name:      "1985 to 2024 in twenty-year chunks",
			startYear: 1985,
			endYear:   2024,
			size:      20,
			want:      [][2]int{{1985, 2004}, {2005, 2024}},
		},
		{
			name:      "partial final chunk",
			startYear: 1985,
			endYear:   2026,
			size:      20,
			want:      [][2]int{{1985, 2004}, {2005, 2024}, {2025, 2026}},
		},
		{
			name:      "range smaller than chunk",
			startYear: 2020,
			endYear:   2022,
			size:      20,
			want:      [][2]int{{2020, 2022}},
		},
		{
			name:      "single year",
			startYear: 2020,
			endYear:   2020,
			size:      20,
			want:      [][2]int{{2020, 2020}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := YearChunks(tt.startYear, tt.endYear, tt.size)
			assert.Equal(t, tt.want, got)

			// Chunks are disjoint and consecutive by construction.
			for i := 1; i < len(got); i++ {
				assert.Equal(t, got[i-1][1]+1, got[i][0])
			}
		})
	}
}
