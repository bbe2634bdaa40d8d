package panel

import (
	"strings"

	"macrocli/internal/sources"
)

// NormalizeFred maps raw FRED observations onto the monthly axis. FRED
// already reports first-of-month dates, so this is a key-for-key copy with
// the "." sentinel and unparsable values degrading to absent.
func NormalizeFred(observations []sources.FredObservation) SeriesMap {
	out := make(SeriesMap, len(observations))
	for _, obs := range observations {
		if obs.Date == "" {
			continue
		}
		out[obs.Date] = ParseValue(obs.Value)
	}
	return out
}

// NormalizeBLS maps one BLS series onto the monthly axis. BLS reports a year
// plus a period code: M01 through M12 are calendar months, M13 is the annual
// average and is excluded. Keys become YYYY-MM-01 date strings.
func NormalizeBLS(series sources.BLSSeries) SeriesMap {
	out := make(SeriesMap, len(series.Data))
	for _, item := range series.Data {
		if item.Year == "" {
			continue
		}
		if !strings.HasPrefix(item.Period, "M") || item.Period == "M13" || len(item.Period) != 3 {
			continue
		}
		date := item.Year + "-" + item.Period[1:] + "-01"
		out[date] = ParseValue(item.Value)
	}
	return out
}

// YearChunks splits [startYear, endYear] into consecutive spans of at most
// size years, ascending. BLS callers use this to stay under the per-request
// year cap; chunk maps merged in this order give later chunks precedence at
// any boundary collision.
func YearChunks(startYear, endYear, size int) [][2]int {
	var chunks [][2]int
	if size < 1 {
		return chunks
	}
	for year := startYear; year <= endYear; year += size {
		chunkEnd := year + size - 1
		if chunkEnd > endYear {
			chunkEnd = endYear
		}
		chunks = append(chunks, [2]int{year, chunkEnd})
	}
	return chunks
}
