package panel

import (
	"strconv"
	"strings"
)

// SeriesMap holds one source series on the monthly axis, keyed by
// YYYY-MM-01 date strings. A nil value is an observed-but-absent period;
// a missing key means the source reported nothing for that period at all.
// Both read back as absent through Lookup.
type SeriesMap map[string]*float64

// AnnualMap holds an annual series keyed by calendar year.
type AnnualMap map[int]*float64

// Lookup returns the series value for a period, nil when the period is
// missing or explicitly absent.
func (s SeriesMap) Lookup(date string) *float64 {
	return s[date]
}

// Merge overlays other onto s. Keys present in both are taken from other,
// which gives chunked sources their latest-chunk-wins semantics.
func (s SeriesMap) Merge(other SeriesMap) {
	for k, v := range other {
		s[k] = v
	}
}

// ParseValue converts an upstream textual observation into a value pointer.
// Empty strings and the FRED missing-data sentinel "." map to absent, as does
// any string that fails to parse as a float. Absence is never an error here;
// a bad cell degrades to nil for that one observation.
func ParseValue(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "." {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}

// Float is a convenience for literal values in tests and fallbacks.
func Float(v float64) *float64 {
	return &v
}
