package panel

import (
	"iter"
	"time"
)

// DateFormat is the key format for every monthly observation in the panel.
const DateFormat = "2006-01-02"

// Months yields the first day of each calendar month between start and end
// inclusive, ascending. Both bounds are normalized to day 1 before iteration,
// so callers may pass any day of the month. The sequence is empty when end
// precedes start, and can be ranged over more than once.
func Months(start, end time.Time) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		y, m := start.Year(), start.Month()
		endY, endM := end.Year(), end.Month()
		for y < endY || (y == endY && m <= endM) {
			if !yield(time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)) {
				return
			}
			if m == time.December {
				y++
				m = time.January
			} else {
				m++
			}
		}
	}
}

// MonthKeys collects the axis as formatted date strings, the keys used by
// every SeriesMap and MonthlyRecord.
func MonthKeys(start, end time.Time) []string {
	var keys []string
	for d := range Months(start, end) {
		keys = append(keys, d.Format(DateFormat))
	}
	return keys
}
