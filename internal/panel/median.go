package panel

import "sort"

// WeightedMedian computes the weighted median of parallel value/weight
// slices: sort pairs ascending by value, then walk them accumulating weight
// until the running sum first reaches half the total. Pairs with
// non-positive weight are excluded up front. An empty input (after
// exclusion), mismatched slice lengths beyond the shorter one, or a
// non-positive total weight all yield absent rather than zero. If rounding
// keeps the accumulator from ever reaching the cutoff, the largest value is
// returned.
func WeightedMedian(values, weights []float64) *float64 {
	n := len(values)
	if len(weights) < n {
		n = len(weights)
	}

	type pair struct {
		value  float64
		weight float64
	}
	pairs := make([]pair, 0, n)
	for i := 0; i < n; i++ {
		if weights[i] <= 0 {
			continue
		}
		pairs = append(pairs, pair{value: values[i], weight: weights[i]})
	}
	if len(pairs) == 0 {
		return nil
	}

	sort.Slice(pairs, func(i, j int) bool { return pairs[i].value < pairs[j].value })

	var total float64
	for _, p := range pairs {
		total += p.weight
	}
	if total <= 0 {
		return nil
	}

	cutoff := total / 2.0
	var running float64
	for _, p := range pairs {
		running += p.weight
		if running >= cutoff {
			return Float(p.value)
		}
	}
	return Float(pairs[len(pairs)-1].value)
}
