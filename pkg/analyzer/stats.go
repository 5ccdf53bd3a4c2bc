package analyzer

import (
	"math"
	"sort"

	"github.com/influxdata/tdigest"
)

// Round3 rounds to 3 decimal places, the precision used for reported means.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// Mean returns the arithmetic mean rounded to 3 decimal places.
// Returns 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return Round3(sum / float64(len(values)))
}

// Median returns the standard median: the single middle value for odd
// counts, the mean of the two middle values for even counts.
// Returns 0 for an empty slice. The input is not modified.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// Max returns the maximum value, or 0 for an empty slice.
func Max(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// Percentiles returns approximate quantiles of values at the given
// cut points (each in [0,1]), via a t-digest.
func Percentiles(values []float64, quantiles ...float64) []float64 {
	out := make([]float64, len(quantiles))
	if len(values) == 0 {
		return out
	}

	td := tdigest.NewWithCompression(100)
	for _, v := range values {
		td.Add(v, 1)
	}
	for i, q := range quantiles {
		out[i] = td.Quantile(q)
	}
	return out
}
