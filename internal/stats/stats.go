// Package stats computes descriptive statistics over streaming metrics.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Summary mirrors a describe() table for one numeric column.
type Summary struct {
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Median float64
	Q75    float64
	Max    float64
}

// Describe summarizes values. An empty input yields Count 0 and NaN fields.
func Describe(values []float64) Summary {
	if len(values) == 0 {
		nan := math.NaN()

		return Summary{Mean: nan, Std: nan, Min: nan, Q25: nan, Median: nan, Q75: nan, Max: nan}
	}

	sorted := sortedCopy(values)

	return Summary{
		Count:  len(values),
		Mean:   stat.Mean(values, nil),
		Std:    stat.StdDev(values, nil),
		Min:    sorted[0],
		Q25:    quantileSorted(sorted, 0.25),
		Median: quantileSorted(sorted, 0.5),
		Q75:    quantileSorted(sorted, 0.75),
		Max:    sorted[len(sorted)-1],
	}
}

// Mean returns the arithmetic mean, or NaN for no values.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}

	return stat.Mean(values, nil)
}

// Quantile returns the p-quantile of values using linear interpolation
// between the closest ranks. p is clamped to [0, 1]; no values yields NaN.
func Quantile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}

	return quantileSorted(sortedCopy(values), p)
}

func quantileSorted(sorted []float64, p float64) float64 {
	switch {
	case p <= 0:
		return sorted[0]
	case p >= 1:
		return sorted[len(sorted)-1]
	}

	h := float64(len(sorted)-1) * p
	lo := math.Floor(h)
	i := int(lo)

	if i+1 >= len(sorted) {
		return sorted[i]
	}

	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}

func sortedCopy(values []float64) []float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return sorted
}

// Values extracts a metric from every item.
func Values[T any](items []T, metric func(T) float64) []float64 {
	out := make([]float64, len(items))
	for i, item := range items {
		out[i] = metric(item)
	}

	return out
}

// TopN returns up to n items ordered by metric, highest first.
// Ties keep their input order. n <= 0 returns all items sorted.
func TopN[T any](items []T, n int, metric func(T) float64) []T {
	sorted := make([]T, len(items))
	copy(sorted, items)

	sort.SliceStable(sorted, func(i, j int) bool {
		return metric(sorted[i]) > metric(sorted[j])
	})

	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}

	return sorted
}
