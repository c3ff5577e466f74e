package formulas

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// StdDev calculates the population standard deviation of a slice of float64 values
func StdDev(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// Median calculates the median of a slice of float64 values.
// The input slice is not modified.
func Median(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)
	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}

// PctChange calculates the percentage change from prev to curr.
// Returns nil when either operand is missing or prev is zero,
// so a missing input propagates as "undefined" instead of a fault.
func PctChange(curr, prev *float64) *float64 {
	if curr == nil || prev == nil || *prev == 0 {
		return nil
	}
	change := (*curr - *prev) / abs(*prev) * 100.0
	return &change
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
