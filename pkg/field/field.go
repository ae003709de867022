// Package field holds small scalar-field utilities: value-range scanning
// and iso-value spacing. A scalar field is a plain []float64 with one
// entry per mesh vertex; this package never interprets its meaning.
package field

import "math"

// Range returns the minimum and maximum of values in one pass. An empty
// slice returns (0, 0).
func Range(values []float64) (min, max float64) {
	if len(values) == 0 {
		return 0, 0
	}
	min, max = values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// SpacedValues returns n evenly spaced iso-values strictly inside
// (min, max), in ascending order. These are the default contour
// thresholds when the caller supplies none: n contours split the range
// into n+1 bands.
func SpacedValues(min, max float64, n int) []float64 {
	if n <= 0 || max <= min {
		return nil
	}
	step := (max - min) / float64(n+1)
	out := make([]float64, n)
	for i := range out {
		out[i] = min + step*float64(i+1)
	}
	return out
}

// Ascending reports whether values are sorted in ascending order.
// NaN anywhere fails the check.
func Ascending(values []float64) bool {
	for i, v := range values {
		if math.IsNaN(v) {
			return false
		}
		if i > 0 && v < values[i-1] {
			return false
		}
	}
	return true
}
