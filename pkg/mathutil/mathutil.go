// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/mhollis/unit-economics/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for making logical comparisons.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// SafeDivide divides numerator by denominator, returning fallback when the
// denominator is zero instead of producing an Inf or NaN.
func SafeDivide(numerator, denominator, fallback float64) float64 {
	if denominator == 0 {
		return fallback
	}
	return numerator / denominator
}

// AdjustByPercent scales a value by a signed percentage delta, e.g.
// AdjustByPercent(200, -10) == 180.
func AdjustByPercent(value, deltaPct float64) float64 {
	return value * (1 + deltaPct/constants.PercentageMultiplier)
}

// Clamp restricts a value to the inclusive range [min, max].
func Clamp(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
