// Package testutil provides common utility functions for testing.
package testutil

import (
	"math"

	"github.com/mhollis/unit-economics/internal/report"
)

// FindReport finds a report by scenario name in the results slice.
// Returns a pointer to the report if found, nil otherwise.
func FindReport(results []report.Report, name string) *report.Report {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}

// ApproxEqual reports whether two values are within tolerance of each other.
// Infinities compare equal to each other and NaNs compare equal to each
// other, so sentinel results can be asserted with the same helper.
func ApproxEqual(a, b, tolerance float64) bool {
	if math.IsInf(a, 1) || math.IsInf(b, 1) {
		return math.IsInf(a, 1) && math.IsInf(b, 1)
	}
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return math.Abs(a-b) <= tolerance
}
