// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/mhollis/unit-economics/pkg/constants"
	"github.com/mhollis/unit-economics/pkg/mathutil"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	if format != constants.OutputFormatPretty && format != constants.OutputFormatCSV {
		return fmt.Errorf("expected output format of %s or %s, got %s",
			constants.OutputFormatPretty, constants.OutputFormatCSV, format)
	}
	return nil
}

// ClampNonNegative floors a value at zero. The metrics engine assumes
// non-negative inputs; this is the range clamp applied by the collection
// layer before values reach it.
func ClampNonNegative(val float64) float64 {
	if val < 0 {
		return 0
	}
	return val
}

// ClampPercent restricts a percentage to [0, 100].
func ClampPercent(val float64) float64 {
	return mathutil.Clamp(val, 0, constants.PercentageMultiplier)
}

// ClampRate restricts a fractional rate to [0, 1].
func ClampRate(val float64) float64 {
	return mathutil.Clamp(val, 0, 1)
}

// ClampPurchaseValuePct restricts a purchase value adjustment to its slider bounds.
func ClampPurchaseValuePct(val float64) float64 {
	return mathutil.Clamp(val, constants.PurchaseValuePctMin, constants.PurchaseValuePctMax)
}

// ClampCACPct restricts a CAC adjustment to its slider bounds.
func ClampCACPct(val float64) float64 {
	return mathutil.Clamp(val, constants.CACPctMin, constants.CACPctMax)
}

// ClampRetentionPct restricts a retention adjustment to its slider bounds.
func ClampRetentionPct(val float64) float64 {
	return mathutil.Clamp(val, constants.RetentionPctMin, constants.RetentionPctMax)
}
