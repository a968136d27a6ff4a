// Package format provides display formatting for metric values, including
// the sentinel renderings for unbounded or undefined results.
package format

import (
	"fmt"
	"math"
	"strings"
)

// Infinity is the display string for unbounded values (e.g. the LTV/CAC
// ratio when CAC is zero).
const Infinity = "∞"

// NotApplicable is the display string for undefined values (e.g. payback
// period when monthly revenue is zero).
const NotApplicable = "N/A"

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	formatted := formatPositiveCurrency(math.Abs(amount))
	if amount < 0 {
		return "-$" + formatted
	}
	return "$" + formatted
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
	}
	formatted := formatPositiveCurrency(math.Abs(amount))
	return sign + formatted
}

// Percent renders a fractional rate (0.05) as a percent string ("5.0%").
func Percent(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate*100)
}

// SignedPercent renders a percentage value with an explicit sign ("+10.0%").
func SignedPercent(pct float64) string {
	return fmt.Sprintf("%+.1f%%", pct)
}

// Ratio renders an LTV/CAC ratio, using the Infinity sentinel for an
// unbounded ratio.
func Ratio(ratio float64) string {
	if math.IsInf(ratio, 1) {
		return Infinity
	}
	return fmt.Sprintf("%.2f", ratio)
}

// Months renders a payback period, using the NotApplicable sentinel for the
// NaN result of an undefined payback.
func Months(months float64) string {
	if math.IsNaN(months) {
		return NotApplicable
	}
	return fmt.Sprintf("%.1f months", months)
}

// Years renders a customer lifespan, using the Infinity sentinel when churn
// is zero and customers never leave.
func Years(years float64) string {
	if math.IsInf(years, 1) {
		return Infinity
	}
	return fmt.Sprintf("%.1f years", years)
}

func formatPositiveCurrency(value float64) string {
	formatted := fmt.Sprintf("%.2f", value)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + "." + decPart
}
