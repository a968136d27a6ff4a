// Package constants provides shared constants for the unit-economics application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)

// LTV/CAC ratio tier boundaries. Below RatioCriticalMax the business loses
// money on every customer acquired.
const (
	RatioCriticalMax  = 1.0
	RatioNeedsWorkMax = 3.0
	RatioHealthyMax   = 5.0
)

// CAC payback period bands in months.
const (
	PaybackFastMax     = 3.0
	PaybackModerateMax = 6.0
	PaybackSlowMax     = 12.0
)

// Default classification thresholds (percent) for the rate-based insights.
// Each metric classifies as Low below the first cutoff, Average below the
// second, and Strong at or above it.
const (
	RetentionLowThreshold = 30.0
	RetentionMidThreshold = 50.0

	UpsellLowThreshold = 15.0
	UpsellMidThreshold = 25.0

	ReferralLowThreshold = 5.0
	ReferralMidThreshold = 15.0
)

// Scenario adjustment slider bounds (percent).
const (
	PurchaseValuePctMin = -50.0
	PurchaseValuePctMax = 100.0

	CACPctMin = -50.0
	CACPctMax = 50.0

	RetentionPctMin = -50.0
	RetentionPctMax = 100.0
)

// Gauge chart constants for the LTV/CAC ratio dial.
const (
	GaugeMin = 0.0
	GaugeMax = 5.0

	GaugeCriticalColor = "lightcoral"
	GaugeWarningColor  = "khaki"
	GaugeHealthyColor  = "lightgreen"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultMaxRequestSizeBytes is the default maximum request body size (256 KB)
	DefaultMaxRequestSizeBytes int64 = 256 * 1024
)
