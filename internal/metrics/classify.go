package metrics

import (
	"math"

	"github.com/mhollis/unit-economics/pkg/constants"
)

// RatioTier is the health tier of an LTV/CAC ratio.
type RatioTier int

const (
	RatioCritical RatioTier = iota
	RatioNeedsWork
	RatioHealthy
	RatioExcellent
)

// String returns the display name for a ratio tier.
func (t RatioTier) String() string {
	switch t {
	case RatioCritical:
		return "Critical"
	case RatioNeedsWork:
		return "Needs Work"
	case RatioHealthy:
		return "Healthy"
	case RatioExcellent:
		return "Excellent"
	default:
		return "Unknown"
	}
}

// ClassifyRatio maps an LTV/CAC ratio onto its health tier. The boundaries
// are fixed business constants; an infinite ratio classifies as Excellent.
func ClassifyRatio(ratio float64) RatioTier {
	switch {
	case ratio < constants.RatioCriticalMax:
		return RatioCritical
	case ratio < constants.RatioNeedsWorkMax:
		return RatioNeedsWork
	case ratio < constants.RatioHealthyMax:
		return RatioHealthy
	default:
		return RatioExcellent
	}
}

// RateBand is the classification of a percentage rate against two cutoffs.
type RateBand int

const (
	RateLow RateBand = iota
	RateAverage
	RateStrong
)

// String returns the display name for a rate band.
func (b RateBand) String() string {
	switch b {
	case RateLow:
		return "Low"
	case RateAverage:
		return "Average"
	case RateStrong:
		return "Strong"
	default:
		return "Unknown"
	}
}

// ClassifyRate is a generic threshold classifier: rates below lowThreshold
// are Low, rates below midThreshold are Average, everything else is Strong.
// Reused for retention, upsell, and referral rates with different cutoffs.
func ClassifyRate(rate, lowThreshold, midThreshold float64) RateBand {
	switch {
	case rate < lowThreshold:
		return RateLow
	case rate < midThreshold:
		return RateAverage
	default:
		return RateStrong
	}
}

// PaybackBand is the severity band of a CAC payback period.
type PaybackBand int

const (
	PaybackUnknown PaybackBand = iota
	PaybackFast
	PaybackModerate
	PaybackSlow
	PaybackPoor
)

// String returns the display name for a payback band.
func (b PaybackBand) String() string {
	switch b {
	case PaybackFast:
		return "Fast"
	case PaybackModerate:
		return "Moderate"
	case PaybackSlow:
		return "Slow"
	case PaybackPoor:
		return "Poor"
	default:
		return "Unknown"
	}
}

// ClassifyPayback maps a payback period in months onto its severity band.
// The NaN sentinel from PaybackMonths classifies as Unknown.
func ClassifyPayback(months float64) PaybackBand {
	switch {
	case math.IsNaN(months):
		return PaybackUnknown
	case months < constants.PaybackFastMax:
		return PaybackFast
	case months < constants.PaybackModerateMax:
		return PaybackModerate
	case months < constants.PaybackSlowMax:
		return PaybackSlow
	default:
		return PaybackPoor
	}
}
