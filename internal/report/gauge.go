package report

import (
	"math"

	"github.com/mhollis/unit-economics/pkg/constants"
)

// GaugeBand is one colored segment of the gauge axis.
type GaugeBand struct {
	From  float64 `json:"from"`
	To    float64 `json:"to"`
	Color string  `json:"color"`
}

// GaugeSpec is a renderer-agnostic description of the LTV/CAC ratio dial.
// The rendering collaborator (web UI) draws it; the engine only decides the
// geometry.
type GaugeSpec struct {
	Title     string      `json:"title"`
	Value     float64     `json:"value"`
	Min       float64     `json:"min"`
	Max       float64     `json:"max"`
	Bands     []GaugeBand `json:"bands"`
	Threshold float64     `json:"threshold"`
}

// BuildGauge produces the gauge spec for an LTV/CAC ratio. The axis runs 0-5
// with the standard tier bands; values beyond the axis (including the
// unbounded ratio) pin the needle to the maximum.
func BuildGauge(ratio float64) GaugeSpec {
	value := ratio
	if math.IsInf(value, 1) || value > constants.GaugeMax {
		value = constants.GaugeMax
	}
	if value < constants.GaugeMin || math.IsNaN(value) {
		value = constants.GaugeMin
	}

	return GaugeSpec{
		Title: "LTV/CAC Ratio",
		Value: value,
		Min:   constants.GaugeMin,
		Max:   constants.GaugeMax,
		Bands: []GaugeBand{
			{From: constants.GaugeMin, To: constants.RatioCriticalMax, Color: constants.GaugeCriticalColor},
			{From: constants.RatioCriticalMax, To: constants.RatioNeedsWorkMax, Color: constants.GaugeWarningColor},
			{From: constants.RatioNeedsWorkMax, To: constants.GaugeMax, Color: constants.GaugeHealthyColor},
		},
		Threshold: value,
	}
}
