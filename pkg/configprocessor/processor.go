// Package configprocessor provides shared configuration processing utilities.
package configprocessor

import (
	"fmt"

	"github.com/mhollis/unit-economics/internal/metrics"
	"github.com/mhollis/unit-economics/pkg/constants"
	"github.com/mhollis/unit-economics/pkg/mathutil"
)

// AmountField is a named non-negative input value to validate.
type AmountField struct {
	Name  string
	Value float64
}

// PercentField is a named percentage input expected to fall in [0,100].
type PercentField struct {
	Name  string
	Value float64
}

// ScenarioInfo represents scenario configuration information
type ScenarioInfo struct {
	Name           string
	Active         bool
	Period         string
	ChurnMethod    string
	MarketingSpend float64
	HasBreakdown   bool
	BreakdownTotal float64
	Amounts        []AmountField
	Percents       []PercentField
}

// Processor handles configuration processing and validation
type Processor struct{}

// NewProcessor creates a new configuration processor
func NewProcessor() *Processor {
	return &Processor{}
}

// ValidateScenarios validates the scenario configurations and returns warnings.
// Warnings are advisory: out-of-range values are clamped downstream, so
// nothing here blocks an evaluation.
func (p *Processor) ValidateScenarios(scenarios []ScenarioInfo) []string {
	var warnings []string

	if len(scenarios) == 0 {
		warnings = append(warnings, "configuration contains no scenarios")
		return warnings
	}

	active := 0
	seen := make(map[string]bool)
	for _, scenario := range scenarios {
		if scenario.Active {
			active++
		}

		if scenario.Name == "" {
			warnings = append(warnings, "scenario with empty name")
		} else if seen[scenario.Name] {
			warnings = append(warnings, fmt.Sprintf("duplicate scenario name '%s'", scenario.Name))
		}
		seen[scenario.Name] = true

		if scenario.Period != "" &&
			scenario.Period != string(metrics.PeriodMonthly) &&
			scenario.Period != string(metrics.PeriodAnnual) {
			warnings = append(warnings, fmt.Sprintf(
				"scenario '%s' has unknown CAC period '%s'; defaulting to monthly",
				scenario.Name, scenario.Period))
		}

		if scenario.ChurnMethod != "" &&
			scenario.ChurnMethod != string(metrics.ChurnLostCustomers) &&
			scenario.ChurnMethod != string(metrics.ChurnStartEnd) {
			warnings = append(warnings, fmt.Sprintf(
				"scenario '%s' has unknown churn method '%s'; defaulting to %s",
				scenario.Name, scenario.ChurnMethod, metrics.ChurnLostCustomers))
		}

		breakdownTotal := mathutil.Round(scenario.BreakdownTotal)
		if scenario.HasBreakdown && breakdownTotal > scenario.MarketingSpend &&
			!mathutil.WithinTolerance(breakdownTotal, scenario.MarketingSpend, constants.CurrencyTolerance) {
			warnings = append(warnings, fmt.Sprintf(
				"scenario '%s' marketing spend breakdown (%.2f) exceeds total spend (%.2f)",
				scenario.Name, scenario.BreakdownTotal, scenario.MarketingSpend))
		}

		for _, amount := range scenario.Amounts {
			if amount.Value < 0 {
				warnings = append(warnings, fmt.Sprintf(
					"scenario '%s' has negative %s (%.2f); clamping to 0",
					scenario.Name, amount.Name, amount.Value))
			}
		}

		for _, percent := range scenario.Percents {
			if percent.Value < 0 || percent.Value > constants.PercentageMultiplier {
				warnings = append(warnings, fmt.Sprintf(
					"scenario '%s' has out-of-range %s (%.2f); clamping to [0,100]",
					scenario.Name, percent.Name, percent.Value))
			}
		}
	}

	if active == 0 {
		warnings = append(warnings, "no active scenarios; nothing will be evaluated")
	}

	return warnings
}
