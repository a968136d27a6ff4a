// Package adapters provides adapter implementations between the
// configuration structures and the metrics engine input types.
package adapters

import (
	"github.com/mhollis/unit-economics/internal/config"
	"github.com/mhollis/unit-economics/internal/metrics"
	"github.com/mhollis/unit-economics/internal/report"
	"github.com/mhollis/unit-economics/pkg/constants"
	"github.com/mhollis/unit-economics/pkg/validation"
)

// ScenarioToReportInputs converts a configured scenario into engine inputs.
// This is the range-clamp layer: negative amounts are floored at zero and
// percentages are clamped before anything reaches the engine, which assumes
// validated inputs.
func ScenarioToReportInputs(s config.Scenario) report.Inputs {
	in := report.Inputs{
		Name: s.Name,
		LTV: metrics.LTVInputs{
			AvgPurchaseValue:  validation.ClampNonNegative(s.LTV.AvgPurchaseValue),
			PurchaseFrequency: validation.ClampNonNegative(s.LTV.PurchaseFrequency),
			Lifespan:          lifespanSource(s.LTV),
		},
		CAC: metrics.CACInputs{
			MarketingSpend: validation.ClampNonNegative(s.CAC.MarketingSpend),
			NewCustomers:   validation.ClampNonNegative(s.CAC.NewCustomers),
			Period:         cacPeriod(s.CAC.Period),
		},
	}

	if s.ARPU != nil {
		in.ARPU = &metrics.ARPUInputs{
			ARPU:         validation.ClampNonNegative(s.ARPU.MonthlyRevenue),
			MonthlyChurn: percentToRate(s.ARPU.MonthlyChurnPercent),
			GrossMargin:  percentToRate(s.ARPU.GrossMarginPercent),
		}
	}

	if s.CAC.Breakdown != nil {
		in.Breakdown = &report.SpendBreakdown{
			AdSpend:  validation.ClampNonNegative(s.CAC.Breakdown.AdSpend),
			TeamCost: validation.ClampNonNegative(s.CAC.Breakdown.TeamCost),
			ToolCost: validation.ClampNonNegative(s.CAC.Breakdown.ToolCost),
		}
	}

	if s.Churn != nil {
		in.Churn = &metrics.ChurnInputs{
			Method:         churnMethod(s.Churn.Method),
			StartCustomers: validation.ClampNonNegative(s.Churn.StartCustomers),
			LostCustomers:  validation.ClampNonNegative(s.Churn.LostCustomers),
			EndCustomers:   validation.ClampNonNegative(s.Churn.EndCustomers),
		}
	}

	if s.Insights != nil {
		in.Insights = &report.InsightRates{
			RetentionPct: validation.ClampPercent(s.Insights.RetentionPercent),
			UpsellPct:    validation.ClampPercent(s.Insights.UpsellPercent),
			ReferralPct:  validation.ClampPercent(s.Insights.ReferralPercent),
		}
	}

	if s.Adjustment != nil {
		in.Adjustment = &metrics.ScenarioAdjustment{
			PurchaseValuePct: validation.ClampPurchaseValuePct(s.Adjustment.PurchaseValuePercent),
			CACPct:           validation.ClampCACPct(s.Adjustment.CACPercent),
			RetentionPct:     validation.ClampRetentionPct(s.Adjustment.RetentionPercent),
		}
	}

	return in
}

// ThresholdsFromConfig maps threshold overrides onto the defaults. Zero
// values keep the default cutoff.
func ThresholdsFromConfig(tc config.ThresholdsConfig) report.Thresholds {
	th := report.DefaultThresholds()
	if tc.RetentionLow != 0 {
		th.Retention.Low = tc.RetentionLow
	}
	if tc.RetentionMid != 0 {
		th.Retention.Mid = tc.RetentionMid
	}
	if tc.UpsellLow != 0 {
		th.Upsell.Low = tc.UpsellLow
	}
	if tc.UpsellMid != 0 {
		th.Upsell.Mid = tc.UpsellMid
	}
	if tc.ReferralLow != 0 {
		th.Referral.Low = tc.ReferralLow
	}
	if tc.ReferralMid != 0 {
		th.Referral.Mid = tc.ReferralMid
	}
	return th
}

func lifespanSource(ltv config.LTVConfig) metrics.LifespanSource {
	if ltv.UseChurn {
		return metrics.LifespanSource{
			Method:       metrics.LifespanChurn,
			MonthlyChurn: percentToRate(ltv.MonthlyChurnPercent),
		}
	}
	return metrics.LifespanSource{
		Method: metrics.LifespanDirect,
		Years:  validation.ClampNonNegative(ltv.LifespanYears),
	}
}

func cacPeriod(period string) metrics.Period {
	if period == string(metrics.PeriodAnnual) {
		return metrics.PeriodAnnual
	}
	return metrics.PeriodMonthly
}

func churnMethod(method string) metrics.ChurnMethod {
	if method == string(metrics.ChurnStartEnd) {
		return metrics.ChurnStartEnd
	}
	return metrics.ChurnLostCustomers
}

func percentToRate(pct float64) float64 {
	return validation.ClampRate(pct / constants.PercentageMultiplier)
}
