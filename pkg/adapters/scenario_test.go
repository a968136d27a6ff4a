package adapters

import (
	"testing"

	"github.com/mhollis/unit-economics/internal/config"
	"github.com/mhollis/unit-economics/internal/metrics"
	"github.com/mhollis/unit-economics/pkg/constants"
)

func TestScenarioToReportInputsDirectLifespan(t *testing.T) {
	scenario := config.Scenario{
		Name: "Baseline",
		LTV: config.LTVConfig{
			AvgPurchaseValue:  50,
			PurchaseFrequency: 2,
			LifespanYears:     3,
		},
		CAC: config.CACConfig{
			MarketingSpend: 10000,
			NewCustomers:   500,
			Period:         "annual",
		},
	}

	in := ScenarioToReportInputs(scenario)

	if in.Name != "Baseline" {
		t.Errorf("name = %s, expected Baseline", in.Name)
	}
	if in.LTV.Lifespan.Method != metrics.LifespanDirect || in.LTV.Lifespan.Years != 3 {
		t.Errorf("unexpected lifespan source: %+v", in.LTV.Lifespan)
	}
	if in.CAC.Period != metrics.PeriodAnnual {
		t.Errorf("period = %s, expected annual", in.CAC.Period)
	}
	if in.ARPU != nil || in.Churn != nil || in.Insights != nil || in.Adjustment != nil {
		t.Error("expected optional sections to be nil when omitted")
	}
}

func TestScenarioToReportInputsChurnLifespan(t *testing.T) {
	scenario := config.Scenario{
		LTV: config.LTVConfig{
			AvgPurchaseValue:    50,
			PurchaseFrequency:   2,
			UseChurn:            true,
			MonthlyChurnPercent: 5,
		},
	}

	in := ScenarioToReportInputs(scenario)

	if in.LTV.Lifespan.Method != metrics.LifespanChurn {
		t.Fatalf("lifespan method = %s, expected churn", in.LTV.Lifespan.Method)
	}
	if in.LTV.Lifespan.MonthlyChurn != 0.05 {
		t.Errorf("monthly churn = %.4f, expected 0.05", in.LTV.Lifespan.MonthlyChurn)
	}
}

func TestScenarioToReportInputsClamping(t *testing.T) {
	scenario := config.Scenario{
		LTV: config.LTVConfig{
			AvgPurchaseValue:  -50,
			PurchaseFrequency: 2,
			LifespanYears:     -1,
		},
		CAC: config.CACConfig{
			MarketingSpend: -100,
			NewCustomers:   -5,
		},
		ARPU: &config.ARPUConfig{
			MonthlyRevenue:      100,
			MonthlyChurnPercent: 150,
			GrossMarginPercent:  -10,
		},
		Insights: &config.InsightsConfig{
			RetentionPercent: 130,
			UpsellPercent:    -10,
			ReferralPercent:  10,
		},
		Adjustment: &config.AdjustmentConfig{
			PurchaseValuePercent: 500,
			CACPercent:           -90,
			RetentionPercent:     -90,
		},
	}

	in := ScenarioToReportInputs(scenario)

	if in.LTV.AvgPurchaseValue != 0 || in.LTV.Lifespan.Years != 0 {
		t.Error("negative LTV inputs not clamped to zero")
	}
	if in.CAC.MarketingSpend != 0 || in.CAC.NewCustomers != 0 {
		t.Error("negative CAC inputs not clamped to zero")
	}
	if in.ARPU.MonthlyChurn != 1 {
		t.Errorf("churn rate = %.2f, expected clamp to 1", in.ARPU.MonthlyChurn)
	}
	if in.ARPU.GrossMargin != 0 {
		t.Errorf("gross margin = %.2f, expected clamp to 0", in.ARPU.GrossMargin)
	}
	if in.Insights.RetentionPct != 100 || in.Insights.UpsellPct != 0 {
		t.Errorf("insight rates not clamped: %+v", in.Insights)
	}
	if in.Adjustment.PurchaseValuePct != constants.PurchaseValuePctMax {
		t.Errorf("purchase adjustment = %.1f, expected %.1f",
			in.Adjustment.PurchaseValuePct, constants.PurchaseValuePctMax)
	}
	if in.Adjustment.CACPct != constants.CACPctMin {
		t.Errorf("CAC adjustment = %.1f, expected %.1f", in.Adjustment.CACPct, constants.CACPctMin)
	}
	if in.Adjustment.RetentionPct != constants.RetentionPctMin {
		t.Errorf("retention adjustment = %.1f, expected %.1f",
			in.Adjustment.RetentionPct, constants.RetentionPctMin)
	}
}

func TestPercentToRate(t *testing.T) {
	tests := []struct {
		name     string
		pct      float64
		expected float64
	}{
		{"In range", 70, 0.7},
		{"Zero", 0, 0},
		{"Full", 100, 1},
		{"Over hundred clamps to full rate", 150, 1},
		{"Negative clamps to zero", -10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := percentToRate(tt.pct); got != tt.expected {
				t.Errorf("percentToRate(%v) = %v, expected %v", tt.pct, got, tt.expected)
			}
		})
	}
}

func TestScenarioToReportInputsChurnMethodDefault(t *testing.T) {
	scenario := config.Scenario{
		Churn: &config.ChurnConfig{Method: "unknown", StartCustomers: 100, LostCustomers: 5},
	}

	in := ScenarioToReportInputs(scenario)
	if in.Churn.Method != metrics.ChurnLostCustomers {
		t.Errorf("churn method = %s, expected default lostCustomers", in.Churn.Method)
	}

	scenario.Churn.Method = "startEnd"
	in = ScenarioToReportInputs(scenario)
	if in.Churn.Method != metrics.ChurnStartEnd {
		t.Errorf("churn method = %s, expected startEnd", in.Churn.Method)
	}
}

func TestThresholdsFromConfig(t *testing.T) {
	th := ThresholdsFromConfig(config.ThresholdsConfig{})
	if th.Retention.Low != constants.RetentionLowThreshold {
		t.Errorf("retention low = %.1f, expected default %.1f",
			th.Retention.Low, constants.RetentionLowThreshold)
	}

	th = ThresholdsFromConfig(config.ThresholdsConfig{
		RetentionLow: 35,
		UpsellMid:    30,
	})
	if th.Retention.Low != 35 {
		t.Errorf("retention low = %.1f, expected override 35", th.Retention.Low)
	}
	if th.Retention.Mid != constants.RetentionMidThreshold {
		t.Errorf("retention mid = %.1f, expected default", th.Retention.Mid)
	}
	if th.Upsell.Mid != 30 {
		t.Errorf("upsell mid = %.1f, expected override 30", th.Upsell.Mid)
	}
}
