package report

import (
	"math"
	"strings"
	"testing"

	"github.com/mhollis/unit-economics/internal/metrics"
	"go.uber.org/zap"
)

func standardInputs() Inputs {
	return Inputs{
		Name: "Baseline",
		LTV: metrics.LTVInputs{
			AvgPurchaseValue:  50,
			PurchaseFrequency: 2,
			Lifespan:          metrics.LifespanSource{Method: metrics.LifespanDirect, Years: 3},
		},
		CAC: metrics.CACInputs{
			MarketingSpend: 10000,
			NewCustomers:   500,
			Period:         metrics.PeriodMonthly,
		},
	}
}

func TestBuildStandardReport(t *testing.T) {
	r := Build(zap.NewNop(), standardInputs(), DefaultThresholds())

	if r.Name != "Baseline" {
		t.Errorf("name = %s, expected Baseline", r.Name)
	}
	if r.LTV != 300 {
		t.Errorf("LTV = %.2f, expected 300", r.LTV)
	}
	if r.CAC != 20 {
		t.Errorf("CAC = %.2f, expected 20", r.CAC)
	}
	if r.Ratio != 15 {
		t.Errorf("ratio = %.2f, expected 15", r.Ratio)
	}
	if r.Tier != metrics.RatioExcellent {
		t.Errorf("tier = %s, expected Excellent", r.Tier)
	}
	if r.Status == "" {
		t.Error("expected a status string")
	}
	if len(r.Actions) == 0 {
		t.Error("expected recommended actions")
	}

	// 100/year per customer -> 8.33/month; payback 20/8.33 = 2.4 months.
	if math.Abs(r.MonthlyRevenue-8.3333) > 1e-3 {
		t.Errorf("monthly revenue = %.4f, expected 8.3333", r.MonthlyRevenue)
	}
	if math.Abs(r.PaybackMonths-2.4) > 1e-3 {
		t.Errorf("payback = %.4f, expected 2.4", r.PaybackMonths)
	}
	if r.PaybackBand != metrics.PaybackFast {
		t.Errorf("payback band = %s, expected Fast", r.PaybackBand)
	}
	if r.AnnualRevenue != 100 {
		t.Errorf("annual revenue = %.2f, expected 100", r.AnnualRevenue)
	}
}

func TestBuildChurnDerivedLifespan(t *testing.T) {
	in := standardInputs()
	in.LTV.Lifespan = metrics.LifespanSource{Method: metrics.LifespanChurn, MonthlyChurn: 0.05}

	r := Build(nil, in, DefaultThresholds())

	if math.Abs(r.LifespanYears-1.6667) > 1e-3 {
		t.Errorf("lifespan = %.4f, expected 1.6667", r.LifespanYears)
	}
	// 50 * 2 * 1.6667 = 166.67
	if math.Abs(r.LTV-166.6667) > 1e-2 {
		t.Errorf("LTV = %.4f, expected 166.67", r.LTV)
	}
}

func TestBuildZeroChurnLifespan(t *testing.T) {
	in := standardInputs()
	in.LTV.Lifespan = metrics.LifespanSource{Method: metrics.LifespanChurn, MonthlyChurn: 0}

	r := Build(nil, in, DefaultThresholds())

	if !math.IsInf(r.LifespanYears, 1) {
		t.Errorf("lifespan = %.2f, expected +Inf", r.LifespanYears)
	}
	if !math.IsInf(r.LTV, 1) {
		t.Errorf("LTV = %.2f, expected +Inf", r.LTV)
	}
	if r.Tier != metrics.RatioExcellent {
		t.Errorf("tier = %s, expected Excellent for unbounded LTV", r.Tier)
	}

	// Zero revenue with zero churn must not surface a NaN.
	in.LTV.AvgPurchaseValue = 0
	r = Build(nil, in, DefaultThresholds())
	if r.LTV != 0 {
		t.Errorf("LTV = %.2f, expected 0 for zero revenue", r.LTV)
	}
}

func TestBuildARPUSection(t *testing.T) {
	in := standardInputs()
	in.ARPU = &metrics.ARPUInputs{ARPU: 100, MonthlyChurn: 0.05, GrossMargin: 0.70}

	r := Build(nil, in, DefaultThresholds())

	if r.ARPULTV == nil {
		t.Fatal("expected ARPU-based LTV")
	}
	if math.Abs(*r.ARPULTV-1400) > 1e-6 {
		t.Errorf("ARPU LTV = %.2f, expected 1400", *r.ARPULTV)
	}
}

func TestBuildBreakdownWarning(t *testing.T) {
	in := standardInputs()
	in.CAC.MarketingSpend = 5000
	in.Breakdown = &SpendBreakdown{AdSpend: 3000, TeamCost: 1500, ToolCost: 1000}

	r := Build(nil, in, DefaultThresholds())

	if len(r.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(r.Warnings))
	}
	if !strings.Contains(r.Warnings[0], "exceeds total marketing spend") {
		t.Errorf("unexpected warning: %s", r.Warnings[0])
	}

	// A breakdown within budget produces no warning.
	in.Breakdown = &SpendBreakdown{AdSpend: 3000, TeamCost: 1500, ToolCost: 500}
	r = Build(nil, in, DefaultThresholds())
	if len(r.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", r.Warnings)
	}

	// Sub-cent float noise above the total is not an overage.
	in.Breakdown = &SpendBreakdown{AdSpend: 3000.004, TeamCost: 1500, ToolCost: 500}
	r = Build(nil, in, DefaultThresholds())
	if len(r.Warnings) != 0 {
		t.Errorf("expected no warnings for sub-cent overage, got %v", r.Warnings)
	}
}

func TestBuildChurnSummary(t *testing.T) {
	in := standardInputs()
	in.Churn = &metrics.ChurnInputs{
		Method:         metrics.ChurnStartEnd,
		StartCustomers: 1000,
		EndCustomers:   950,
	}

	r := Build(nil, in, DefaultThresholds())

	if r.Churn == nil {
		t.Fatal("expected churn summary")
	}
	if math.Abs(r.Churn.MonthlyRate-0.05) > 1e-9 {
		t.Errorf("monthly churn = %.4f, expected 0.05", r.Churn.MonthlyRate)
	}
	if math.Abs(r.Churn.AnnualRate-0.4596) > 1e-3 {
		t.Errorf("annual churn = %.4f, expected 0.4596", r.Churn.AnnualRate)
	}
	if math.Abs(r.Churn.LifespanYears-1.6667) > 1e-3 {
		t.Errorf("lifespan = %.4f, expected 1.6667", r.Churn.LifespanYears)
	}
}

func TestBuildInsights(t *testing.T) {
	in := standardInputs()
	in.Insights = &InsightRates{RetentionPct: 40, UpsellPct: 10, ReferralPct: 20}

	r := Build(nil, in, DefaultThresholds())

	if len(r.Insights) != 3 {
		t.Fatalf("expected 3 insights, got %d", len(r.Insights))
	}

	expected := map[string]metrics.RateBand{
		"retention": metrics.RateAverage,
		"upsell":    metrics.RateLow,
		"referral":  metrics.RateStrong,
	}
	for _, insight := range r.Insights {
		want, ok := expected[insight.Metric]
		if !ok {
			t.Errorf("unexpected insight metric %s", insight.Metric)
			continue
		}
		if insight.Band != want {
			t.Errorf("%s band = %s, expected %s", insight.Metric, insight.Band, want)
		}
		if insight.Message == "" {
			t.Errorf("%s insight missing message", insight.Metric)
		}
	}
}

func TestBuildCustomThresholds(t *testing.T) {
	th := DefaultThresholds()
	th.Retention = RateThreshold{Low: 60, Mid: 80}

	in := standardInputs()
	in.Insights = &InsightRates{RetentionPct: 40, UpsellPct: 20, ReferralPct: 10}

	r := Build(nil, in, th)
	for _, insight := range r.Insights {
		if insight.Metric == "retention" && insight.Band != metrics.RateLow {
			t.Errorf("retention band = %s, expected Low under raised cutoffs", insight.Band)
		}
	}
}

func TestBuildScenarioImpact(t *testing.T) {
	in := standardInputs()
	in.Adjustment = &metrics.ScenarioAdjustment{PurchaseValuePct: 10, CACPct: -10}

	r := Build(nil, in, DefaultThresholds())

	if r.Scenario == nil {
		t.Fatal("expected scenario impact")
	}
	if math.Abs(r.Scenario.NewLTV-330) > 1e-9 {
		t.Errorf("new LTV = %.2f, expected 330", r.Scenario.NewLTV)
	}
	if math.Abs(r.Scenario.NewCAC-18) > 1e-9 {
		t.Errorf("new CAC = %.2f, expected 18", r.Scenario.NewCAC)
	}
	if !r.Scenario.RatioChangeKnown {
		t.Fatal("expected a known ratio change")
	}
	// 330/18 = 18.33 vs 15: +22.2%.
	if math.Abs(r.Scenario.RatioChangePct-22.2222) > 1e-3 {
		t.Errorf("ratio change = %.4f, expected 22.2222", r.Scenario.RatioChangePct)
	}
}

func TestBuildScenarioImpactUnknownChange(t *testing.T) {
	in := standardInputs()
	in.LTV.AvgPurchaseValue = 0
	in.CAC.MarketingSpend = 0
	in.Adjustment = &metrics.ScenarioAdjustment{PurchaseValuePct: 10}

	r := Build(nil, in, DefaultThresholds())

	if r.Scenario == nil {
		t.Fatal("expected scenario impact")
	}
	if r.Scenario.RatioChangeKnown {
		t.Error("expected unknown ratio change with zero baseline ratio")
	}
}

func TestStatusAndActionsPerTier(t *testing.T) {
	tiers := []metrics.RatioTier{
		metrics.RatioCritical,
		metrics.RatioNeedsWork,
		metrics.RatioHealthy,
		metrics.RatioExcellent,
	}

	seen := make(map[string]bool)
	for _, tier := range tiers {
		status := statusForTier(tier)
		if status == "" {
			t.Errorf("tier %s has no status", tier)
		}
		if seen[status] {
			t.Errorf("duplicate status %q", status)
		}
		seen[status] = true

		actions := actionsForTier(tier)
		if len(actions) != 5 {
			t.Errorf("tier %s has %d actions, expected 5", tier, len(actions))
		}
	}
}

func TestActionsForTierReturnsCopy(t *testing.T) {
	first := actionsForTier(metrics.RatioCritical)
	first[0] = "mutated"
	second := actionsForTier(metrics.RatioCritical)
	if second[0] == "mutated" {
		t.Error("actionsForTier shares backing array with callers")
	}
}
