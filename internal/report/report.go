// Package report assembles a full evaluation of one set of business inputs:
// the computed metrics, their classification tiers, the gauge chart spec,
// and the recommendation text keyed off the LTV/CAC ratio.
package report

import (
	"fmt"
	"math"

	"github.com/mhollis/unit-economics/internal/metrics"
	"github.com/mhollis/unit-economics/pkg/constants"
	"github.com/mhollis/unit-economics/pkg/mathutil"
	"go.uber.org/zap"
)

// RateThreshold holds the two cutoffs for a rate-based insight classifier.
type RateThreshold struct {
	Low float64
	Mid float64
}

// Thresholds holds the classifier cutoffs for the three insight rates.
type Thresholds struct {
	Retention RateThreshold
	Upsell    RateThreshold
	Referral  RateThreshold
}

// DefaultThresholds returns the standard insight cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Retention: RateThreshold{Low: constants.RetentionLowThreshold, Mid: constants.RetentionMidThreshold},
		Upsell:    RateThreshold{Low: constants.UpsellLowThreshold, Mid: constants.UpsellMidThreshold},
		Referral:  RateThreshold{Low: constants.ReferralLowThreshold, Mid: constants.ReferralMidThreshold},
	}
}

// SpendBreakdown itemizes marketing spend for the optional breakdown check.
type SpendBreakdown struct {
	AdSpend  float64
	TeamCost float64
	ToolCost float64
}

// Total returns the sum of the itemized costs.
func (b SpendBreakdown) Total() float64 {
	return b.AdSpend + b.TeamCost + b.ToolCost
}

// InsightRates holds the optional rate percentages for the insight section.
type InsightRates struct {
	RetentionPct float64
	UpsellPct    float64
	ReferralPct  float64
}

// Inputs collects everything one evaluation needs. ARPU, Breakdown, Churn,
// Insights, and Adjustment are optional; nil sections are skipped.
type Inputs struct {
	Name       string
	LTV        metrics.LTVInputs
	ARPU       *metrics.ARPUInputs
	CAC        metrics.CACInputs
	Breakdown  *SpendBreakdown
	Churn      *metrics.ChurnInputs
	Insights   *InsightRates
	Adjustment *metrics.ScenarioAdjustment
}

// Insight is one classified rate with its advisory message.
type Insight struct {
	Metric  string
	RatePct float64
	Band    metrics.RateBand
	Message string
}

// ChurnSummary holds the derived churn figures when churn inputs are present.
type ChurnSummary struct {
	MonthlyRate   float64
	AnnualRate    float64
	LifespanYears float64
}

// ScenarioImpact holds the result of applying a scenario adjustment to the
// computed baseline.
type ScenarioImpact struct {
	Adjustment       metrics.ScenarioAdjustment
	NewLTV           float64
	NewCAC           float64
	NewRatio         float64
	RatioChangePct   float64
	RatioChangeKnown bool
}

// Report is the full evaluation of one scenario's inputs.
type Report struct {
	Name string

	LTV            float64
	ARPULTV        *float64
	LifespanYears  float64
	AnnualRevenue  float64
	MonthlyRevenue float64
	CAC            float64
	Ratio          float64
	PaybackMonths  float64
	MonthlyROI     float64

	Tier        metrics.RatioTier
	Status      string
	Actions     []string
	PaybackBand metrics.PaybackBand

	Churn    *ChurnSummary
	Insights []Insight
	Scenario *ScenarioImpact
	Gauge    GaugeSpec

	Warnings []string
}

// Build evaluates one set of inputs into a Report. If logger is nil, it will
// use a no-op logger to prevent panics.
func Build(logger *zap.Logger, in Inputs, th Thresholds) Report {
	if logger == nil {
		logger = zap.NewNop()
	}

	lifespan := metrics.LifespanYears(in.LTV.Lifespan)
	annualRevenue := in.LTV.AvgPurchaseValue * in.LTV.PurchaseFrequency

	var ltv float64
	switch {
	case math.IsInf(lifespan, 1) && annualRevenue == 0:
		// Zero churn and zero revenue: avoid the 0*Inf NaN.
		ltv = 0
	default:
		ltv = metrics.LTV(in.LTV.AvgPurchaseValue, in.LTV.PurchaseFrequency, lifespan)
	}

	cac := metrics.CAC(in.CAC.MarketingSpend, in.CAC.NewCustomers)
	monthlyRevenue := metrics.MonthlyRevenue(in.LTV.AvgPurchaseValue, in.LTV.PurchaseFrequency)
	ratio := metrics.Ratio(ltv, cac)
	payback := metrics.PaybackMonths(cac, monthlyRevenue)
	roi := metrics.MonthlyROI(monthlyRevenue, cac)
	tier := metrics.ClassifyRatio(ratio)

	r := Report{
		Name:           in.Name,
		LTV:            ltv,
		LifespanYears:  lifespan,
		AnnualRevenue:  annualRevenue,
		MonthlyRevenue: monthlyRevenue,
		CAC:            cac,
		Ratio:          ratio,
		PaybackMonths:  payback,
		MonthlyROI:     roi,
		Tier:           tier,
		Status:         statusForTier(tier),
		Actions:        actionsForTier(tier),
		PaybackBand:    metrics.ClassifyPayback(payback),
		Gauge:          BuildGauge(ratio),
	}

	if in.ARPU != nil {
		arpuLTV := metrics.LTVFromARPU(in.ARPU.ARPU, in.ARPU.MonthlyChurn, in.ARPU.GrossMargin)
		r.ARPULTV = &arpuLTV
	}

	if in.Breakdown != nil {
		// Compare at currency precision so sub-cent float noise does not
		// trip the warning.
		itemized := mathutil.Round(in.Breakdown.Total())
		if itemized > in.CAC.MarketingSpend &&
			!mathutil.WithinTolerance(itemized, in.CAC.MarketingSpend, constants.CurrencyTolerance) {
			r.Warnings = append(r.Warnings,
				fmt.Sprintf("marketing spend breakdown (%.2f) exceeds total marketing spend (%.2f)",
					itemized, in.CAC.MarketingSpend))
		}
	}

	if in.Churn != nil {
		monthly := metrics.ChurnRate(*in.Churn)
		r.Churn = &ChurnSummary{
			MonthlyRate:   monthly,
			AnnualRate:    metrics.AnnualizeChurn(monthly),
			LifespanYears: metrics.LifespanFromChurn(monthly),
		}
	}

	if in.Insights != nil {
		r.Insights = buildInsights(*in.Insights, th)
	}

	if in.Adjustment != nil {
		impact := applyAdjustment(metrics.Baseline{LTV: ltv, CAC: cac}, *in.Adjustment)
		r.Scenario = &impact
	}

	logger.Debug("report built",
		zap.String("op", "report.Build"),
		zap.String("scenario", in.Name),
		zap.Float64("ltv", ltv),
		zap.Float64("cac", cac),
		zap.Float64("ratio", ratio),
		zap.String("tier", tier.String()),
	)

	return r
}

func buildInsights(rates InsightRates, th Thresholds) []Insight {
	retention := metrics.ClassifyRate(rates.RetentionPct, th.Retention.Low, th.Retention.Mid)
	upsell := metrics.ClassifyRate(rates.UpsellPct, th.Upsell.Low, th.Upsell.Mid)
	referral := metrics.ClassifyRate(rates.ReferralPct, th.Referral.Low, th.Referral.Mid)

	return []Insight{
		{Metric: "retention", RatePct: rates.RetentionPct, Band: retention, Message: retentionMessages[retention]},
		{Metric: "upsell", RatePct: rates.UpsellPct, Band: upsell, Message: upsellMessages[upsell]},
		{Metric: "referral", RatePct: rates.ReferralPct, Band: referral, Message: referralMessages[referral]},
	}
}

func applyAdjustment(base metrics.Baseline, adj metrics.ScenarioAdjustment) ScenarioImpact {
	adjusted := metrics.ApplyScenario(base, adj)
	currentRatio := metrics.Ratio(base.LTV, base.CAC)
	newRatio := metrics.Ratio(adjusted.LTV, adjusted.CAC)

	impact := ScenarioImpact{
		Adjustment: adj,
		NewLTV:     adjusted.LTV,
		NewCAC:     adjusted.CAC,
		NewRatio:   newRatio,
	}

	if currentRatio > 0 && !math.IsInf(currentRatio, 1) && !math.IsInf(newRatio, 1) {
		impact.RatioChangePct = (newRatio/currentRatio - 1) * constants.PercentageMultiplier
		impact.RatioChangeKnown = true
	}

	return impact
}
