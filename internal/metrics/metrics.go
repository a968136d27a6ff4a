// Package metrics defines the data structures for unit-economics inputs and
// includes the pure functions for computing the business metrics.
//
// Every function here is side-effect free and O(1). Divisions are guarded:
// instead of propagating a runtime panic, each formula returns the sentinel
// its business rule calls for (0, +Inf, or NaN). Inputs are expected to be
// non-negative; clamping is the responsibility of the calling layer (see
// pkg/validation), not the engine.
package metrics

import (
	"math"

	"github.com/mhollis/unit-economics/pkg/constants"
	"github.com/mhollis/unit-economics/pkg/mathutil"
)

// Period identifies the measurement window of a CAC calculation.
type Period string

const (
	PeriodMonthly Period = "monthly"
	PeriodAnnual  Period = "annual"
)

// LifespanMethod selects how customer lifespan is derived.
type LifespanMethod string

const (
	// LifespanDirect uses a lifespan supplied directly in years.
	LifespanDirect LifespanMethod = "direct"

	// LifespanChurn derives lifespan from a monthly churn rate.
	LifespanChurn LifespanMethod = "churn"
)

// LifespanSource is a tagged variant: either a direct lifespan in years or a
// monthly churn rate to derive it from. The two are mutually exclusive;
// Method selects which payload field applies.
type LifespanSource struct {
	Method       LifespanMethod
	Years        float64
	MonthlyChurn float64 // rate in [0,1]
}

// LTVInputs holds the inputs for a purchase-based lifetime value calculation.
type LTVInputs struct {
	AvgPurchaseValue  float64
	PurchaseFrequency float64 // purchases per year
	Lifespan          LifespanSource
}

// ARPUInputs holds the inputs for a subscription-style LTV calculation.
type ARPUInputs struct {
	ARPU         float64 // average monthly revenue per customer
	MonthlyChurn float64 // rate in [0,1]
	GrossMargin  float64 // fraction in [0,1]
}

// CACInputs holds the inputs for a customer acquisition cost calculation.
type CACInputs struct {
	MarketingSpend float64
	NewCustomers   float64
	Period         Period
}

// ChurnMethod selects how churn rate is derived.
type ChurnMethod string

const (
	// ChurnLostCustomers derives churn from a count of customers lost.
	ChurnLostCustomers ChurnMethod = "lostCustomers"

	// ChurnStartEnd derives churn by comparing start and end customer counts.
	ChurnStartEnd ChurnMethod = "startEnd"
)

// ChurnInputs is a tagged variant for the two churn calculation methods.
// Method selects whether LostCustomers or EndCustomers applies.
type ChurnInputs struct {
	Method         ChurnMethod
	StartCustomers float64
	LostCustomers  float64
	EndCustomers   float64
}

// ScenarioAdjustment holds signed percentage deltas applied to a baseline.
type ScenarioAdjustment struct {
	PurchaseValuePct float64
	CACPct           float64
	RetentionPct     float64
}

// Baseline carries the LTV and CAC a scenario adjustment applies to. It is
// passed explicitly into ApplyScenario rather than held as ambient state.
type Baseline struct {
	LTV float64
	CAC float64
}

// LTV computes lifetime value as average purchase value times annual
// purchase frequency times lifespan in years.
func LTV(avgPurchase, frequency, lifespanYears float64) float64 {
	return avgPurchase * frequency * lifespanYears
}

// LifespanYears resolves a LifespanSource to a lifespan in years. An
// unrecognized method resolves to the direct years field.
func LifespanYears(src LifespanSource) float64 {
	if src.Method == LifespanChurn {
		return LifespanFromChurn(src.MonthlyChurn)
	}
	return src.Years
}

// LifespanFromChurn converts a monthly churn rate to an expected customer
// lifespan in years. A zero churn rate means customers never leave, so the
// lifespan is +Inf (rendered as "∞" by the formatting layer).
func LifespanFromChurn(monthlyRate float64) float64 {
	return mathutil.SafeDivide(1, monthlyRate*constants.MonthsPerYear, math.Inf(1))
}

// LTVFromARPU computes subscription LTV as ARPU times expected lifetime in
// months (1/churn) times gross margin. Zero churn returns 0 rather than Inf;
// this is the carried business rule for this formula, intentionally
// inconsistent with Ratio's treatment of a zero denominator.
func LTVFromARPU(arpu, monthlyChurn, grossMargin float64) float64 {
	if monthlyChurn == 0 {
		return 0
	}
	return arpu * (1 / monthlyChurn) * grossMargin
}

// CAC computes customer acquisition cost as spend divided by new customers
// acquired. Zero customers yields 0.
func CAC(spend, newCustomers float64) float64 {
	return mathutil.SafeDivide(spend, newCustomers, 0)
}

// Ratio computes the LTV/CAC ratio. A zero CAC with positive LTV yields
// +Inf; a zero CAC with zero LTV yields 0.
func Ratio(ltv, cac float64) float64 {
	if cac == 0 {
		if ltv > 0 {
			return math.Inf(1)
		}
		return 0
	}
	return ltv / cac
}

// MonthlyRevenue computes the average monthly revenue per customer from an
// average purchase value and annual purchase frequency.
func MonthlyRevenue(avgPurchase, frequency float64) float64 {
	return avgPurchase * frequency / constants.MonthsPerYear
}

// PaybackMonths computes how many months of per-customer revenue it takes to
// recover the acquisition cost. A zero monthly revenue yields NaN (rendered
// as "N/A" by the formatting layer).
func PaybackMonths(cac, monthlyRevenuePerCustomer float64) float64 {
	return mathutil.SafeDivide(cac, monthlyRevenuePerCustomer, math.NaN())
}

// MonthlyROI computes the monthly return on acquisition spend as a percent.
// Zero CAC yields 0.
func MonthlyROI(monthlyRevenuePerCustomer, cac float64) float64 {
	monthlyCost := cac / constants.MonthsPerYear
	return mathutil.SafeDivide(monthlyRevenuePerCustomer-monthlyCost, monthlyCost, 0) * constants.PercentageMultiplier
}

// ChurnRate computes the monthly churn rate for either calculation method.
// A zero starting customer count yields 0, and the result is clamped to
// [0,1] so a growing customer base never reports negative churn.
func ChurnRate(in ChurnInputs) float64 {
	var rate float64
	switch in.Method {
	case ChurnStartEnd:
		rate = mathutil.SafeDivide(in.StartCustomers-in.EndCustomers, in.StartCustomers, 0)
	default:
		rate = mathutil.SafeDivide(in.LostCustomers, in.StartCustomers, 0)
	}
	return mathutil.Clamp(rate, 0, 1)
}

// AnnualizeChurn converts a monthly churn rate to the equivalent annual
// rate via compounding: 1 - (1-m)^12.
func AnnualizeChurn(monthlyRate float64) float64 {
	return 1 - math.Pow(1-monthlyRate, constants.MonthsPerYear)
}

// ApplyScenario scales a baseline by the adjustment's signed percentage
// deltas and returns the adjusted baseline.
func ApplyScenario(base Baseline, adj ScenarioAdjustment) Baseline {
	return Baseline{
		LTV: mathutil.AdjustByPercent(base.LTV, adj.PurchaseValuePct),
		CAC: mathutil.AdjustByPercent(base.CAC, adj.CACPct),
	}
}
