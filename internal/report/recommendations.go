package report

import "github.com/mhollis/unit-economics/internal/metrics"

// Status strings and action lists per ratio tier. These are canned business
// advice keyed only off the tier; tests assert on selection, not wording.

var tierStatuses = map[metrics.RatioTier]string{
	metrics.RatioCritical:  "Critical - Immediate Action Required",
	metrics.RatioNeedsWork: "Below Target - Optimization Required",
	metrics.RatioHealthy:   "Healthy - Room for Improvement",
	metrics.RatioExcellent: "Excellent - Growth Opportunity",
}

var tierActions = map[metrics.RatioTier][]string{
	metrics.RatioCritical: {
		"Optimize your ad spend and marketing channels",
		"Improve your conversion rate optimization (CRO)",
		"Consider increasing your prices",
		"Review and reduce your customer acquisition costs",
		"Focus on improving customer retention",
	},
	metrics.RatioNeedsWork: {
		"Add upsell and cross-sell opportunities",
		"Optimize marketing targeting",
		"Implement a customer loyalty program",
		"Improve landing page conversion",
		"Enhance customer onboarding",
	},
	metrics.RatioHealthy: {
		"Start scaling your marketing efforts gradually",
		"Implement upselling and cross-selling strategies",
		"Focus on customer success and satisfaction",
		"Consider implementing a referral program",
		"Optimize your sales funnel",
	},
	metrics.RatioExcellent: {
		"Significantly increase marketing investment",
		"Explore new marketing channels",
		"Consider expanding to new markets",
		"Invest in product development",
		"Build a scalable customer success program",
	},
}

func statusForTier(tier metrics.RatioTier) string {
	return tierStatuses[tier]
}

func actionsForTier(tier metrics.RatioTier) []string {
	return append([]string(nil), tierActions[tier]...)
}

var retentionMessages = map[metrics.RateBand]string{
	metrics.RateLow:     "Low retention rate - focus on customer satisfaction and loyalty programs",
	metrics.RateAverage: "Average retention - room for improvement",
	metrics.RateStrong:  "Strong retention rate - keep up the good work",
}

var upsellMessages = map[metrics.RateBand]string{
	metrics.RateLow:     "Low upsell rate - review your upsell strategy",
	metrics.RateAverage: "Average upsell performance - consider testing new offers",
	metrics.RateStrong:  "Strong upsell performance - continue optimizing",
}

var referralMessages = map[metrics.RateBand]string{
	metrics.RateLow:     "Low referral rate - implement a referral program",
	metrics.RateAverage: "Average referral rate - enhance referral incentives",
	metrics.RateStrong:  "Strong referral program - maintain and scale",
}
