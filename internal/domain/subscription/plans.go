package subscription

import "github.com/shopspring/decimal"

// planFeatures is the canonical bundle per plan. Values are returned by copy
// so callers can never edit the table through a subscription.
var planFeatures = map[Plan]Features{
	PlanBasic: {
		PlanName:      "Basic",
		Price:         decimal.Zero,
		MaxServices:   1,
		MaxCategories: 1,
		MaxImages:     3,
		MaxVideos:     0,
	},
	PlanPro: {
		PlanName:               "Pro",
		Price:                  decimal.NewFromInt(25000),
		MaxServices:            5,
		MaxCategories:          3,
		MaxImages:              10,
		MaxVideos:              2,
		FeaturedListing:        true,
		PrioritySupport:        true,
		AnalyticsAccess:        true,
		SocialMediaIntegration: true,
	},
	PlanPremium: {
		PlanName:               "Premium",
		Price:                  decimal.NewFromInt(50000),
		MaxServices:            999,
		MaxCategories:          999,
		MaxImages:              50,
		MaxVideos:              10,
		FeaturedListing:        true,
		PromotedListing:        true,
		PrioritySupport:        true,
		AnalyticsAccess:        true,
		SocialMediaIntegration: true,
		VideoPortfolio:         true,
	},
}

// FeaturesFor returns the canonical feature bundle for a plan.
func FeaturesFor(p Plan) (Features, bool) {
	f, ok := planFeatures[p]
	return f, ok
}

// Plans lists the known tiers in ascending rank order.
func Plans() []Plan {
	return []Plan{PlanBasic, PlanPro, PlanPremium}
}
