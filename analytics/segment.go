package analytics

import "github.com/shopspring/decimal"

// Segment labels. SegmentOthers is the required fallback; every score triple
// maps to exactly one label.
const (
	SegmentChampions          = "Champions"
	SegmentLoyalCustomers     = "Loyal Customers"
	SegmentPotentialLoyalists = "Potential Loyalists"
	SegmentNewCustomers       = "New Customers"
	SegmentPromising          = "Promising"
	SegmentNeedAttention      = "Need Attention"
	SegmentAboutToSleep       = "About to Sleep"
	SegmentAtRisk             = "At Risk"
	SegmentCannotLoseThem     = "Cannot Lose Them"
	SegmentOthers             = "Others"
)

// SegmentRule bounds each sub-score with an inclusive [min,max] range.
type SegmentRule struct {
	Name       string
	MinR, MaxR int
	MinF, MaxF int
	MinM, MaxM int
}

// segmentRules is evaluated top to bottom, first match wins. Predicate ranges
// overlap (e.g. Loyal Customers and Promising both cover 3/3/3); the ordering
// is business-defined and must not be reshuffled.
var segmentRules = []SegmentRule{
	{SegmentChampions, 4, 5, 4, 5, 4, 5},
	{SegmentLoyalCustomers, 3, 5, 3, 5, 3, 5},
	{SegmentPotentialLoyalists, 4, 5, 1, 2, 3, 5},
	{SegmentNewCustomers, 4, 5, 1, 2, 1, 2},
	{SegmentPromising, 3, 5, 2, 5, 3, 5},
	{SegmentNeedAttention, 1, 2, 3, 5, 3, 5},
	{SegmentAboutToSleep, 1, 2, 2, 5, 2, 5},
	{SegmentAtRisk, 1, 2, 1, 2, 2, 5},
	{SegmentCannotLoseThem, 1, 2, 1, 2, 1, 2},
}

func (r SegmentRule) matches(recency, frequency, monetary int) bool {
	return recency >= r.MinR && recency <= r.MaxR &&
		frequency >= r.MinF && frequency <= r.MaxF &&
		monetary >= r.MinM && monetary <= r.MaxM
}

// ClassifySegment maps an RFM triple to its behavioral segment.
func ClassifySegment(score RFMScore) string {
	for _, rule := range segmentRules {
		if rule.matches(score.RecencyScore, score.FrequencyScore, score.MonetaryScore) {
			return rule.Name
		}
	}
	return SegmentOthers
}

var valueTierLadder = []struct {
	MinSpent decimal.Decimal
	Tier     string
}{
	{decimal.NewFromInt(10000), "Premium"},
	{decimal.NewFromInt(5000), "High"},
	{decimal.NewFromInt(2000), "Medium"},
	{decimal.NewFromInt(500), "Low"},
}

// ClassifyValueTier derives the tier from raw total spend, independent of the
// RFM scores.
func ClassifyValueTier(totalSpent decimal.Decimal) string {
	for _, rung := range valueTierLadder {
		if totalSpent.GreaterThanOrEqual(rung.MinSpent) {
			return rung.Tier
		}
	}
	return "New/Inactive"
}

var (
	behaviorOrderThreshold = 15
	behaviorValueThreshold = decimal.NewFromInt(500)
)

// ClassifyPurchaseBehavior splits customers on order count and average order
// value at fixed thresholds.
func ClassifyPurchaseBehavior(totalOrders int, avgOrderValue decimal.Decimal) string {
	frequent := totalOrders >= behaviorOrderThreshold
	highValue := avgOrderValue.GreaterThanOrEqual(behaviorValueThreshold)
	switch {
	case frequent && highValue:
		return "Frequent High Spender"
	case frequent:
		return "Frequent Low Spender"
	case highValue:
		return "Occasional High Spender"
	default:
		return "Occasional Low Spender"
	}
}
