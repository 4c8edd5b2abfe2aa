package analytics

import (
	"github.com/shopspring/decimal"
)

// Activity ladder over recency days, highest urgency last.
var activityLadder = []struct {
	MaxDays int
	Status  string
}{
	{30, "Active"},
	{90, "At Risk"},
	{180, "Inactive"},
}

// growthPotential maps the assigned segment to a 1-10 score. Segments with
// room to grow (new and warming customers) rank above already-maxed Champions.
var growthPotential = map[string]int{
	SegmentPotentialLoyalists: 10,
	SegmentNewCustomers:       9,
	SegmentPromising:          8,
	SegmentChampions:          7,
	SegmentLoyalCustomers:     6,
	SegmentNeedAttention:      5,
	SegmentAboutToSleep:       4,
	SegmentCannotLoseThem:     3,
	SegmentAtRisk:             2,
	SegmentOthers:             1,
}

const defaultGrowthPotential = 5

// EstimateCustomerValue derives the lifetime-value block from aggregated
// metrics and the already-assigned segment.
//
// estimated_clv = avg_order_value * total_orders * (age_days / 365)
// monthly_purchase_frequency = total_orders / max(age_days/30, 1)
//
// The floor of 1 on the frequency denominator keeps same-day first orders
// from blowing up the ratio.
func EstimateCustomerValue(m CustomerMetrics, score RFMScore, segment string, cfg Config) CustomerValue {
	ageDays := wholeDaysBetween(m.FirstOrderDate, cfg.ReferenceDate)

	years := decimal.NewFromInt(int64(ageDays)).Div(decimal.NewFromInt(365))
	clv := m.AvgOrderValue.
		Mul(decimal.NewFromInt(int64(m.TotalOrders))).
		Mul(years).
		Round(2)

	months := float64(ageDays) / 30.0
	if months < 1 {
		months = 1
	}
	frequency := float64(m.TotalOrders) / months

	status := "Lost"
	for _, rung := range activityLadder {
		if score.RecencyDays <= rung.MaxDays {
			status = rung.Status
			break
		}
	}

	potential, ok := growthPotential[segment]
	if !ok {
		potential = defaultGrowthPotential
	}

	return CustomerValue{
		EstimatedCLV:             clv,
		MonthlyPurchaseFrequency: frequency,
		CustomerAgeDays:          ageDays,
		ActivityStatus:           status,
		GrowthPotentialScore:     potential,
	}
}
