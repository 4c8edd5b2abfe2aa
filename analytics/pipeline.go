package analytics

import (
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Run executes both pipelines over one batch of orders. The customer
// segmentation and sales trend pipelines are independent, so they run
// concurrently; each is a pure function of (orders, cfg) and the whole run is
// deterministic for a fixed reference date.
func Run(orders []OrderRecord, cfg Config, logger *zap.Logger) (*Result, error) {
	valid, skipped, err := ValidateOrders(orders, cfg, logger)
	if err != nil {
		return nil, err
	}

	res := &Result{
		InputRecords:   len(orders),
		SkippedRecords: skipped,
	}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		res.CustomerAnalytics = buildCustomerAnalytics(valid, cfg)
	}()

	go func() {
		defer wg.Done()
		daily := AggregateBuckets(valid, Daily, cfg)
		res.SalesTrend = assembleTrendRows(AnalyzeTrend(daily), cfg)
		res.WeeklyBuckets = AggregateBuckets(valid, Weekly, cfg)
		res.MonthlyBuckets = AggregateBuckets(valid, Monthly, cfg)
	}()

	wg.Wait()

	logger.Info("analytics run complete",
		zap.Int("input_records", res.InputRecords),
		zap.Int("skipped_records", res.SkippedRecords),
		zap.Int("customers", len(res.CustomerAnalytics)),
		zap.Int("trend_days", len(res.SalesTrend)))
	return res, nil
}

func buildCustomerAnalytics(orders []OrderRecord, cfg Config) []CustomerAnalyticsRow {
	metrics := AggregateCustomerMetrics(orders, cfg)

	rows := make([]CustomerAnalyticsRow, 0, len(metrics))
	for _, m := range metrics {
		score := ScoreRFM(m, cfg)
		segment := ClassifySegment(score)
		value := EstimateCustomerValue(m, score, segment, cfg)
		rows = append(rows, assembleCustomerRow(m, score, segment, value, cfg))
	}

	// Output A ordering: biggest spenders first, ties broken by most recent
	// purchase.
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].TotalSpent.Equal(rows[j].TotalSpent) {
			return rows[i].TotalSpent.GreaterThan(rows[j].TotalSpent)
		}
		return rows[i].LastOrderDate.After(rows[j].LastOrderDate)
	})
	return rows
}

// assembleCustomerRow flattens the per-customer derivations into the output
// shape. No computation happens here beyond field placement.
func assembleCustomerRow(m CustomerMetrics, score RFMScore, segment string, value CustomerValue, cfg Config) CustomerAnalyticsRow {
	return CustomerAnalyticsRow{
		CustomerID:       m.CustomerID,
		TotalOrders:      m.TotalOrders,
		TotalSpent:       m.TotalSpent,
		AvgOrderValue:    m.AvgOrderValue,
		FirstOrderDate:   m.FirstOrderDate,
		LastOrderDate:    m.LastOrderDate,
		TotalQuantity:    m.TotalQuantity,
		DistinctProducts: m.DistinctProducts,

		RecencyDays:    score.RecencyDays,
		RecencyScore:   score.RecencyScore,
		FrequencyScore: score.FrequencyScore,
		MonetaryScore:  score.MonetaryScore,
		RFMCode:        score.Code,

		Segment:          segment,
		ValueTier:        ClassifyValueTier(m.TotalSpent),
		PurchaseBehavior: ClassifyPurchaseBehavior(m.TotalOrders, m.AvgOrderValue),

		EstimatedCLV:             value.EstimatedCLV,
		MonthlyPurchaseFrequency: value.MonthlyPurchaseFrequency,
		CustomerAgeDays:          value.CustomerAgeDays,
		ActivityStatus:           value.ActivityStatus,
		GrowthPotentialScore:     value.GrowthPotentialScore,

		GeneratedAt: cfg.ReferenceDate,
	}
}

// assembleTrendRows stamps the trend points and applies the Output B ordering
// (newest day first).
func assembleTrendRows(points []TrendPoint, cfg Config) []SalesTrendRow {
	rows := make([]SalesTrendRow, 0, len(points))
	for _, p := range points {
		rows = append(rows, SalesTrendRow{TrendPoint: p, GeneratedAt: cfg.ReferenceDate})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Period.After(rows[j].Period)
	})
	return rows
}
