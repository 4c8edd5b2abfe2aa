package analytics

import (
	"math"

	"github.com/shopspring/decimal"
)

// Performance labels compare a bucket's value to its own trailing 7-bucket
// average with a +-10% tolerance band.
const (
	PerfAboveAverage = "Above Average"
	PerfAverage      = "Average"
	PerfBelowAverage = "Below Average"
)

var (
	bandUpper = decimal.NewFromFloat(1.1)
	bandLower = decimal.NewFromFloat(0.9)
	hundred   = decimal.NewFromInt(100)
)

// performanceScoreRules maps the (revenue, orders) label pair to the
// composite 1-10 score, evaluated top to bottom, first match wins.
var performanceScoreRules = []struct {
	Match func(rev, ord string) bool
	Score int
}{
	{func(rev, ord string) bool { return rev == PerfAboveAverage && ord == PerfAboveAverage }, 10},
	{func(rev, ord string) bool { return rev == PerfAboveAverage || ord == PerfAboveAverage }, 8},
	{func(rev, ord string) bool { return rev == PerfAverage && ord == PerfAverage }, 6},
	{func(rev, ord string) bool { return rev == PerfBelowAverage || ord == PerfBelowAverage }, 4},
}

// ClassifyPerformance converts the two per-metric labels into the composite
// score.
func ClassifyPerformance(revenuePerf, ordersPerf string) int {
	for _, rule := range performanceScoreRules {
		if rule.Match(revenuePerf, ordersPerf) {
			return rule.Score
		}
	}
	return 2
}

// AnalyzeTrend walks the daily bucket sequence (already sorted ascending) and
// derives lagged values, trailing moving averages, growth percentages and
// performance labels. The sequence may be non-contiguous: a calendar gap is
// just a missing element, not a zero-revenue day, so "previous" means the
// previous bucket, and windows count buckets, not days.
func AnalyzeTrend(buckets []TimeBucket) []TrendPoint {
	points := make([]TrendPoint, 0, len(buckets))

	for i, b := range buckets {
		p := TrendPoint{TimeBucket: b}

		if i > 0 {
			prev := buckets[i-1]
			prevRev := prev.TotalRevenue
			prevOrd := prev.TotalOrders
			p.PrevRevenue = &prevRev
			p.PrevOrders = &prevOrd

			p.RevenueGrowthPct = growthPct(b.TotalRevenue, prevRev)
			p.OrdersGrowthPct = ordersGrowthPct(b.TotalOrders, prevOrd)
		}

		n7 := windowLen(i, 7)
		n30 := windowLen(i, 30)
		p.RevenueMA7 = trailingSum(buckets, i, 7).Div(decimal.NewFromInt(int64(n7)))
		p.RevenueMA30 = trailingSum(buckets, i, 30).Div(decimal.NewFromInt(int64(n30)))
		p.OrdersMA7 = trailingOrdersMean(buckets, i, 7)
		p.OrdersMA30 = trailingOrdersMean(buckets, i, 30)

		p.RevenuePerformance = bandLabel(b.TotalRevenue, p.RevenueMA7)
		p.OrdersPerformance = ordersBandLabel(b.TotalOrders, p.OrdersMA7)
		p.PerformanceScore = ClassifyPerformance(p.RevenuePerformance, p.OrdersPerformance)

		points = append(points, p)
	}
	return points
}

// growthPct returns (current-previous)/previous*100 rounded to 2 decimals,
// or nil when previous is zero: a zero base means growth is undefined, not
// infinite.
func growthPct(current, previous decimal.Decimal) *decimal.Decimal {
	if previous.IsZero() {
		return nil
	}
	pct := current.Sub(previous).Div(previous).Mul(hundred).Round(2)
	return &pct
}

func ordersGrowthPct(current, previous int) *float64 {
	if previous == 0 {
		return nil
	}
	pct := float64(current-previous) / float64(previous) * 100
	pct = math.Round(pct*100) / 100
	return &pct
}

func windowLen(i, size int) int {
	if i+1 < size {
		return i + 1
	}
	return size
}

func trailingSum(buckets []TimeBucket, i, size int) decimal.Decimal {
	sum := decimal.Zero
	for j := i - windowLen(i, size) + 1; j <= i; j++ {
		sum = sum.Add(buckets[j].TotalRevenue)
	}
	return sum
}

func trailingOrdersMean(buckets []TimeBucket, i, size int) float64 {
	n := windowLen(i, size)
	sum := 0
	for j := i - n + 1; j <= i; j++ {
		sum += buckets[j].TotalOrders
	}
	return float64(sum) / float64(n)
}

func bandLabel(current, avg decimal.Decimal) string {
	switch {
	case current.GreaterThan(avg.Mul(bandUpper)):
		return PerfAboveAverage
	case current.LessThan(avg.Mul(bandLower)):
		return PerfBelowAverage
	default:
		return PerfAverage
	}
}

func ordersBandLabel(current int, avg float64) string {
	c := float64(current)
	switch {
	case c > avg*1.1:
		return PerfAboveAverage
	case c < avg*0.9:
		return PerfBelowAverage
	default:
		return PerfAverage
	}
}
