package analytics

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Threshold ladders are ordered highest bucket first and evaluated with
// first-match-wins; score 1 is the default when no rung matches. The order is
// load-bearing: boundary values must land in the higher bucket exactly once.

var recencyLadder = []struct {
	MaxDays int
	Score   int
}{
	{30, 5},
	{60, 4},
	{90, 3},
	{180, 2},
}

var frequencyLadder = []struct {
	MinOrders int
	Score     int
}{
	{20, 5},
	{15, 4},
	{10, 3},
	{5, 2},
}

var monetaryLadder = []struct {
	MinSpent decimal.Decimal
	Score    int
}{
	{decimal.NewFromInt(10000), 5},
	{decimal.NewFromInt(5000), 4},
	{decimal.NewFromInt(2000), 3},
	{decimal.NewFromInt(500), 2},
}

func scoreRecency(recencyDays int) int {
	for _, rung := range recencyLadder {
		if recencyDays <= rung.MaxDays {
			return rung.Score
		}
	}
	return 1
}

func scoreFrequency(totalOrders int) int {
	for _, rung := range frequencyLadder {
		if totalOrders >= rung.MinOrders {
			return rung.Score
		}
	}
	return 1
}

func scoreMonetary(totalSpent decimal.Decimal) int {
	for _, rung := range monetaryLadder {
		if totalSpent.GreaterThanOrEqual(rung.MinSpent) {
			return rung.Score
		}
	}
	return 1
}

// ScoreRFM derives the recency/frequency/monetary sub-scores for one
// customer. Pure: same metrics and reference date always produce the same
// score.
func ScoreRFM(m CustomerMetrics, cfg Config) RFMScore {
	days := wholeDaysBetween(m.LastOrderDate, cfg.ReferenceDate)
	r := scoreRecency(days)
	f := scoreFrequency(m.TotalOrders)
	mo := scoreMonetary(m.TotalSpent)
	return RFMScore{
		RecencyDays:    days,
		RecencyScore:   r,
		FrequencyScore: f,
		MonetaryScore:  mo,
		Code:           fmt.Sprintf("%d%d%d", r, f, mo),
	}
}
