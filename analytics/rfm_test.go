package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testRef = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func metricsWith(spent float64, orders int, last time.Time) CustomerMetrics {
	return CustomerMetrics{
		CustomerID:     "C1",
		TotalOrders:    orders,
		TotalSpent:     decimal.NewFromFloat(spent),
		AvgOrderValue:  decimal.NewFromFloat(spent / float64(orders)),
		FirstOrderDate: last.AddDate(-1, 0, 0),
		LastOrderDate:  last,
	}
}

func TestRecencyLadderBoundaries(t *testing.T) {
	require := require.New(t)

	cases := []struct {
		days  int
		score int
	}{
		{0, 5}, {30, 5},
		{31, 4}, {60, 4},
		{61, 3}, {90, 3},
		{91, 2}, {180, 2},
		{181, 1}, {365, 1},
	}
	for _, tc := range cases {
		require.Equal(tc.score, scoreRecency(tc.days), "recency_days=%d", tc.days)
	}
}

func TestFrequencyLadderBoundaries(t *testing.T) {
	require := require.New(t)

	cases := []struct {
		orders int
		score  int
	}{
		{25, 5}, {20, 5},
		{19, 4}, {15, 4},
		{14, 3}, {10, 3},
		{9, 2}, {5, 2},
		{4, 1}, {1, 1},
	}
	for _, tc := range cases {
		require.Equal(tc.score, scoreFrequency(tc.orders), "total_orders=%d", tc.orders)
	}
}

func TestMonetaryLadderExactBoundaries(t *testing.T) {
	require := require.New(t)

	// Boundaries are exact: 10000 lands in the top bucket, 9999.99 one below.
	require.Equal(5, scoreMonetary(decimal.NewFromInt(10000)))
	require.Equal(4, scoreMonetary(decimal.RequireFromString("9999.99")))
	require.Equal(4, scoreMonetary(decimal.NewFromInt(5000)))
	require.Equal(3, scoreMonetary(decimal.RequireFromString("4999.99")))
	require.Equal(3, scoreMonetary(decimal.NewFromInt(2000)))
	require.Equal(2, scoreMonetary(decimal.NewFromInt(500)))
	require.Equal(1, scoreMonetary(decimal.RequireFromString("499.99")))
	require.Equal(1, scoreMonetary(decimal.Zero))
}

func TestScoreRFMWholeDayFloor(t *testing.T) {
	require := require.New(t)

	cfg := DefaultConfig(testRef)
	// 30 days and 6 hours before the reference date floors to 30 whole days.
	m := metricsWith(100, 1, testRef.Add(-30*24*time.Hour-6*time.Hour))
	score := ScoreRFM(m, cfg)
	require.Equal(30, score.RecencyDays)
	require.Equal(5, score.RecencyScore)
}

func TestScoreRFMCodeConcatenation(t *testing.T) {
	require := require.New(t)

	cfg := DefaultConfig(testRef)
	m := metricsWith(12000, 25, testRef.AddDate(0, 0, -10))
	score := ScoreRFM(m, cfg)
	require.Equal(5, score.RecencyScore)
	require.Equal(5, score.FrequencyScore)
	require.Equal(5, score.MonetaryScore)
	require.Equal("555", score.Code)
}

func TestScoresAlwaysInRange(t *testing.T) {
	require := require.New(t)

	cfg := DefaultConfig(testRef)
	spends := []float64{0, 1, 499.99, 500, 2000, 4999, 5000, 9999.99, 10000, 250000}
	orderCounts := []int{1, 4, 5, 9, 10, 14, 15, 19, 20, 100}
	lags := []int{0, 29, 30, 31, 89, 91, 179, 181, 400}

	for _, s := range spends {
		for _, n := range orderCounts {
			for _, lag := range lags {
				m := metricsWith(s, n, testRef.AddDate(0, 0, -lag))
				score := ScoreRFM(m, cfg)
				require.GreaterOrEqual(score.RecencyScore, 1)
				require.LessOrEqual(score.RecencyScore, 5)
				require.GreaterOrEqual(score.FrequencyScore, 1)
				require.LessOrEqual(score.FrequencyScore, 5)
				require.GreaterOrEqual(score.MonetaryScore, 1)
				require.LessOrEqual(score.MonetaryScore, 5)
			}
		}
	}
}
