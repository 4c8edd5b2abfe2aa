package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestEstimateCustomerValueFormula(t *testing.T) {
	require := require.New(t)
	cfg := DefaultConfig(testRef)

	m := CustomerMetrics{
		CustomerID:     "C1",
		TotalOrders:    10,
		TotalSpent:     decimal.NewFromInt(2000),
		AvgOrderValue:  decimal.NewFromInt(200),
		FirstOrderDate: testRef.AddDate(0, 0, -365),
		LastOrderDate:  testRef.AddDate(0, 0, -10),
	}
	score := ScoreRFM(m, cfg)
	value := EstimateCustomerValue(m, score, SegmentLoyalCustomers, cfg)

	// 200 * 10 * (365/365) = 2000
	require.True(value.EstimatedCLV.Equal(decimal.NewFromInt(2000)), "got %s", value.EstimatedCLV)
	require.Equal(365, value.CustomerAgeDays)
	// 10 / (365/30)
	require.InDelta(10.0/(365.0/30.0), value.MonthlyPurchaseFrequency, 1e-9)
	require.Equal("Active", value.ActivityStatus)
	require.Equal(6, value.GrowthPotentialScore)
}

func TestMonthlyFrequencyFloorsDenominator(t *testing.T) {
	require := require.New(t)
	cfg := DefaultConfig(testRef)

	// First order on the reference day: age 0 would blow up the ratio; the
	// denominator floors at 1.
	m := CustomerMetrics{
		CustomerID:     "C1",
		TotalOrders:    3,
		TotalSpent:     decimal.NewFromInt(300),
		AvgOrderValue:  decimal.NewFromInt(100),
		FirstOrderDate: testRef,
		LastOrderDate:  testRef,
	}
	score := ScoreRFM(m, cfg)
	value := EstimateCustomerValue(m, score, SegmentNewCustomers, cfg)
	require.Equal(0, value.CustomerAgeDays)
	require.InDelta(3.0, value.MonthlyPurchaseFrequency, 1e-9)
	require.True(value.EstimatedCLV.IsZero())
}

func TestActivityStatusLadder(t *testing.T) {
	require := require.New(t)
	cfg := DefaultConfig(testRef)

	cases := []struct {
		lastOrder time.Time
		want      string
	}{
		{testRef.AddDate(0, 0, -10), "Active"},
		{testRef.AddDate(0, 0, -30), "Active"},
		{testRef.AddDate(0, 0, -31), "At Risk"},
		{testRef.AddDate(0, 0, -90), "At Risk"},
		{testRef.AddDate(0, 0, -91), "Inactive"},
		{testRef.AddDate(0, 0, -180), "Inactive"},
		{testRef.AddDate(0, 0, -181), "Lost"},
	}
	for _, tc := range cases {
		m := CustomerMetrics{
			TotalOrders:    1,
			TotalSpent:     decimal.NewFromInt(100),
			AvgOrderValue:  decimal.NewFromInt(100),
			FirstOrderDate: tc.lastOrder,
			LastOrderDate:  tc.lastOrder,
		}
		score := ScoreRFM(m, cfg)
		value := EstimateCustomerValue(m, score, SegmentOthers, cfg)
		require.Equal(tc.want, value.ActivityStatus, "last order %s", tc.lastOrder)
	}
}

func TestGrowthPotentialLookup(t *testing.T) {
	require := require.New(t)
	cfg := DefaultConfig(testRef)

	m := CustomerMetrics{
		TotalOrders:    1,
		TotalSpent:     decimal.NewFromInt(100),
		AvgOrderValue:  decimal.NewFromInt(100),
		FirstOrderDate: testRef.AddDate(0, 0, -60),
		LastOrderDate:  testRef.AddDate(0, 0, -60),
	}
	score := ScoreRFM(m, cfg)

	require.Equal(10, EstimateCustomerValue(m, score, SegmentPotentialLoyalists, cfg).GrowthPotentialScore)
	require.Equal(1, EstimateCustomerValue(m, score, SegmentOthers, cfg).GrowthPotentialScore)
	// Unknown segment falls back to the middle of the range.
	require.Equal(5, EstimateCustomerValue(m, score, "Unmapped", cfg).GrowthPotentialScore)
}
