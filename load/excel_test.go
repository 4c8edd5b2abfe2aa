package load

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"orderpulse-backend/analytics"
)

func TestExportWorkbook(t *testing.T) {
	require := require.New(t)

	ref := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	growth := decimal.RequireFromString("25.00")
	res := &analytics.Result{
		CustomerAnalytics: []analytics.CustomerAnalyticsRow{
			{
				CustomerID:     "C1",
				TotalOrders:    5,
				TotalSpent:     decimal.NewFromInt(2500),
				AvgOrderValue:  decimal.NewFromInt(500),
				FirstOrderDate: ref.AddDate(0, -6, 0),
				LastOrderDate:  ref.AddDate(0, 0, -3),
				RFMCode:        "523",
				Segment:        analytics.SegmentPotentialLoyalists,
				ValueTier:      "Medium",
				GeneratedAt:    ref,
			},
		},
		SalesTrend: []analytics.SalesTrendRow{
			{
				TrendPoint: analytics.TrendPoint{
					TimeBucket: analytics.TimeBucket{
						Period:       ref.AddDate(0, 0, -1),
						Granularity:  analytics.Daily,
						TotalOrders:  3,
						TotalRevenue: decimal.NewFromInt(750),
					},
					RevenueGrowthPct:   &growth,
					RevenuePerformance: analytics.PerfAverage,
					OrdersPerformance:  analytics.PerfAverage,
					PerformanceScore:   6,
				},
				GeneratedAt: ref,
			},
		},
		InputRecords: 8,
	}

	path, err := ExportWorkbook(res, ref, t.TempDir(), zap.NewNop())
	require.NoError(err)
	require.FileExists(path)

	f, err := excelize.OpenFile(path)
	require.NoError(err)
	defer f.Close()

	require.ElementsMatch([]string{"Customer Analytics", "Sales Trend", "Summary"}, f.GetSheetList())

	id, err := f.GetCellValue("Customer Analytics", "A2")
	require.NoError(err)
	require.Equal("C1", id)

	segment, err := f.GetCellValue("Customer Analytics", "N2")
	require.NoError(err)
	require.Equal(analytics.SegmentPotentialLoyalists, segment)

	date, err := f.GetCellValue("Sales Trend", "A2")
	require.NoError(err)
	require.Equal("2025-06-14", date)
}
