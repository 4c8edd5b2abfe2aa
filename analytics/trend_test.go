package analytics

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// revenueBuckets builds an ascending daily sequence with the given revenues,
// one order per bucket.
func revenueBuckets(revenues ...float64) []TimeBucket {
	buckets := make([]TimeBucket, 0, len(revenues))
	for i, rev := range revenues {
		buckets = append(buckets, TimeBucket{
			Period:       testRef.AddDate(0, 0, i-len(revenues)),
			Granularity:  Daily,
			TotalOrders:  1,
			TotalRevenue: decimal.NewFromFloat(rev),
		})
	}
	return buckets
}

func TestAnalyzeTrendFirstBucket(t *testing.T) {
	require := require.New(t)

	points := AnalyzeTrend(revenueBuckets(500))
	require.Len(points, 1)

	p := points[0]
	require.Nil(p.PrevRevenue)
	require.Nil(p.PrevOrders)
	require.Nil(p.RevenueGrowthPct)
	require.Nil(p.OrdersGrowthPct)
	// Truncated window: the 7-day average of the first bucket is its own
	// value, never padded with zeros.
	require.True(p.RevenueMA7.Equal(decimal.NewFromInt(500)))
	require.True(p.RevenueMA30.Equal(decimal.NewFromInt(500)))
	require.Equal(PerfAverage, p.RevenuePerformance)
}

func TestAnalyzeTrendSpikeScenario(t *testing.T) {
	require := require.New(t)

	// Seven flat days then a double day: day 8's trailing 7-day average is
	// (100*6+200)/7, and against the previous flat window the growth is 100%.
	points := AnalyzeTrend(revenueBuckets(100, 100, 100, 100, 100, 100, 100, 200))
	require.Len(points, 8)

	day7 := points[6]
	require.True(day7.RevenueMA7.Equal(decimal.NewFromInt(100)))

	day8 := points[7]
	require.True(day8.PrevRevenue.Equal(decimal.NewFromInt(100)))
	require.NotNil(day8.RevenueGrowthPct)
	require.True(day8.RevenueGrowthPct.Equal(decimal.NewFromInt(100)), "got %s", day8.RevenueGrowthPct)
	// 200 > 1.1 * MA7 (window includes the 200 itself: MA7 = 800/7 ~ 114.29)
	require.Equal(PerfAboveAverage, day8.RevenuePerformance)
	require.Equal(PerfAverage, day8.OrdersPerformance)
	require.Equal(8, day8.PerformanceScore)
}

func TestAnalyzeTrendZeroPreviousRevenue(t *testing.T) {
	require := require.New(t)

	points := AnalyzeTrend(revenueBuckets(0, 150))
	require.Len(points, 2)

	second := points[1]
	require.NotNil(second.PrevRevenue)
	require.True(second.PrevRevenue.IsZero())
	// Zero base: growth undefined, not infinite.
	require.Nil(second.RevenueGrowthPct)
	require.NotNil(second.OrdersGrowthPct)
}

func TestAnalyzeTrendGrowthRounding(t *testing.T) {
	require := require.New(t)

	points := AnalyzeTrend(revenueBuckets(300, 400))
	growth := points[1].RevenueGrowthPct
	require.NotNil(growth)
	require.True(growth.Equal(decimal.RequireFromString("33.33")), "got %s", growth)
}

func TestAnalyzeTrendMovingAverageWindow(t *testing.T) {
	require := require.New(t)

	revenues := make([]float64, 40)
	for i := range revenues {
		revenues[i] = float64((i + 1) * 10)
	}
	points := AnalyzeTrend(revenueBuckets(revenues...))

	// Position 39 (1-based value 400): MA7 = mean(340..400) = 370,
	// MA30 = mean(110..400) = 255.
	last := points[39]
	require.True(last.RevenueMA7.Equal(decimal.NewFromInt(370)), "got %s", last.RevenueMA7)
	require.True(last.RevenueMA30.Equal(decimal.NewFromInt(255)), "got %s", last.RevenueMA30)

	// Position 3: truncated 7-window covers all 4 buckets.
	require.True(points[3].RevenueMA7.Equal(decimal.NewFromInt(25)))
}

func TestClassifyPerformanceTable(t *testing.T) {
	require := require.New(t)

	cases := []struct {
		rev, ord string
		score    int
	}{
		{PerfAboveAverage, PerfAboveAverage, 10},
		{PerfAboveAverage, PerfAverage, 8},
		{PerfAboveAverage, PerfBelowAverage, 8},
		{PerfAverage, PerfAboveAverage, 8},
		{PerfAverage, PerfAverage, 6},
		{PerfAverage, PerfBelowAverage, 4},
		{PerfBelowAverage, PerfAverage, 4},
		{PerfBelowAverage, PerfBelowAverage, 4},
	}
	for _, tc := range cases {
		require.Equal(tc.score, ClassifyPerformance(tc.rev, tc.ord), "%s/%s", tc.rev, tc.ord)
	}
}

func BenchmarkAnalyzeTrend(b *testing.B) {
	revenues := make([]float64, 90)
	for i := range revenues {
		revenues[i] = float64(100 + i%13*37)
	}
	buckets := revenueBuckets(revenues...)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		AnalyzeTrend(buckets)
	}
}
