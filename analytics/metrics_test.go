package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func order(customer, product string, date time.Time, value float64, qty int) OrderRecord {
	return OrderRecord{
		CustomerID: customer,
		ProductID:  product,
		OrderDate:  date,
		OrderValue: decimal.NewFromFloat(value),
		Quantity:   qty,
		Status:     StatusCompleted,
	}
}

func TestAggregateCustomerMetricsGrouping(t *testing.T) {
	require := require.New(t)
	cfg := DefaultConfig(testRef)

	orders := []OrderRecord{
		order("C1", "P1", testRef.AddDate(0, 0, -10), 100, 2),
		order("C1", "P2", testRef.AddDate(0, 0, -5), 200, 1),
		order("C1", "P1", testRef.AddDate(0, 0, -1), 300, 3),
		order("C2", "P3", testRef.AddDate(0, 0, -20), 50, 1),
	}

	metrics := AggregateCustomerMetrics(orders, cfg)
	require.Len(metrics, 2)

	c1 := metrics[0]
	require.Equal("C1", c1.CustomerID)
	require.Equal(3, c1.TotalOrders)
	require.True(c1.TotalSpent.Equal(decimal.NewFromInt(600)))
	require.True(c1.AvgOrderValue.Equal(decimal.NewFromInt(200)))
	require.Equal(6, c1.TotalQuantity)
	require.Equal(2, c1.DistinctProducts)
	require.Equal(testRef.AddDate(0, 0, -10), c1.FirstOrderDate)
	require.Equal(testRef.AddDate(0, 0, -1), c1.LastOrderDate)

	c2 := metrics[1]
	require.Equal("C2", c2.CustomerID)
	require.Equal(1, c2.TotalOrders)
	require.Equal(1, c2.DistinctProducts)
}

func TestAggregateCustomerMetricsWindowFilter(t *testing.T) {
	require := require.New(t)
	cfg := DefaultConfig(testRef)

	orders := []OrderRecord{
		order("C1", "P1", testRef.AddDate(0, 0, -400), 1000, 1), // outside 1-year window
		order("C1", "P1", testRef.AddDate(0, 0, -10), 100, 1),
		order("C2", "P1", testRef.AddDate(-2, 0, 0), 9999, 1), // entirely stale customer
	}

	metrics := AggregateCustomerMetrics(orders, cfg)
	require.Len(metrics, 1)
	require.Equal("C1", metrics[0].CustomerID)
	require.Equal(1, metrics[0].TotalOrders)
	require.True(metrics[0].TotalSpent.Equal(decimal.NewFromInt(100)))
}

func TestAggregateCustomerMetricsEmptyInput(t *testing.T) {
	require := require.New(t)
	metrics := AggregateCustomerMetrics(nil, DefaultConfig(testRef))
	require.Empty(metrics)
}
