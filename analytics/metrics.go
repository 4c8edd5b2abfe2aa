package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// AggregateCustomerMetrics groups orders by customer over the trailing
// customer window and computes the per-customer aggregates. Customers with no
// orders in the window are simply absent. Output is sorted by customer ID so
// downstream stages see a stable order.
func AggregateCustomerMetrics(orders []OrderRecord, cfg Config) []CustomerMetrics {
	cutoff := cfg.ReferenceDate.AddDate(0, 0, -cfg.CustomerWindowDays)

	type group struct {
		metrics  CustomerMetrics
		products map[string]struct{}
	}
	groups := make(map[string]*group)

	for _, o := range orders {
		if !inWindow(o.OrderDate, cutoff, cfg.ReferenceDate) {
			continue
		}
		g, ok := groups[o.CustomerID]
		if !ok {
			g = &group{
				metrics: CustomerMetrics{
					CustomerID:     o.CustomerID,
					FirstOrderDate: o.OrderDate,
					LastOrderDate:  o.OrderDate,
				},
				products: make(map[string]struct{}),
			}
			groups[o.CustomerID] = g
		}
		g.metrics.TotalOrders++
		g.metrics.TotalSpent = g.metrics.TotalSpent.Add(o.OrderValue)
		g.metrics.TotalQuantity += o.Quantity
		if o.OrderDate.Before(g.metrics.FirstOrderDate) {
			g.metrics.FirstOrderDate = o.OrderDate
		}
		if o.OrderDate.After(g.metrics.LastOrderDate) {
			g.metrics.LastOrderDate = o.OrderDate
		}
		if o.ProductID != "" {
			g.products[o.ProductID] = struct{}{}
		}
	}

	result := make([]CustomerMetrics, 0, len(groups))
	for _, g := range groups {
		m := g.metrics
		m.AvgOrderValue = m.TotalSpent.Div(decimal.NewFromInt(int64(m.TotalOrders)))
		m.DistinctProducts = len(g.products)
		result = append(result, m)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CustomerID < result[j].CustomerID
	})
	return result
}

// inWindow reports whether t falls in [start, end], inclusive on both ends.
func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// wholeDaysBetween returns the floor of the day difference end-start.
func wholeDaysBetween(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}
