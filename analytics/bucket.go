package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"orderpulse-backend/utils"
)

// AggregateBuckets groups orders into periods of the given granularity over
// that granularity's trailing window. One algorithm serves all three tiers;
// only the truncation unit and window length differ. Periods with no orders
// produce no bucket — the sequence is sparse, never zero-filled. Output is
// sorted ascending by period, which downstream windowed statistics rely on.
func AggregateBuckets(orders []OrderRecord, g Granularity, cfg Config) []TimeBucket {
	start := bucketWindowStart(g, cfg)

	type group struct {
		bucket    TimeBucket
		customers map[string]struct{}
	}
	groups := make(map[time.Time]*group)

	for _, o := range orders {
		if !inWindow(o.OrderDate, start, cfg.ReferenceDate) {
			continue
		}
		period := truncate(o.OrderDate, g)
		grp, ok := groups[period]
		if !ok {
			grp = &group{
				bucket:    TimeBucket{Period: period, Granularity: g},
				customers: make(map[string]struct{}),
			}
			groups[period] = grp
		}
		b := &grp.bucket
		b.TotalOrders++
		b.TotalRevenue = b.TotalRevenue.Add(o.OrderValue)
		b.TotalQuantity += o.Quantity
		b.TotalDiscount = b.TotalDiscount.Add(o.Discount)
		grp.customers[o.CustomerID] = struct{}{}

		switch o.Status {
		case StatusCompleted:
			b.CompletedOrders++
			b.CompletedRevenue = b.CompletedRevenue.Add(o.OrderValue)
		case StatusPending:
			b.PendingOrders++
			b.PendingRevenue = b.PendingRevenue.Add(o.OrderValue)
		case StatusCancelled:
			b.CancelledOrders++
			b.CancelledRevenue = b.CancelledRevenue.Add(o.OrderValue)
		}

		if o.OrderValue.GreaterThan(cfg.HighValueThreshold) {
			b.HighValueOrders++
			b.HighValueRevenue = b.HighValueRevenue.Add(o.OrderValue)
		}
	}

	buckets := make([]TimeBucket, 0, len(groups))
	for _, grp := range groups {
		b := grp.bucket
		b.AvgOrderValue = b.TotalRevenue.Div(decimal.NewFromInt(int64(b.TotalOrders)))
		b.UniqueCustomers = len(grp.customers)
		b.NetRevenue = b.TotalRevenue.Sub(b.TotalDiscount)
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Period.Before(buckets[j].Period)
	})
	return buckets
}

func bucketWindowStart(g Granularity, cfg Config) time.Time {
	switch g {
	case Weekly:
		return cfg.ReferenceDate.AddDate(0, 0, -7*cfg.WeeklyWindowWeeks)
	case Monthly:
		return cfg.ReferenceDate.AddDate(0, -cfg.MonthlyWindowMonths, 0)
	default:
		return cfg.ReferenceDate.AddDate(0, 0, -cfg.DailyWindowDays)
	}
}

func truncate(t time.Time, g Granularity) time.Time {
	switch g {
	case Weekly:
		return utils.BeginningOfWeek(t)
	case Monthly:
		return utils.BeginningOfMonth(t)
	default:
		return utils.BeginningOfDay(t)
	}
}
