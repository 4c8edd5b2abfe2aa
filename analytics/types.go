package analytics

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusCompleted OrderStatus = "completed"
	StatusPending   OrderStatus = "pending"
	StatusCancelled OrderStatus = "cancelled"
)

// OrderRecord is the normalized input contract. Extractors produce it, the
// pipeline consumes it; it is never mutated.
type OrderRecord struct {
	CustomerID string
	ProductID  string
	OrderDate  time.Time
	OrderValue decimal.Decimal
	Quantity   int
	Discount   decimal.Decimal
	Status     OrderStatus
}

// Granularity selects the truncation unit for time bucketing.
type Granularity string

const (
	Daily   Granularity = "daily"
	Weekly  Granularity = "weekly"
	Monthly Granularity = "monthly"
)

// Config carries every knob the pipeline consumes. ReferenceDate replaces any
// implicit "now": all windows and recency math are anchored to it so a run is
// replayable.
type Config struct {
	ReferenceDate       time.Time
	CustomerWindowDays  int
	DailyWindowDays     int
	WeeklyWindowWeeks   int
	MonthlyWindowMonths int
	HighValueThreshold  decimal.Decimal
	FailFast            bool
}

// DefaultConfig returns the standard windows anchored at ref.
func DefaultConfig(ref time.Time) Config {
	return Config{
		ReferenceDate:       ref,
		CustomerWindowDays:  365,
		DailyWindowDays:     90,
		WeeklyWindowWeeks:   12,
		MonthlyWindowMonths: 12,
		HighValueThreshold:  decimal.NewFromInt(1000),
	}
}

// CustomerMetrics is the per-customer aggregate over the trailing customer
// window. Recomputed wholesale every run.
type CustomerMetrics struct {
	CustomerID       string
	TotalOrders      int
	TotalSpent       decimal.Decimal
	AvgOrderValue    decimal.Decimal
	FirstOrderDate   time.Time
	LastOrderDate    time.Time
	TotalQuantity    int
	DistinctProducts int
}

// RFMScore holds the three sub-scores plus the concatenated code ("545").
type RFMScore struct {
	RecencyDays    int
	RecencyScore   int
	FrequencyScore int
	MonetaryScore  int
	Code           string
}

// CustomerValue is the lifetime-value estimate block.
type CustomerValue struct {
	EstimatedCLV             decimal.Decimal
	MonthlyPurchaseFrequency float64
	CustomerAgeDays          int
	ActivityStatus           string
	GrowthPotentialScore     int
}

// TimeBucket is one aggregated period (day, ISO week, or month). Buckets are
// sparse: a period with no orders simply does not exist.
type TimeBucket struct {
	Period      time.Time
	Granularity Granularity

	TotalOrders     int
	TotalRevenue    decimal.Decimal
	AvgOrderValue   decimal.Decimal
	UniqueCustomers int
	TotalQuantity   int
	TotalDiscount   decimal.Decimal
	NetRevenue      decimal.Decimal

	CompletedOrders  int
	PendingOrders    int
	CancelledOrders  int
	CompletedRevenue decimal.Decimal
	PendingRevenue   decimal.Decimal
	CancelledRevenue decimal.Decimal

	HighValueOrders  int
	HighValueRevenue decimal.Decimal
}

// TrendPoint extends a daily bucket with lagged values, trailing moving
// averages and performance labels. Pointer fields are nil where the value is
// undefined (first bucket, zero denominator) rather than zero.
type TrendPoint struct {
	TimeBucket

	PrevRevenue *decimal.Decimal
	PrevOrders  *int

	RevenueMA7  decimal.Decimal
	RevenueMA30 decimal.Decimal
	OrdersMA7   float64
	OrdersMA30  float64

	RevenueGrowthPct *decimal.Decimal
	OrdersGrowthPct  *float64

	RevenuePerformance string
	OrdersPerformance  string
	PerformanceScore   int
}

// CustomerAnalyticsRow is the flat per-customer output row (Output A).
type CustomerAnalyticsRow struct {
	CustomerID       string
	TotalOrders      int
	TotalSpent       decimal.Decimal
	AvgOrderValue    decimal.Decimal
	FirstOrderDate   time.Time
	LastOrderDate    time.Time
	TotalQuantity    int
	DistinctProducts int

	RecencyDays    int
	RecencyScore   int
	FrequencyScore int
	MonetaryScore  int
	RFMCode        string

	Segment          string
	ValueTier        string
	PurchaseBehavior string

	EstimatedCLV             decimal.Decimal
	MonthlyPurchaseFrequency float64
	CustomerAgeDays          int
	ActivityStatus           string
	GrowthPotentialScore     int

	GeneratedAt time.Time
}

// SalesTrendRow is the flat per-day output row (Output B).
type SalesTrendRow struct {
	TrendPoint
	GeneratedAt time.Time
}

// Result is everything one run produces.
type Result struct {
	CustomerAnalytics []CustomerAnalyticsRow
	SalesTrend        []SalesTrendRow
	WeeklyBuckets     []TimeBucket
	MonthlyBuckets    []TimeBucket

	InputRecords   int
	SkippedRecords int
}
