package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesTrend is one row of the daily sales trend fact table. Nullable columns
// stay NULL where the underlying statistic is undefined (first day, zero
// denominator) instead of storing a misleading zero.
type SalesTrend struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	RunID uuid.UUID `gorm:"type:uuid;index;not null" json:"runId"`

	Date time.Time `gorm:"index;not null" json:"date"`

	TotalOrders     int             `json:"totalOrders"`
	TotalRevenue    decimal.Decimal `gorm:"type:decimal(14,2)" json:"totalRevenue"`
	AvgOrderValue   decimal.Decimal `gorm:"type:decimal(14,2)" json:"avgOrderValue"`
	UniqueCustomers int             `json:"uniqueCustomers"`
	TotalQuantity   int             `json:"totalQuantity"`
	TotalDiscount   decimal.Decimal `gorm:"type:decimal(14,2)" json:"totalDiscount"`
	NetRevenue      decimal.Decimal `gorm:"type:decimal(14,2)" json:"netRevenue"`

	CompletedOrders  int             `json:"completedOrders"`
	PendingOrders    int             `json:"pendingOrders"`
	CancelledOrders  int             `json:"cancelledOrders"`
	CompletedRevenue decimal.Decimal `gorm:"type:decimal(14,2)" json:"completedRevenue"`
	PendingRevenue   decimal.Decimal `gorm:"type:decimal(14,2)" json:"pendingRevenue"`
	CancelledRevenue decimal.Decimal `gorm:"type:decimal(14,2)" json:"cancelledRevenue"`

	HighValueOrders  int             `json:"highValueOrders"`
	HighValueRevenue decimal.Decimal `gorm:"type:decimal(14,2)" json:"highValueRevenue"`

	PrevRevenue *decimal.Decimal `gorm:"type:decimal(14,2)" json:"prevRevenue"`
	PrevOrders  *int             `json:"prevOrders"`

	RevenueMA7  decimal.Decimal `gorm:"column:revenue_ma7;type:decimal(14,2)" json:"revenueMa7"`
	RevenueMA30 decimal.Decimal `gorm:"column:revenue_ma30;type:decimal(14,2)" json:"revenueMa30"`
	OrdersMA7   float64         `gorm:"column:orders_ma7" json:"ordersMa7"`
	OrdersMA30  float64         `gorm:"column:orders_ma30" json:"ordersMa30"`

	RevenueGrowthPct *decimal.Decimal `gorm:"type:decimal(10,2)" json:"revenueGrowthPct"`
	OrdersGrowthPct  *float64         `json:"ordersGrowthPct"`

	RevenuePerformance string `json:"revenuePerformance"`
	OrdersPerformance  string `json:"ordersPerformance"`
	PerformanceScore   int    `json:"performanceScore"`

	GeneratedAt time.Time `json:"generatedAt"`
}

func (SalesTrend) TableName() string {
	return "fact_sales_trend"
}

// PeriodSummary holds the weekly and monthly aggregation tiers, one row per
// period per granularity.
type PeriodSummary struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	RunID uuid.UUID `gorm:"type:uuid;index;not null" json:"runId"`

	Granularity string    `gorm:"index;not null" json:"granularity"`
	PeriodStart time.Time `gorm:"index;not null" json:"periodStart"`

	TotalOrders     int             `json:"totalOrders"`
	TotalRevenue    decimal.Decimal `gorm:"type:decimal(14,2)" json:"totalRevenue"`
	AvgOrderValue   decimal.Decimal `gorm:"type:decimal(14,2)" json:"avgOrderValue"`
	UniqueCustomers int             `json:"uniqueCustomers"`
	TotalQuantity   int             `json:"totalQuantity"`
	NetRevenue      decimal.Decimal `gorm:"type:decimal(14,2)" json:"netRevenue"`

	GeneratedAt time.Time `json:"generatedAt"`
}

func (PeriodSummary) TableName() string {
	return "fact_period_summary"
}
