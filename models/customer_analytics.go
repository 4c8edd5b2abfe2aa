package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerAnalytics is one row of the customer segmentation fact table.
// Derived data: the table is fully rebuilt from source orders on every run.
type CustomerAnalytics struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	RunID uuid.UUID `gorm:"type:uuid;index;not null" json:"runId"`

	CustomerID       string          `gorm:"index;not null" json:"customerId"`
	TotalOrders      int             `json:"totalOrders"`
	TotalSpent       decimal.Decimal `gorm:"type:decimal(14,2)" json:"totalSpent"`
	AvgOrderValue    decimal.Decimal `gorm:"type:decimal(14,2)" json:"avgOrderValue"`
	FirstOrderDate   time.Time       `json:"firstOrderDate"`
	LastOrderDate    time.Time       `json:"lastOrderDate"`
	TotalQuantity    int             `json:"totalQuantity"`
	DistinctProducts int             `json:"distinctProducts"`

	RecencyDays    int    `json:"recencyDays"`
	RecencyScore   int    `json:"recencyScore"`
	FrequencyScore int    `json:"frequencyScore"`
	MonetaryScore  int    `json:"monetaryScore"`
	RFMCode        string `gorm:"column:rfm_code" json:"rfmCode"`

	Segment          string `gorm:"index" json:"segment"`
	ValueTier        string `json:"valueTier"`
	PurchaseBehavior string `json:"purchaseBehavior"`

	EstimatedCLV             decimal.Decimal `gorm:"column:estimated_clv;type:decimal(14,2)" json:"estimatedClv"`
	MonthlyPurchaseFrequency float64         `json:"monthlyPurchaseFrequency"`
	CustomerAgeDays          int             `json:"customerAgeDays"`
	ActivityStatus           string          `json:"activityStatus"`
	GrowthPotentialScore     int             `json:"growthPotentialScore"`

	GeneratedAt time.Time `json:"generatedAt"`
}

func (CustomerAnalytics) TableName() string {
	return "fact_customer_analytics"
}
