// Package load persists pipeline results: fact tables in the warehouse and
// the Excel report workbook.
package load

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"orderpulse-backend/analytics"
	"orderpulse-backend/models"
)

const insertBatchSize = 500

type WarehouseLoader struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewWarehouseLoader(db *gorm.DB, logger *zap.Logger) *WarehouseLoader {
	return &WarehouseLoader{db: db, logger: logger}
}

// LoadResult replaces the fact tables with the given run's output. Full
// refresh in a single transaction: readers never see a half-written run.
func (l *WarehouseLoader) LoadResult(runID uuid.UUID, res *analytics.Result) error {
	err := l.db.Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{
			models.CustomerAnalytics{}.TableName(),
			models.SalesTrend{}.TableName(),
			models.PeriodSummary{}.TableName(),
		} {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}

		customers := make([]models.CustomerAnalytics, 0, len(res.CustomerAnalytics))
		for _, row := range res.CustomerAnalytics {
			customers = append(customers, toCustomerModel(runID, row))
		}
		if len(customers) > 0 {
			if err := tx.CreateInBatches(customers, insertBatchSize).Error; err != nil {
				return fmt.Errorf("insert customer analytics: %w", err)
			}
		}

		trends := make([]models.SalesTrend, 0, len(res.SalesTrend))
		for _, row := range res.SalesTrend {
			trends = append(trends, toTrendModel(runID, row))
		}
		if len(trends) > 0 {
			if err := tx.CreateInBatches(trends, insertBatchSize).Error; err != nil {
				return fmt.Errorf("insert sales trend: %w", err)
			}
		}

		summaries := make([]models.PeriodSummary, 0, len(res.WeeklyBuckets)+len(res.MonthlyBuckets))
		for _, b := range res.WeeklyBuckets {
			summaries = append(summaries, toSummaryModel(runID, b))
		}
		for _, b := range res.MonthlyBuckets {
			summaries = append(summaries, toSummaryModel(runID, b))
		}
		if len(summaries) > 0 {
			if err := tx.CreateInBatches(summaries, insertBatchSize).Error; err != nil {
				return fmt.Errorf("insert period summaries: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	l.logger.Info("warehouse load complete",
		zap.String("run_id", runID.String()),
		zap.Int("customer_rows", len(res.CustomerAnalytics)),
		zap.Int("trend_rows", len(res.SalesTrend)))
	return nil
}

func toCustomerModel(runID uuid.UUID, row analytics.CustomerAnalyticsRow) models.CustomerAnalytics {
	return models.CustomerAnalytics{
		ID:    uuid.New(),
		RunID: runID,

		CustomerID:       row.CustomerID,
		TotalOrders:      row.TotalOrders,
		TotalSpent:       row.TotalSpent,
		AvgOrderValue:    row.AvgOrderValue,
		FirstOrderDate:   row.FirstOrderDate,
		LastOrderDate:    row.LastOrderDate,
		TotalQuantity:    row.TotalQuantity,
		DistinctProducts: row.DistinctProducts,

		RecencyDays:    row.RecencyDays,
		RecencyScore:   row.RecencyScore,
		FrequencyScore: row.FrequencyScore,
		MonetaryScore:  row.MonetaryScore,
		RFMCode:        row.RFMCode,

		Segment:          row.Segment,
		ValueTier:        row.ValueTier,
		PurchaseBehavior: row.PurchaseBehavior,

		EstimatedCLV:             row.EstimatedCLV,
		MonthlyPurchaseFrequency: row.MonthlyPurchaseFrequency,
		CustomerAgeDays:          row.CustomerAgeDays,
		ActivityStatus:           row.ActivityStatus,
		GrowthPotentialScore:     row.GrowthPotentialScore,

		GeneratedAt: row.GeneratedAt,
	}
}

func toTrendModel(runID uuid.UUID, row analytics.SalesTrendRow) models.SalesTrend {
	return models.SalesTrend{
		ID:    uuid.New(),
		RunID: runID,

		Date: row.Period,

		TotalOrders:     row.TotalOrders,
		TotalRevenue:    row.TotalRevenue,
		AvgOrderValue:   row.AvgOrderValue,
		UniqueCustomers: row.UniqueCustomers,
		TotalQuantity:   row.TotalQuantity,
		TotalDiscount:   row.TotalDiscount,
		NetRevenue:      row.NetRevenue,

		CompletedOrders:  row.CompletedOrders,
		PendingOrders:    row.PendingOrders,
		CancelledOrders:  row.CancelledOrders,
		CompletedRevenue: row.CompletedRevenue,
		PendingRevenue:   row.PendingRevenue,
		CancelledRevenue: row.CancelledRevenue,

		HighValueOrders:  row.HighValueOrders,
		HighValueRevenue: row.HighValueRevenue,

		PrevRevenue: row.PrevRevenue,
		PrevOrders:  row.PrevOrders,

		RevenueMA7:  row.RevenueMA7,
		RevenueMA30: row.RevenueMA30,
		OrdersMA7:   row.OrdersMA7,
		OrdersMA30:  row.OrdersMA30,

		RevenueGrowthPct: row.RevenueGrowthPct,
		OrdersGrowthPct:  row.OrdersGrowthPct,

		RevenuePerformance: row.RevenuePerformance,
		OrdersPerformance:  row.OrdersPerformance,
		PerformanceScore:   row.PerformanceScore,

		GeneratedAt: row.GeneratedAt,
	}
}

func toSummaryModel(runID uuid.UUID, b analytics.TimeBucket) models.PeriodSummary {
	return models.PeriodSummary{
		ID:    uuid.New(),
		RunID: runID,

		Granularity: string(b.Granularity),
		PeriodStart: b.Period,

		TotalOrders:     b.TotalOrders,
		TotalRevenue:    b.TotalRevenue,
		AvgOrderValue:   b.AvgOrderValue,
		UniqueCustomers: b.UniqueCustomers,
		TotalQuantity:   b.TotalQuantity,
		NetRevenue:      b.NetRevenue,
	}
}
