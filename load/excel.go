package load

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"orderpulse-backend/analytics"
)

const (
	sheetCustomers = "Customer Analytics"
	sheetTrend     = "Sales Trend"
	sheetSummary   = "Summary"
)

var customerHeaders = []interface{}{
	"Customer ID", "Total Orders", "Total Spent", "Avg Order Value",
	"First Order", "Last Order", "Total Quantity", "Distinct Products",
	"Recency Days", "R", "F", "M", "RFM Code",
	"Segment", "Value Tier", "Purchase Behavior",
	"Estimated CLV", "Monthly Frequency", "Age Days", "Activity Status", "Growth Potential",
}

var trendHeaders = []interface{}{
	"Date", "Total Orders", "Total Revenue", "Avg Order Value", "Unique Customers",
	"Total Quantity", "Total Discount", "Net Revenue",
	"Completed", "Pending", "Cancelled",
	"High-Value Orders", "High-Value Revenue",
	"Prev Revenue", "Revenue MA7", "Revenue MA30",
	"Revenue Growth %", "Orders Growth %",
	"Revenue Performance", "Orders Performance", "Performance Score",
}

// ExportWorkbook renders the run's two result sets into a timestamped Excel
// workbook under dir and returns the file path.
func ExportWorkbook(res *analytics.Result, generatedAt time.Time, dir string, logger *zap.Logger) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetCustomers)
	if _, err := f.NewSheet(sheetTrend); err != nil {
		return "", err
	}
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return "", err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return "", err
	}

	if err := writeCustomerSheet(f, res, headerStyle); err != nil {
		return "", err
	}
	if err := writeTrendSheet(f, res, headerStyle); err != nil {
		return "", err
	}
	if err := writeSummarySheet(f, res, generatedAt, headerStyle); err != nil {
		return "", err
	}

	path := filepath.Join(dir, fmt.Sprintf("daily_analytics_%s.xlsx", generatedAt.Format("20060102_150405")))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}
	logger.Info("excel report written", zap.String("path", path))
	return path, nil
}

func writeCustomerSheet(f *excelize.File, res *analytics.Result, headerStyle int) error {
	if err := setHeaderRow(f, sheetCustomers, customerHeaders, headerStyle); err != nil {
		return err
	}
	for i, row := range res.CustomerAnalytics {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{
			row.CustomerID, row.TotalOrders, row.TotalSpent.InexactFloat64(), row.AvgOrderValue.Round(2).InexactFloat64(),
			row.FirstOrderDate.Format("2006-01-02"), row.LastOrderDate.Format("2006-01-02"),
			row.TotalQuantity, row.DistinctProducts,
			row.RecencyDays, row.RecencyScore, row.FrequencyScore, row.MonetaryScore, row.RFMCode,
			row.Segment, row.ValueTier, row.PurchaseBehavior,
			row.EstimatedCLV.InexactFloat64(), row.MonthlyPurchaseFrequency, row.CustomerAgeDays,
			row.ActivityStatus, row.GrowthPotentialScore,
		}
		if err := f.SetSheetRow(sheetCustomers, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

func writeTrendSheet(f *excelize.File, res *analytics.Result, headerStyle int) error {
	if err := setHeaderRow(f, sheetTrend, trendHeaders, headerStyle); err != nil {
		return err
	}
	for i, row := range res.SalesTrend {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{
			row.Period.Format("2006-01-02"), row.TotalOrders, row.TotalRevenue.InexactFloat64(),
			row.AvgOrderValue.Round(2).InexactFloat64(), row.UniqueCustomers,
			row.TotalQuantity, row.TotalDiscount.InexactFloat64(), row.NetRevenue.InexactFloat64(),
			row.CompletedOrders, row.PendingOrders, row.CancelledOrders,
			row.HighValueOrders, row.HighValueRevenue.InexactFloat64(),
			nilableDecimal(row.PrevRevenue),
			row.RevenueMA7.Round(2).InexactFloat64(), row.RevenueMA30.Round(2).InexactFloat64(),
			nilableDecimal(row.RevenueGrowthPct), nilableFloat(row.OrdersGrowthPct),
			row.RevenuePerformance, row.OrdersPerformance, row.PerformanceScore,
		}
		if err := f.SetSheetRow(sheetTrend, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, res *analytics.Result, generatedAt time.Time, headerStyle int) error {
	rows := [][]interface{}{
		{"Generated At", generatedAt.Format(time.RFC3339)},
		{"Input Records", res.InputRecords},
		{"Skipped Records", res.SkippedRecords},
		{"Customers Analyzed", len(res.CustomerAnalytics)},
		{"Trend Days", len(res.SalesTrend)},
		{"Weekly Periods", len(res.WeeklyBuckets)},
		{"Monthly Periods", len(res.MonthlyBuckets)},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetSummary, cell, &row); err != nil {
			return err
		}
	}
	return f.SetCellStyle(sheetSummary, "A1", fmt.Sprintf("A%d", len(rows)), headerStyle)
}

func setHeaderRow(f *excelize.File, sheet string, headers []interface{}, style int) error {
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

func nilableDecimal(d *decimal.Decimal) interface{} {
	if d == nil {
		return nil
	}
	return d.InexactFloat64()
}

func nilableFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
