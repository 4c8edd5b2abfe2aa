package controllers

import (
	"net/http"
	"strconv"

	"orderpulse-backend/config"
	"orderpulse-backend/models"
	"orderpulse-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetCustomerSegments returns the latest customer analytics, biggest spenders
// first. Optional filters: ?segment=Champions&tier=Premium&limit=100.
func GetCustomerSegments(c *gin.Context) {
	query := config.DB.Model(&models.CustomerAnalytics{}).
		Order("total_spent DESC").
		Order("last_order_date DESC")

	if segment := c.Query("segment"); segment != "" {
		query = query.Where("segment = ?", segment)
	}
	if tier := c.Query("tier"); tier != "" {
		query = query.Where("value_tier = ?", tier)
	}
	if limit := queryInt(c, "limit", 0); limit > 0 {
		query = query.Limit(limit)
	}

	var rows []models.CustomerAnalytics
	if err := query.Find(&rows).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch customer segments")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":     len(rows),
		"customers": rows,
	})
}

// GetSegmentBreakdown returns customer and revenue totals per segment.
func GetSegmentBreakdown(c *gin.Context) {
	type segmentRow struct {
		Segment    string  `json:"segment"`
		Customers  int     `json:"customers"`
		TotalSpent float64 `json:"totalSpent"`
		AvgCLV     float64 `json:"avgClv"`
	}
	var rows []segmentRow
	err := config.DB.Model(&models.CustomerAnalytics{}).
		Select("segment, COUNT(*) as customers, COALESCE(SUM(total_spent), 0) as total_spent, COALESCE(AVG(estimated_clv), 0) as avg_clv").
		Group("segment").
		Order("total_spent DESC").
		Scan(&rows).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch segment breakdown")
		return
	}
	c.JSON(http.StatusOK, gin.H{"segments": rows})
}

// GetSalesTrends returns daily trend rows, newest first.
// Optional: ?days=30 caps the number of rows.
func GetSalesTrends(c *gin.Context) {
	query := config.DB.Model(&models.SalesTrend{}).Order("date DESC")
	if days := queryInt(c, "days", 0); days > 0 {
		query = query.Limit(days)
	}

	var rows []models.SalesTrend
	if err := query.Find(&rows).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch sales trends")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":  len(rows),
		"trends": rows,
	})
}

// GetPeriodSummaries returns the weekly or monthly rollups, newest first.
func GetPeriodSummaries(c *gin.Context) {
	granularity := c.DefaultQuery("granularity", "weekly")
	if granularity != "weekly" && granularity != "monthly" {
		utils.RespondWithError(c, http.StatusBadRequest, "granularity must be weekly or monthly")
		return
	}

	var rows []models.PeriodSummary
	err := config.DB.Model(&models.PeriodSummary{}).
		Where("granularity = ?", granularity).
		Order("period_start DESC").
		Find(&rows).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch period summaries")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"granularity": granularity,
		"periods":     rows,
	})
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
