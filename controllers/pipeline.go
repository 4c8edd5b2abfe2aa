package controllers

import (
	"context"
	"net/http"

	"orderpulse-backend/config"
	"orderpulse-backend/models"
	"orderpulse-backend/services"
	"orderpulse-backend/utils"

	"github.com/gin-gonic/gin"
)

type PipelineController struct {
	Service *services.PipelineService
}

// GetRuns lists recent pipeline runs, newest first.
func (pc *PipelineController) GetRuns(c *gin.Context) {
	limit := queryInt(c, "limit", 20)
	if limit == 0 {
		limit = 20
	}

	var runs []models.PipelineRun
	err := config.DB.Model(&models.PipelineRun{}).
		Order("started_at DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch pipeline runs")
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

// TriggerRun kicks off a pipeline run in the background and returns
// immediately. Concurrent triggers queue behind the in-flight run.
func (pc *PipelineController) TriggerRun(c *gin.Context) {
	go func() {
		pc.Service.RunOnce(context.Background())
	}()
	c.JSON(http.StatusAccepted, gin.H{"message": "Pipeline run triggered"})
}

// Health reports process and warehouse liveness.
func (pc *PipelineController) Health(c *gin.Context) {
	sqlDB, err := config.DB.DB()
	if err != nil || sqlDB.Ping() != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "down"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
}
