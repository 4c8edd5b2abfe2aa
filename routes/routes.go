package routes

import (
	"os"
	"strings"

	"orderpulse-backend/config"
	"orderpulse-backend/controllers"
	"orderpulse-backend/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func SetupRouter(svc *services.PipelineService, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.RequestLogger(logger))

	pipeline := &controllers.PipelineController{Service: svc}

	r.GET("/health", pipeline.Health)

	api := r.Group("/api")
	{
		api.GET("/segments", controllers.GetCustomerSegments)
		api.GET("/segments/breakdown", controllers.GetSegmentBreakdown)
		api.GET("/trends", controllers.GetSalesTrends)
		api.GET("/summaries", controllers.GetPeriodSummaries)

		api.GET("/runs", pipeline.GetRuns)
		api.POST("/runs", pipeline.TriggerRun)
	}

	return r
}

func allowedOrigins() []string {
	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		return strings.Split(raw, ",")
	}
	return []string{"http://localhost:3000"}
}
