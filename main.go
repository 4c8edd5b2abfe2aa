package main

import (
	"context"
	"flag"
	"log"
	"os"

	"orderpulse-backend/config"
	"orderpulse-backend/models"
	"orderpulse-backend/routes"
	"orderpulse-backend/services"
	"orderpulse-backend/utils"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	var (
		configPath = flag.String("config", "pipeline.yaml", "pipeline config file")
		serve      = flag.Bool("serve", false, "start the API server and scheduler")
		runOnce    = flag.Bool("run-once", false, "run the full pipeline once and exit")
		stage      = flag.String("stage", "", "run a single stage: extract, transform or load")
	)
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	logger := utils.InitLogger()
	defer logger.Sync()

	cfg, err := config.LoadPipelineConfig(*configPath)
	if err != nil {
		logger.Fatal("load pipeline config", zap.String("path", *configPath), zap.Error(err))
	}

	config.ConnectDB()
	if err := config.DB.AutoMigrate(
		&models.CustomerAnalytics{},
		&models.SalesTrend{},
		&models.PeriodSummary{},
		&models.PipelineRun{},
	); err != nil {
		logger.Fatal("auto-migrate warehouse schema", zap.Error(err))
	}

	svc := services.NewPipelineService(config.DB, cfg, logger)

	switch {
	case *stage != "":
		if err := svc.RunStage(context.Background(), *stage); err != nil {
			logger.Fatal("stage failed", zap.String("stage", *stage), zap.Error(err))
		}
		logger.Info("stage complete", zap.String("stage", *stage))

	case *runOnce:
		run, err := svc.RunOnce(context.Background())
		if err != nil {
			logger.Fatal("pipeline run failed", zap.Error(err))
		}
		logger.Info("pipeline run complete", zap.String("run_id", run.ID.String()))

	case *serve:
		if _, err := svc.StartScheduler(); err != nil {
			logger.Fatal("start scheduler", zap.Error(err))
		}

		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		r := routes.SetupRouter(svc, logger)
		logger.Info("api server listening", zap.String("port", port))
		if err := r.Run(":" + port); err != nil {
			logger.Fatal("api server stopped", zap.Error(err))
		}

	default:
		flag.Usage()
		os.Exit(2)
	}
}
