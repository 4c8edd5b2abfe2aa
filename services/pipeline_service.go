// services/pipeline_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"orderpulse-backend/analytics"
	"orderpulse-backend/config"
	"orderpulse-backend/extract"
	"orderpulse-backend/load"
	"orderpulse-backend/models"
)

// PipelineService orchestrates extract -> transform -> load and owns the
// daily schedule. Runs are serialized: a second trigger waits for the
// in-flight run to finish.
type PipelineService struct {
	db     *gorm.DB
	cfg    *config.PipelineConfig
	logger *zap.Logger
	loader *load.WarehouseLoader

	mu sync.Mutex
}

func NewPipelineService(db *gorm.DB, cfg *config.PipelineConfig, logger *zap.Logger) *PipelineService {
	return &PipelineService{
		db:     db,
		cfg:    cfg,
		logger: logger,
		loader: load.NewWarehouseLoader(db, logger),
	}
}

// StartScheduler registers the daily run and starts the cron loop.
func (s *PipelineService) StartScheduler() (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(s.cfg.Schedule, func() {
		if _, err := s.RunOnce(context.Background()); err != nil {
			s.logger.Error("scheduled pipeline run failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("register schedule %q: %w", s.cfg.Schedule, err)
	}
	c.Start()
	s.logger.Info("pipeline scheduler started", zap.String("schedule", s.cfg.Schedule))
	return c, nil
}

// RunOnce executes the full pipeline and records the run.
func (s *PipelineService) RunOnce(ctx context.Context) (*models.PipelineRun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ref := referenceDate()
	run := &models.PipelineRun{
		ID:            uuid.New(),
		ReferenceDate: ref,
		StartedAt:     time.Now(),
		Status:        models.RunStatusRunning,
	}
	if err := s.db.Create(run).Error; err != nil {
		return nil, fmt.Errorf("record pipeline run: %w", err)
	}
	s.logger.Info("pipeline run started",
		zap.String("run_id", run.ID.String()),
		zap.Time("reference_date", ref))

	res, err := s.execute(ctx, run, ref)
	s.finishRun(run, res, err)
	if err != nil {
		return run, err
	}
	return run, nil
}

func (s *PipelineService) execute(ctx context.Context, run *models.PipelineRun, ref time.Time) (*analytics.Result, error) {
	orders, err := s.Extract(ctx)
	if err != nil {
		return nil, err
	}
	run.RecordsExtracted = len(orders)

	res, err := analytics.Run(orders, s.analyticsConfig(ref), s.logger)
	if err != nil {
		return nil, err
	}

	if err := s.loader.LoadResult(run.ID, res); err != nil {
		return res, err
	}

	reportPath, err := load.ExportWorkbook(res, ref, s.cfg.ReportDir, s.logger)
	if err != nil {
		return res, err
	}
	run.ReportPath = reportPath
	return res, nil
}

// Extract pulls records from every configured source. A failing source is
// logged and skipped so one dead upstream does not starve the whole run;
// extraction only fails outright when no source yields anything.
func (s *PipelineService) Extract(ctx context.Context) ([]analytics.OrderRecord, error) {
	if len(s.cfg.Sources) == 0 {
		return nil, fmt.Errorf("no sources configured")
	}

	var orders []analytics.OrderRecord
	failed := 0
	for _, src := range s.cfg.Sources {
		batch, err := s.extractSource(ctx, src)
		if err != nil {
			failed++
			s.logger.Error("source extraction failed",
				zap.String("source", src.Name), zap.Error(err))
			continue
		}
		orders = append(orders, batch...)
	}
	if failed == len(s.cfg.Sources) {
		return nil, fmt.Errorf("all %d sources failed", failed)
	}
	return orders, nil
}

func (s *PipelineService) extractSource(ctx context.Context, src config.SourceConfig) ([]analytics.OrderRecord, error) {
	switch src.Type {
	case "postgresql":
		return extract.FromPostgres(src, nil, s.logger)
	case "mysql":
		return extract.FromMySQL(ctx, src, nil, s.logger)
	case "file":
		return extract.FromFile(src, s.logger)
	case "api":
		return extract.FromAPI(ctx, src, s.logger)
	default:
		return nil, fmt.Errorf("unsupported source type %q", src.Type)
	}
}

func (s *PipelineService) analyticsConfig(ref time.Time) analytics.Config {
	return analytics.Config{
		ReferenceDate:       ref,
		CustomerWindowDays:  s.cfg.Windows.CustomerDays,
		DailyWindowDays:     s.cfg.Windows.DailyDays,
		WeeklyWindowWeeks:   s.cfg.Windows.WeeklyWeeks,
		MonthlyWindowMonths: s.cfg.Windows.MonthlyMonths,
		HighValueThreshold:  decimal.NewFromFloat(s.cfg.HighValueThreshold),
		FailFast:            s.cfg.FailFast,
	}
}

func (s *PipelineService) finishRun(run *models.PipelineRun, res *analytics.Result, runErr error) {
	now := time.Now()
	run.FinishedAt = &now
	run.DurationSecs = now.Sub(run.StartedAt).Seconds()
	if res != nil {
		run.RecordsSkipped = res.SkippedRecords
		run.CustomersAnalyzed = len(res.CustomerAnalytics)
		run.TrendDays = len(res.SalesTrend)
	}
	if runErr != nil {
		run.Status = models.RunStatusFailed
		run.ErrorMessage = runErr.Error()
	} else {
		run.Status = models.RunStatusSuccess
	}

	if err := s.db.Save(run).Error; err != nil {
		s.logger.Error("failed to persist run record", zap.Error(err))
	}
	if err := s.writeRunSummary(run); err != nil {
		s.logger.Warn("failed to write run summary", zap.Error(err))
	}

	s.logger.Info("pipeline run finished",
		zap.String("run_id", run.ID.String()),
		zap.String("status", run.Status),
		zap.Float64("duration_secs", run.DurationSecs),
		zap.Int("records_extracted", run.RecordsExtracted),
		zap.Int("records_skipped", run.RecordsSkipped))
}

// RunStage executes a single pipeline stage, handing data between stages
// through JSON files under the staging and output directories. Useful for
// replaying one stage against a known input.
func (s *PipelineService) RunStage(ctx context.Context, stage string) error {
	switch stage {
	case "extract":
		orders, err := s.Extract(ctx)
		if err != nil {
			return err
		}
		return writeJSON(filepath.Join(s.cfg.StagingDir, "orders.json"), orders)

	case "transform":
		var orders []analytics.OrderRecord
		if err := readJSON(filepath.Join(s.cfg.StagingDir, "orders.json"), &orders); err != nil {
			return fmt.Errorf("read staged orders (run the extract stage first): %w", err)
		}
		res, err := analytics.Run(orders, s.analyticsConfig(referenceDate()), s.logger)
		if err != nil {
			return err
		}
		return writeJSON(filepath.Join(s.cfg.OutputDir, "analytics_result.json"), res)

	case "load":
		var res analytics.Result
		if err := readJSON(filepath.Join(s.cfg.OutputDir, "analytics_result.json"), &res); err != nil {
			return fmt.Errorf("read analytics result (run the transform stage first): %w", err)
		}
		if err := s.loader.LoadResult(uuid.New(), &res); err != nil {
			return err
		}
		_, err := load.ExportWorkbook(&res, referenceDate(), s.cfg.ReportDir, s.logger)
		return err

	default:
		return fmt.Errorf("unknown stage %q (want extract, transform or load)", stage)
	}
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// writeRunSummary drops a machine-readable summary next to the data outputs.
func (s *PipelineService) writeRunSummary(run *models.PipelineRun) error {
	if err := os.MkdirAll(s.cfg.OutputDir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.cfg.OutputDir, "pipeline_summary.json"), data, 0o644)
}

// referenceDate anchors the run. REFERENCE_DATE (YYYY-MM-DD) overrides the
// clock for replays.
func referenceDate() time.Time {
	if raw := os.Getenv("REFERENCE_DATE"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			return t
		}
	}
	return time.Now().UTC()
}
