package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadPipelineConfig(t *testing.T) {
	require := require.New(t)

	raw := `
environment: production
schedule: "30 5 * * *"
high_value_threshold: 2500
fail_fast: true
windows:
  customer_days: 180
sources:
  - name: shop_db
    type: postgresql
    dsn: postgres://analytics:secret@db:5432/shop
    table: orders
    date_column: order_date
  - name: legacy_db
    type: mysql
    dsn: legacy:secret@tcp(legacy:3306)/shop?parseTime=true
    query: SELECT * FROM orders
`
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	require.NoError(os.WriteFile(path, []byte(raw), 0o644))

	cfg, err := LoadPipelineConfig(path)
	require.NoError(err)

	require.Equal("production", cfg.Environment)
	require.Equal("30 5 * * *", cfg.Schedule)
	require.Equal(2500.0, cfg.HighValueThreshold)
	require.True(cfg.FailFast)
	require.Len(cfg.Sources, 2)
	require.Equal("postgresql", cfg.Sources[0].Type)
	require.Equal("orders", cfg.Sources[0].Table)

	// Explicit value kept, untouched windows defaulted.
	require.Equal(180, cfg.Windows.CustomerDays)
	require.Equal(90, cfg.Windows.DailyDays)
	require.Equal(12, cfg.Windows.WeeklyWeeks)
	require.Equal("reports", cfg.ReportDir)
}

func TestLoadPipelineConfigMissingFile(t *testing.T) {
	require := require.New(t)
	_, err := LoadPipelineConfig("does/not/exist.yaml")
	require.Error(err)
}

func TestDefaultPipelineConfig(t *testing.T) {
	require := require.New(t)

	cfg := DefaultPipelineConfig()
	require.Equal("development", cfg.Environment)
	require.Equal("0 6 * * *", cfg.Schedule)
	require.Equal(365, cfg.Windows.CustomerDays)
	require.Equal(1000.0, cfg.HighValueThreshold)
	require.Empty(cfg.Sources)
}
