package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SourceConfig describes one upstream order source. Type selects the
// extractor: postgresql, mysql, file or api.
type SourceConfig struct {
	Name       string `yaml:"name"`
	Type       string `yaml:"type"`
	DSN        string `yaml:"dsn"`
	Query      string `yaml:"query"`
	Table      string `yaml:"table"`
	DateColumn string `yaml:"date_column"`
	Path       string `yaml:"path"`
	URL        string `yaml:"url"`
	APIKey     string `yaml:"api_key"`
}

// WindowConfig holds the trailing-window lengths per analysis tier.
type WindowConfig struct {
	CustomerDays  int `yaml:"customer_days"`
	DailyDays     int `yaml:"daily_days"`
	WeeklyWeeks   int `yaml:"weekly_weeks"`
	MonthlyMonths int `yaml:"monthly_months"`
}

// PipelineConfig is the YAML-file configuration for a pipeline deployment,
// separate from the env-var infrastructure settings.
type PipelineConfig struct {
	Environment string         `yaml:"environment"`
	Schedule    string         `yaml:"schedule"`
	Sources     []SourceConfig `yaml:"sources"`
	Windows     WindowConfig   `yaml:"windows"`

	HighValueThreshold float64 `yaml:"high_value_threshold"`
	FailFast           bool    `yaml:"fail_fast"`

	StagingDir string `yaml:"staging_dir"`
	OutputDir  string `yaml:"output_dir"`
	ReportDir  string `yaml:"report_dir"`
}

// LoadPipelineConfig reads the YAML file and fills in defaults for anything
// left unset.
func LoadPipelineConfig(path string) (*PipelineConfig, error) {
	cfg := &PipelineConfig{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pipeline config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse pipeline config: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// DefaultPipelineConfig returns a config usable without a YAML file.
func DefaultPipelineConfig() *PipelineConfig {
	cfg := &PipelineConfig{}
	cfg.applyDefaults()
	return cfg
}

func (cfg *PipelineConfig) applyDefaults() {
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.Schedule == "" {
		cfg.Schedule = "0 6 * * *"
	}
	if cfg.Windows.CustomerDays == 0 {
		cfg.Windows.CustomerDays = 365
	}
	if cfg.Windows.DailyDays == 0 {
		cfg.Windows.DailyDays = 90
	}
	if cfg.Windows.WeeklyWeeks == 0 {
		cfg.Windows.WeeklyWeeks = 12
	}
	if cfg.Windows.MonthlyMonths == 0 {
		cfg.Windows.MonthlyMonths = 12
	}
	if cfg.HighValueThreshold == 0 {
		cfg.HighValueThreshold = 1000
	}
	if cfg.StagingDir == "" {
		cfg.StagingDir = "data/staging"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "data/output"
	}
	if cfg.ReportDir == "" {
		cfg.ReportDir = "reports"
	}
}
