package models

import (
	"time"

	"github.com/google/uuid"
)

// Run statuses.
const (
	RunStatusRunning = "running"
	RunStatusSuccess = "success"
	RunStatusFailed  = "failed"
)

// PipelineRun records one execution of the analytics pipeline.
type PipelineRun struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	ReferenceDate time.Time  `json:"referenceDate"`
	StartedAt     time.Time  `json:"startedAt"`
	FinishedAt    *time.Time `json:"finishedAt"`
	DurationSecs  float64    `json:"durationSecs"`

	Status string `gorm:"index" json:"status"`

	RecordsExtracted  int `json:"recordsExtracted"`
	RecordsSkipped    int `json:"recordsSkipped"`
	CustomersAnalyzed int `json:"customersAnalyzed"`
	TrendDays         int `json:"trendDays"`

	ReportPath   string `json:"reportPath"`
	ErrorMessage string `json:"errorMessage"`
}

func (PipelineRun) TableName() string {
	return "pipeline_runs"
}
