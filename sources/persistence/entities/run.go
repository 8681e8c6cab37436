package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Run is one completed snapshot: what was fetched, with which thresholds,
// and how the counts came out. Rows are append-only; a run is never updated.
type Run struct {
	ID        string    `gorm:"column:id;primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`

	Endpoint     string `gorm:"column:endpoint;not null"`
	SnapshotPath string `gorm:"column:snapshot_path"`

	ContextThreshold int             `gorm:"column:context_threshold;not null"`
	PriceThreshold   decimal.Decimal `gorm:"column:price_threshold;type:decimal(12,6);not null"`

	Fetched    int `gorm:"column:fetched;not null"`
	Filtered   int `gorm:"column:filtered;not null"`
	Skipped    int `gorm:"column:skipped;not null"`
	Classified int `gorm:"column:classified;not null"`
}

func (Run) TableName() string {
	return "toolscout_runs"
}

type RunModel struct {
	ID    int64  `gorm:"column:id;primaryKey;autoIncrement"`
	RunID string `gorm:"column:run_id;not null;index:idx_run_models_run"`

	ModelID       string `gorm:"column:model_id;not null"`
	Name          string `gorm:"column:name;not null"`
	Vendor        string `gorm:"column:vendor;not null"`
	ContextLength int    `gorm:"column:context_length;not null"`

	InputPerMillion  decimal.Decimal `gorm:"column:input_per_million;type:decimal(16,8);not null"`
	OutputPerMillion decimal.Decimal `gorm:"column:output_per_million;type:decimal(16,8);not null"`
	MedianPerMillion decimal.Decimal `gorm:"column:median_per_million;type:decimal(16,8);not null"`

	Quadrant string `gorm:"column:quadrant;not null"`
}

func (RunModel) TableName() string {
	return "toolscout_run_models"
}
