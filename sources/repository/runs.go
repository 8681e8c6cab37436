package repository

import (
	"context"
	"errors"
	"fmt"
	"time"
	"toolscout/sources/persistence/entities"
	"toolscout/sources/platform"
	"toolscout/sources/tracing"

	"gorm.io/gorm"
)

var ErrArchiveDisabled = errors.New("run archive is disabled")

type RunsRepository struct {
	db *gorm.DB
}

func NewRunsRepository(db *gorm.DB) *RunsRepository {
	return &RunsRepository{db: db}
}

func (x *RunsRepository) Enabled() bool {
	return x.db != nil
}

// SaveRun records one completed snapshot and its classified models in a
// single transaction. With archiving disabled this is a quiet no-op so the
// pipeline does not need to care.
func (x *RunsRepository) SaveRun(log *tracing.Logger, run *entities.Run, models []entities.RunModel) error {
	if !x.Enabled() {
		log.D("Run archive disabled, skipping save", tracing.RunId, run.ID)
		return nil
	}

	defer tracing.ProfilePoint(log, "Run archived", "repository.runs.save", tracing.RunId, run.ID)()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	err := x.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(run).Error; err != nil {
			return err
		}
		if len(models) == 0 {
			return nil
		}
		return tx.CreateInBatches(models, 200).Error
	})

	if err != nil {
		return fmt.Errorf("failed to archive run %s: %w", run.ID, err)
	}

	log.I("Run archived", tracing.RunId, run.ID, tracing.RecordsReported, len(models))
	return nil
}

// LatestRuns returns up to limit runs, newest first.
func (x *RunsRepository) LatestRuns(log *tracing.Logger, limit int) ([]*entities.Run, error) {
	if !x.Enabled() {
		return nil, ErrArchiveDisabled
	}

	defer tracing.ProfilePoint(log, "Runs listed", "repository.runs.latest")()
	ctx, cancel := platform.ContextTimeout(context.Background())
	defer cancel()

	var runs []*entities.Run
	err := x.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&runs).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	return runs, nil
}

// ModelsOf returns the classified rows of one archived run.
func (x *RunsRepository) ModelsOf(log *tracing.Logger, runID string) ([]*entities.RunModel, error) {
	if !x.Enabled() {
		return nil, ErrArchiveDisabled
	}

	defer tracing.ProfilePoint(log, "Run models listed", "repository.runs.models", tracing.RunId, runID)()
	ctx, cancel := platform.ContextTimeout(context.Background())
	defer cancel()

	var models []*entities.RunModel
	err := x.db.WithContext(ctx).
		Where("run_id = ?", runID).
		Order("median_per_million ASC").
		Find(&models).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list models for run %s: %w", runID, err)
	}

	return models, nil
}
