package merge

import (
	"context"
	"errors"
	"fmt"

	apperrors "row-merger/core/errors"
	"row-merger/feature/merge/models"

	"gorm.io/gorm"
)

const (
	defaultListLimit = 20
	maxListLimit     = 500
)

// History persists merge runs.
type History struct {
	db *gorm.DB
}

// NewHistory creates a history store on db.
func NewHistory(db *gorm.DB) *History {
	return &History{db: db}
}

// Migrate creates or updates the merge_runs table.
func (h *History) Migrate(ctx context.Context) error {
	if err := h.db.WithContext(ctx).AutoMigrate(&models.MergeRun{}); err != nil {
		return fmt.Errorf("failed to migrate merge history: %w", err)
	}
	return nil
}

// Record stores a merge run.
func (h *History) Record(ctx context.Context, run *models.MergeRun) error {
	if err := h.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to record merge run %s: %w", run.ID, err)
	}
	return nil
}

// List returns the most recent runs, newest first. Limits outside (0, 500] fall back to 20.
func (h *History) List(ctx context.Context, limit int) ([]models.MergeRun, error) {
	if limit <= 0 || limit > maxListLimit {
		limit = defaultListLimit
	}

	var runs []models.MergeRun
	err := h.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list merge runs: %w", err)
	}
	return runs, nil
}

// Get returns a run by id.
func (h *History) Get(ctx context.Context, id string) (*models.MergeRun, error) {
	var run models.MergeRun
	err := h.db.WithContext(ctx).Where("id = ?", id).First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFoundError("merge run", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get merge run %s: %w", id, err)
	}
	return &run, nil
}
