package repos

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/vmduarte/conciliador-backend/internal/pkg/errors"
	"github.com/vmduarte/conciliador-backend/internal/pkg/logger"
	"github.com/vmduarte/conciliador-backend/internal/types"
)

type RunRepo interface {
	Create(ctx context.Context, run *types.ReconciliationRun) error
	GetByID(ctx context.Context, id uuid.UUID) (*types.ReconciliationRun, error)
	ListRecent(ctx context.Context, limit int) ([]types.ReconciliationRun, error)
}

type runRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRunRepo(db *gorm.DB, log *logger.Logger) RunRepo {
	return &runRepo{db: db, log: log.With("repo", "RunRepo")}
}

func (r *runRepo) Create(ctx context.Context, run *types.ReconciliationRun) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("create reconciliation run: %w", err)
	}
	return nil
}

func (r *runRepo) GetByID(ctx context.Context, id uuid.UUID) (*types.ReconciliationRun, error) {
	var run types.ReconciliationRun
	err := r.db.WithContext(ctx).First(&run, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get reconciliation run %s: %w", id, err)
	}
	return &run, nil
}

func (r *runRepo) ListRecent(ctx context.Context, limit int) ([]types.ReconciliationRun, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var runs []types.ReconciliationRun
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("list reconciliation runs: %w", err)
	}
	return runs, nil
}
