package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/clubsaas/clubsaas/internal/domain/subscription"
	"github.com/clubsaas/clubsaas/internal/infrastructure/persistence/mappers"
	"github.com/clubsaas/clubsaas/internal/infrastructure/persistence/models"
	"github.com/clubsaas/clubsaas/internal/shared/db"
	"github.com/clubsaas/clubsaas/internal/shared/logger"
)

type PlanRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.PlanMapper
	logger logger.Interface
}

func NewPlanRepository(db *gorm.DB, logger logger.Interface) subscription.PlanRepository {
	return &PlanRepositoryImpl{db: db, mapper: mappers.NewPlanMapper(), logger: logger}
}

func (r *PlanRepositoryImpl) Create(ctx context.Context, plan *subscription.Plan) error {
	model := r.mapper.ToModel(plan)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create plan", "name", model.Name, "error", err)
		return fmt.Errorf("failed to create plan: %w", err)
	}
	return plan.SetID(model.ID)
}

func (r *PlanRepositoryImpl) GetByID(ctx context.Context, id uint) (*subscription.Plan, error) {
	var model models.PlanModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get plan", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *PlanRepositoryImpl) List(ctx context.Context, activeOnly bool) ([]*subscription.Plan, error) {
	var list []*models.PlanModel
	q := db.GetTxFromContext(ctx, r.db).Order("created_at DESC")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	if err := q.Find(&list).Error; err != nil {
		r.logger.Errorw("failed to list plans", "error", err)
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	out := make([]*subscription.Plan, 0, len(list))
	for _, model := range list {
		p, err := r.mapper.ToEntity(model)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
