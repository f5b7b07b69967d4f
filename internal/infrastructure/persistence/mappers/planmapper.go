package mappers

import (
	"fmt"

	"github.com/clubsaas/clubsaas/internal/domain/subscription"
	vo "github.com/clubsaas/clubsaas/internal/domain/subscription/valueobjects"
	"github.com/clubsaas/clubsaas/internal/infrastructure/persistence/models"
)

type PlanMapper struct{}

func NewPlanMapper() PlanMapper {
	return PlanMapper{}
}

func (PlanMapper) ToEntity(model *models.PlanModel) (*subscription.Plan, error) {
	if model == nil {
		return nil, nil
	}
	p, err := subscription.ReconstructPlan(model.ID, model.Name, vo.PlanInterval(model.Interval), model.PriceCents, model.Active, model.CreatedAt, model.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct plan %d: %w", model.ID, err)
	}
	return p, nil
}

func (PlanMapper) ToModel(entity *subscription.Plan) *models.PlanModel {
	return &models.PlanModel{
		ID:         entity.ID(),
		Name:       entity.Name(),
		Interval:   string(entity.Interval()),
		PriceCents: entity.PriceCents(),
		Active:     entity.IsActive(),
		CreatedAt:  entity.CreatedAt(),
		UpdatedAt:  entity.UpdatedAt(),
	}
}
