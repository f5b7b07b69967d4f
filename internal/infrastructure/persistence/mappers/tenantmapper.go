package mappers

import (
	"fmt"

	"github.com/clubsaas/clubsaas/internal/domain/tenant"
	"github.com/clubsaas/clubsaas/internal/infrastructure/persistence/models"
)

type TenantMapper struct{}

func NewTenantMapper() TenantMapper {
	return TenantMapper{}
}

func (TenantMapper) ToEntity(model *models.TenantModel) (*tenant.Tenant, error) {
	if model == nil {
		return nil, nil
	}
	status, err := tenant.ParseStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("tenant %s: %w", model.ID, err)
	}
	t, err := tenant.ReconstructTenant(model.ID, model.Name, model.Slug, status, model.CreatedAt, model.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct tenant %s: %w", model.ID, err)
	}
	return t, nil
}

func (TenantMapper) ToModel(entity *tenant.Tenant) *models.TenantModel {
	return &models.TenantModel{
		ID:        entity.ID(),
		Name:      entity.Name(),
		Slug:      entity.Slug(),
		Status:    entity.Status().String(),
		CreatedAt: entity.CreatedAt(),
		UpdatedAt: entity.UpdatedAt(),
	}
}
