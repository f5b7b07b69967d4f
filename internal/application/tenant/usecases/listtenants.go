package usecases

import (
	"context"
	"fmt"

	"github.com/clubsaas/clubsaas/internal/application/tenant/dto"
	"github.com/clubsaas/clubsaas/internal/domain/subscription"
	"github.com/clubsaas/clubsaas/internal/domain/tenant"
	"github.com/clubsaas/clubsaas/internal/shared/errors"
	"github.com/clubsaas/clubsaas/internal/shared/logger"
)

type ListTenantsUseCase struct {
	tenantRepo tenant.Repository
	subRepo    subscription.SubscriptionRepository
	logger     logger.Interface
}

func NewListTenantsUseCase(tenantRepo tenant.Repository, subRepo subscription.SubscriptionRepository, logger logger.Interface) *ListTenantsUseCase {
	return &ListTenantsUseCase{tenantRepo: tenantRepo, subRepo: subRepo, logger: logger}
}

func (uc *ListTenantsUseCase) Execute(ctx context.Context) ([]*dto.TenantDTO, error) {
	tenants, err := uc.tenantRepo.List(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list tenants", "error", err)
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}

	result := make([]*dto.TenantDTO, 0, len(tenants))
	for _, t := range tenants {
		sub, err := uc.subRepo.GetByTenantID(ctx, t.ID())
		if err != nil {
			return nil, fmt.Errorf("failed to get subscription for tenant %s: %w", t.ID(), err)
		}
		result = append(result, dto.ToTenantDTO(t, sub))
	}
	return result, nil
}

// GetTenantUseCase returns the caller's own club.
type GetTenantUseCase struct {
	tenantRepo tenant.Repository
	subRepo    subscription.SubscriptionRepository
}

func NewGetTenantUseCase(tenantRepo tenant.Repository, subRepo subscription.SubscriptionRepository) *GetTenantUseCase {
	return &GetTenantUseCase{tenantRepo: tenantRepo, subRepo: subRepo}
}

func (uc *GetTenantUseCase) Execute(ctx context.Context, tenantID string) (*dto.TenantDTO, error) {
	t, err := uc.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	if t == nil {
		return nil, errors.NewNotFoundError("club not found", tenantID).WithReason("club_not_found")
	}
	sub, err := uc.subRepo.GetByTenantID(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return dto.ToTenantDTO(t, sub), nil
}
