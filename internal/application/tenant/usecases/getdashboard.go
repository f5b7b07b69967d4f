package usecases

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/clubsaas/clubsaas/internal/application/tenant/dto"
	"github.com/clubsaas/clubsaas/internal/domain/subscription"
	vo "github.com/clubsaas/clubsaas/internal/domain/subscription/valueobjects"
	"github.com/clubsaas/clubsaas/internal/domain/tenant"
	"github.com/clubsaas/clubsaas/internal/shared/logger"
)

// GetDashboardUseCase aggregates operator counters.
type GetDashboardUseCase struct {
	tenantRepo tenant.Repository
	subRepo    subscription.SubscriptionRepository
	logger     logger.Interface
}

func NewGetDashboardUseCase(tenantRepo tenant.Repository, subRepo subscription.SubscriptionRepository, logger logger.Interface) *GetDashboardUseCase {
	return &GetDashboardUseCase{tenantRepo: tenantRepo, subRepo: subRepo, logger: logger}
}

func (uc *GetDashboardUseCase) Execute(ctx context.Context) (*dto.DashboardDTO, error) {
	var (
		tenantCounts map[tenant.Status]int64
		subCounts    map[vo.SubscriptionStatus]int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tenantCounts, err = uc.tenantRepo.CountByStatus(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		subCounts, err = uc.subRepo.CountByStatus(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		uc.logger.Errorw("failed to load dashboard", "error", err)
		return nil, fmt.Errorf("failed to load dashboard: %w", err)
	}

	result := &dto.DashboardDTO{
		ClubsActive:   tenantCounts[tenant.StatusActive],
		ClubsBlocked:  tenantCounts[tenant.StatusBlocked],
		Subscriptions: make(map[string]int64, len(subCounts)),
	}
	for _, n := range tenantCounts {
		result.ClubsTotal += n
	}
	for status, n := range subCounts {
		result.Subscriptions[status.String()] = n
	}
	return result, nil
}
