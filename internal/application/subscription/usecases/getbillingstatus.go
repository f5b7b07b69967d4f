package usecases

import (
	"context"
	"fmt"

	"github.com/clubsaas/clubsaas/internal/application/subscription/dto"
	"github.com/clubsaas/clubsaas/internal/domain/subscription"
	"github.com/clubsaas/clubsaas/internal/domain/tenant"
	"github.com/clubsaas/clubsaas/internal/shared/biztime"
	"github.com/clubsaas/clubsaas/internal/shared/errors"
	"github.com/clubsaas/clubsaas/internal/shared/logger"
)

// GetBillingStatusUseCase is a pure read. It is served outside the access
// gate so a blocked tenant can see why it is blocked.
type GetBillingStatusUseCase struct {
	tenantRepo       tenant.Repository
	subscriptionRepo subscription.SubscriptionRepository
	planRepo         subscription.PlanRepository
	now              biztime.Clock
	logger           logger.Interface
}

func NewGetBillingStatusUseCase(
	tenantRepo tenant.Repository,
	subscriptionRepo subscription.SubscriptionRepository,
	planRepo subscription.PlanRepository,
	logger logger.Interface,
) *GetBillingStatusUseCase {
	return &GetBillingStatusUseCase{
		tenantRepo:       tenantRepo,
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		now:              biztime.NowUTC,
		logger:           logger,
	}
}

// SetClock overrides the time source (optional).
func (uc *GetBillingStatusUseCase) SetClock(clock biztime.Clock) {
	uc.now = clock
}

func (uc *GetBillingStatusUseCase) Execute(ctx context.Context, tenantID string) (*dto.BillingStatusDTO, error) {
	if tenantID == "" {
		return nil, errors.NewForbiddenError("club required").WithReason(ReasonClubRequired)
	}

	t, err := uc.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		uc.logger.Errorw("failed to get tenant", "tenant_id", tenantID, "error", err)
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	if t == nil {
		return nil, errors.NewNotFoundError("club not found").WithReason(ReasonClubNotFound)
	}

	result := &dto.BillingStatusDTO{
		TenantID:     t.ID(),
		TenantStatus: t.Status().String(),
	}

	sub, err := uc.subscriptionRepo.GetByTenantID(ctx, tenantID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "tenant_id", tenantID, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return result, nil
	}

	result.Subscription = dto.ToSubscriptionDTO(sub)
	result.Active = !t.IsBlocked() && sub.IsActiveAt(uc.now())

	plan, err := uc.planRepo.GetByID(ctx, sub.PlanID())
	if err != nil {
		uc.logger.Warnw("failed to get plan for billing status", "plan_id", sub.PlanID(), "error", err)
	} else {
		result.Plan = dto.ToPlanDTO(plan)
	}
	return result, nil
}
