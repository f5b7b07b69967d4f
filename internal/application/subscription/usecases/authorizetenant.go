package usecases

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/clubsaas/clubsaas/internal/domain/subscription"
	"github.com/clubsaas/clubsaas/internal/domain/tenant"
	"github.com/clubsaas/clubsaas/internal/shared/biztime"
	"github.com/clubsaas/clubsaas/internal/shared/logger"
)

// Gate deny reasons, returned to clients verbatim.
const (
	ReasonClubRequired         = "club_required"
	ReasonClubNotFound         = "club_not_found"
	ReasonClubBlocked          = "club_blocked"
	ReasonSubscriptionRequired = "subscription_required"
	ReasonSubscriptionInactive = "subscription_inactive"
)

const decisionAllow = "allow"

// Decision is the outcome of an access check.
type Decision struct {
	Allowed bool
	Reason  string
	// HTTPStatus is the status a denied request should be answered with.
	HTTPStatus int
}

func allow() Decision {
	return Decision{Allowed: true, HTTPStatus: http.StatusOK}
}

func deny(reason string, status int) Decision {
	return Decision{Reason: reason, HTTPStatus: status}
}

// AuthorizeTenantUseCase answers whether a tenant may use tenant-scoped
// routes. This is a read with repair: when the stored subscription no longer
// grants access but the tenant is still ACTIVE, Execute writes
// Tenant.Status = BLOCKED before denying. It never calls the payment provider.
type AuthorizeTenantUseCase struct {
	tenantRepo       tenant.Repository
	subscriptionRepo subscription.SubscriptionRepository
	metrics          GateMetrics
	now              biztime.Clock
	logger           logger.Interface
}

func NewAuthorizeTenantUseCase(
	tenantRepo tenant.Repository,
	subscriptionRepo subscription.SubscriptionRepository,
	logger logger.Interface,
) *AuthorizeTenantUseCase {
	return &AuthorizeTenantUseCase{
		tenantRepo:       tenantRepo,
		subscriptionRepo: subscriptionRepo,
		now:              biztime.NowUTC,
		logger:           logger,
	}
}

// SetClock overrides the time source (optional).
func (uc *AuthorizeTenantUseCase) SetClock(clock biztime.Clock) {
	uc.now = clock
}

// SetMetrics sets the gate metrics recorder (optional).
func (uc *AuthorizeTenantUseCase) SetMetrics(m GateMetrics) {
	uc.metrics = m
}

// Execute returns an error only when a read fails. A failed repair write is
// logged and the deny is still returned.
func (uc *AuthorizeTenantUseCase) Execute(ctx context.Context, tenantID string) (Decision, error) {
	decision, err := uc.decide(ctx, strings.TrimSpace(tenantID))
	if err != nil {
		return Decision{}, err
	}
	if uc.metrics != nil {
		reason := decision.Reason
		if decision.Allowed {
			reason = decisionAllow
		}
		uc.metrics.RecordGateDecision(reason)
	}
	return decision, nil
}

func (uc *AuthorizeTenantUseCase) decide(ctx context.Context, tenantID string) (Decision, error) {
	if tenantID == "" {
		return deny(ReasonClubRequired, http.StatusForbidden), nil
	}

	t, err := uc.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		uc.logger.Errorw("failed to get tenant", "tenant_id", tenantID, "error", err)
		return Decision{}, fmt.Errorf("failed to get tenant: %w", err)
	}
	if t == nil {
		return deny(ReasonClubNotFound, http.StatusForbidden), nil
	}
	if t.IsBlocked() {
		return deny(ReasonClubBlocked, http.StatusPaymentRequired), nil
	}

	sub, err := uc.subscriptionRepo.GetByTenantID(ctx, tenantID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "tenant_id", tenantID, "error", err)
		return Decision{}, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return deny(ReasonSubscriptionRequired, http.StatusForbidden), nil
	}

	now := uc.now()
	if sub.IsActiveAt(now) {
		return allow(), nil
	}

	if t.SyncAccess(false, now) {
		if err := uc.tenantRepo.UpdateStatus(ctx, t); err != nil {
			uc.logger.Errorw("failed to block tenant with inactive subscription",
				"tenant_id", tenantID,
				"error", err,
			)
		} else {
			uc.logger.Infow("tenant blocked on access check",
				"tenant_id", tenantID,
				"subscription_status", sub.Status(),
				"current_period_end", sub.CurrentPeriodEnd(),
			)
		}
	}
	return deny(ReasonSubscriptionInactive, http.StatusPaymentRequired), nil
}
