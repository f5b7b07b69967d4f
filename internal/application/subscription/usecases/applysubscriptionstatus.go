package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/clubsaas/clubsaas/internal/domain/subscription"
	vo "github.com/clubsaas/clubsaas/internal/domain/subscription/valueobjects"
	"github.com/clubsaas/clubsaas/internal/domain/tenant"
	"github.com/clubsaas/clubsaas/internal/shared/biztime"
	"github.com/clubsaas/clubsaas/internal/shared/db"
	apperrors "github.com/clubsaas/clubsaas/internal/shared/errors"
	"github.com/clubsaas/clubsaas/internal/shared/logger"
)

// ApplyStatusCommand is one authoritative billing write for a tenant.
type ApplyStatusCommand struct {
	TenantID         string
	Status           vo.SubscriptionStatus
	CurrentPeriodEnd time.Time
	// ExternalID binds the provider mandate. Nil or empty leaves it untouched.
	ExternalID *string
	// PaymentProvider switches the collector when set.
	PaymentProvider *vo.PaymentProvider
	// AppliedAt is the instant CurrentPeriodEnd was derived at. Zero means
	// the engine's clock.
	AppliedAt time.Time
}

// ApplySubscriptionStatusUseCase is the single write path for subscription
// status. The subscription and the derived tenant status are written in one
// transaction; the last committed call wins.
type ApplySubscriptionStatusUseCase struct {
	txManager        db.TransactionRunner
	subscriptionRepo subscription.SubscriptionRepository
	tenantRepo       tenant.Repository
	metrics          TransitionMetrics
	now              biztime.Clock
	logger           logger.Interface
}

func NewApplySubscriptionStatusUseCase(
	txManager db.TransactionRunner,
	subscriptionRepo subscription.SubscriptionRepository,
	tenantRepo tenant.Repository,
	logger logger.Interface,
) *ApplySubscriptionStatusUseCase {
	return &ApplySubscriptionStatusUseCase{
		txManager:        txManager,
		subscriptionRepo: subscriptionRepo,
		tenantRepo:       tenantRepo,
		now:              biztime.NowUTC,
		logger:           logger,
	}
}

// SetClock overrides the time source (optional).
func (uc *ApplySubscriptionStatusUseCase) SetClock(clock biztime.Clock) {
	uc.now = clock
}

// SetMetrics sets the transition metrics recorder (optional).
func (uc *ApplySubscriptionStatusUseCase) SetMetrics(m TransitionMetrics) {
	uc.metrics = m
}

// Execute applies cmd and returns the persisted subscription. It fails with an
// error wrapping subscription.ErrSubscriptionNotFound when the tenant has no
// subscription and tenant.ErrTenantNotFound when the tenant row is gone.
func (uc *ApplySubscriptionStatusUseCase) Execute(ctx context.Context, cmd ApplyStatusCommand) (*subscription.Subscription, error) {
	tenantID := strings.TrimSpace(cmd.TenantID)
	if tenantID == "" {
		return nil, apperrors.NewValidationError("tenant id is required").WithReason("invalid_payload")
	}
	if !cmd.Status.IsValid() {
		return nil, apperrors.NewValidationError("invalid subscription status", string(cmd.Status)).WithReason("invalid_status")
	}
	if cmd.CurrentPeriodEnd.IsZero() {
		return nil, apperrors.NewValidationError("current period end is required").WithReason("invalid_payload")
	}

	now := cmd.AppliedAt
	if now.IsZero() {
		now = uc.now()
	}
	var result *subscription.Subscription

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		sub, err := uc.subscriptionRepo.GetByTenantID(txCtx, tenantID)
		if err != nil {
			return fmt.Errorf("failed to get subscription: %w", err)
		}
		if sub == nil {
			return subscription.ErrSubscriptionNotFound
		}

		if err := sub.ApplyStatus(cmd.Status, cmd.CurrentPeriodEnd, cmd.ExternalID, now); err != nil {
			return err
		}
		if cmd.PaymentProvider != nil {
			if err := sub.SwitchProvider(*cmd.PaymentProvider); err != nil {
				return err
			}
		}
		if err := uc.subscriptionRepo.Update(txCtx, sub); err != nil {
			return fmt.Errorf("failed to update subscription: %w", err)
		}

		t, err := uc.tenantRepo.GetByID(txCtx, tenantID)
		if err != nil {
			return fmt.Errorf("failed to get tenant: %w", err)
		}
		if t == nil {
			return tenant.ErrTenantNotFound
		}
		// Written unconditionally so a concurrent gate repair is overwritten
		// by the committed transition.
		t.SyncAccess(sub.IsActiveAt(now), now)
		if err := uc.tenantRepo.UpdateStatus(txCtx, t); err != nil {
			return fmt.Errorf("failed to update tenant status: %w", err)
		}

		result = sub
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, subscription.ErrSubscriptionNotFound), errors.Is(err, tenant.ErrTenantNotFound):
			uc.logger.Warnw("subscription transition skipped, record not found",
				"tenant_id", tenantID,
				"error", err,
			)
		default:
			uc.logger.Errorw("failed to apply subscription status",
				"tenant_id", tenantID,
				"status", cmd.Status,
				"error", err,
			)
		}
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.RecordTransition(result.Status())
	}

	uc.logger.Infow("subscription status applied",
		"tenant_id", tenantID,
		"status", result.Status(),
		"current_period_end", result.CurrentPeriodEnd(),
		"payment_provider", result.PaymentProvider(),
	)
	return result, nil
}
