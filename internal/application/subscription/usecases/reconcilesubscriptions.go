package usecases

import (
	"context"
	"errors"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/clubsaas/clubsaas/internal/application/payment/paymentgateway"
	"github.com/clubsaas/clubsaas/internal/domain/subscription"
	vo "github.com/clubsaas/clubsaas/internal/domain/subscription/valueobjects"
	"github.com/clubsaas/clubsaas/internal/shared/biztime"
	"github.com/clubsaas/clubsaas/internal/shared/logger"
)

const defaultReconcileConcurrency = 4

// StatusApplier is the transition engine as seen by its callers.
type StatusApplier interface {
	Execute(ctx context.Context, cmd ApplyStatusCommand) (*subscription.Subscription, error)
}

// ReconcileResult summarises one poller run.
type ReconcileResult struct {
	Candidates int
	Reconciled int
	Failed     int
}

// ReconcileSubscriptionsUseCase pulls mandate state from the provider for
// every unconfirmed subscription and applies it through the engine. One
// item failing never aborts the batch.
type ReconcileSubscriptionsUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	gateway          paymentgateway.MandateGateway
	applier          StatusApplier
	concurrency      int
	metrics          ReconcileMetrics
	now              biztime.Clock
	logger           logger.Interface
}

func NewReconcileSubscriptionsUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	gateway paymentgateway.MandateGateway,
	applier StatusApplier,
	logger logger.Interface,
) *ReconcileSubscriptionsUseCase {
	return &ReconcileSubscriptionsUseCase{
		subscriptionRepo: subscriptionRepo,
		gateway:          gateway,
		applier:          applier,
		concurrency:      defaultReconcileConcurrency,
		now:              biztime.NowUTC,
		logger:           logger,
	}
}

// SetConcurrency bounds parallel provider fetches. Values below 1 are ignored.
func (uc *ReconcileSubscriptionsUseCase) SetConcurrency(n int) {
	if n >= 1 {
		uc.concurrency = n
	}
}

// SetClock overrides the time source (optional).
func (uc *ReconcileSubscriptionsUseCase) SetClock(clock biztime.Clock) {
	uc.now = clock
}

// SetMetrics sets the reconcile metrics recorder (optional).
func (uc *ReconcileSubscriptionsUseCase) SetMetrics(m ReconcileMetrics) {
	uc.metrics = m
}

// Execute runs one reconciliation pass. The error is non-nil only when the
// candidate query fails.
func (uc *ReconcileSubscriptionsUseCase) Execute(ctx context.Context) (ReconcileResult, error) {
	started := uc.now()

	candidates, err := uc.subscriptionRepo.ListReconcileCandidates(ctx, vo.ProviderMercadoPago, started)
	if err != nil {
		uc.logger.Errorw("failed to list reconcile candidates", "error", err)
		return ReconcileResult{}, err
	}

	var reconciled, failed atomic.Int64

	g := new(errgroup.Group)
	g.SetLimit(uc.concurrency)
	for _, sub := range candidates {
		if ctx.Err() != nil {
			failed.Add(1)
			continue
		}
		g.Go(func() error {
			if uc.reconcileOne(ctx, sub) {
				reconciled.Add(1)
			} else {
				failed.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	result := ReconcileResult{
		Candidates: len(candidates),
		Reconciled: int(reconciled.Load()),
		Failed:     int(failed.Load()),
	}
	elapsed := uc.now().Sub(started)
	if uc.metrics != nil {
		uc.metrics.RecordReconcileRun(result.Reconciled, result.Failed, elapsed)
	}

	uc.logger.Infow("reconciliation finished",
		"candidates", result.Candidates,
		"reconciled", result.Reconciled,
		"failed", result.Failed,
		"duration", elapsed,
	)
	return result, nil
}

func (uc *ReconcileSubscriptionsUseCase) reconcileOne(ctx context.Context, sub *subscription.Subscription) bool {
	externalID := sub.ExternalID()
	if externalID == nil {
		return false
	}

	mandate, err := uc.gateway.GetMandate(ctx, *externalID)
	if err != nil {
		level := uc.logger.Errorw
		if errors.Is(err, paymentgateway.ErrMandateNotFound) {
			level = uc.logger.Warnw
		}
		level("failed to fetch mandate",
			"tenant_id", sub.TenantID(),
			"external_id", *externalID,
			"error", err,
		)
		return false
	}

	if mandate.ExternalReference != "" && mandate.ExternalReference != sub.TenantID() {
		uc.logger.Warnw("mandate references a different tenant, skipping",
			"tenant_id", sub.TenantID(),
			"external_id", *externalID,
			"external_reference", mandate.ExternalReference,
		)
		return false
	}
	if !vo.IsKnownMandateState(mandate.Status) {
		uc.logger.Warnw("unknown mandate state mapped to past due",
			"tenant_id", sub.TenantID(),
			"external_id", *externalID,
			"mandate_status", mandate.Status,
		)
	}

	cmd := CommandFromMandate(sub.TenantID(), mandate, uc.now())
	if _, err := uc.applier.Execute(ctx, cmd); err != nil {
		uc.logger.Warnw("failed to apply reconciled status",
			"tenant_id", sub.TenantID(),
			"external_id", *externalID,
			"error", err,
		)
		return false
	}
	return true
}
