package usecases

import (
	"context"
	stderrors "errors"

	"github.com/clubsaas/clubsaas/internal/application/payment/paymentgateway"
	subUsecases "github.com/clubsaas/clubsaas/internal/application/subscription/usecases"
	"github.com/clubsaas/clubsaas/internal/domain/subscription"
	vo "github.com/clubsaas/clubsaas/internal/domain/subscription/valueobjects"
	"github.com/clubsaas/clubsaas/internal/domain/tenant"
	"github.com/clubsaas/clubsaas/internal/shared/biztime"
	"github.com/clubsaas/clubsaas/internal/shared/errors"
	"github.com/clubsaas/clubsaas/internal/shared/logger"
)

// Acknowledged-but-skipped outcomes. The provider gets a 2xx so it stops
// retrying a permanently failing delivery.
const (
	SkipPreapprovalNotFound  = "preapproval_not_found"
	SkipSubscriptionNotFound = "subscription_not_found"
	SkipClubNotFound         = "club_not_found"
	SkipExternalIDMismatch   = "external_id_mismatch"
)

const outcomeApplied = "applied"

// WebhookMetrics records one webhook outcome: "applied", a skip code or a
// rejection reason.
type WebhookMetrics interface {
	RecordWebhook(shape, outcome string)
}

// WebhookResult is the acknowledged outcome of a delivery.
type WebhookResult struct {
	OK       bool
	Error    string
	Shape    string
	TenantID string
	Status   vo.SubscriptionStatus
}

// HandlePaymentWebhookUseCase authenticates a notification, resolves it to a
// tenant and runs exactly one engine call, or records an explicit skip.
type HandlePaymentWebhookUseCase struct {
	verifier *WebhookVerifier
	gateway  paymentgateway.MandateGateway
	applier  subUsecases.StatusApplier
	metrics  WebhookMetrics
	now      biztime.Clock
	logger   logger.Interface
}

func NewHandlePaymentWebhookUseCase(
	verifier *WebhookVerifier,
	gateway paymentgateway.MandateGateway,
	applier subUsecases.StatusApplier,
	logger logger.Interface,
) *HandlePaymentWebhookUseCase {
	return &HandlePaymentWebhookUseCase{
		verifier: verifier,
		gateway:  gateway,
		applier:  applier,
		now:      biztime.NowUTC,
		logger:   logger,
	}
}

// SetClock overrides the time source (optional).
func (uc *HandlePaymentWebhookUseCase) SetClock(clock biztime.Clock) {
	uc.now = clock
}

// SetMetrics sets the webhook metrics recorder (optional).
func (uc *HandlePaymentWebhookUseCase) SetMetrics(m WebhookMetrics) {
	uc.metrics = m
}

// Execute returns an *errors.AppError for rejected deliveries (401, 400) and
// a wrapped error for infrastructure failures. Skips are results, not errors.
func (uc *HandlePaymentWebhookUseCase) Execute(ctx context.Context, req WebhookRequest) (*WebhookResult, error) {
	if err := uc.verifier.Verify(req, EventID(req)); err != nil {
		uc.logger.Warnw("webhook rejected", "reason", reasonOf(err))
		uc.record("unknown", reasonOf(err))
		return nil, err
	}

	payload, err := ParseWebhookPayload(req)
	if err != nil {
		uc.logger.Warnw("webhook payload rejected", "reason", reasonOf(err), "error", err)
		uc.record("unknown", reasonOf(err))
		return nil, err
	}

	var result *WebhookResult
	switch p := payload.(type) {
	case DirectPayload:
		result, err = uc.handleDirect(ctx, p)
	case ProviderEventPayload:
		result, err = uc.handleProviderEvent(ctx, p)
	}
	if err != nil {
		uc.record(payload.shape(), reasonOf(err))
		return nil, err
	}

	outcome := outcomeApplied
	if !result.OK {
		outcome = result.Error
	}
	uc.record(result.Shape, outcome)
	return result, nil
}

func (uc *HandlePaymentWebhookUseCase) handleDirect(ctx context.Context, p DirectPayload) (*WebhookResult, error) {
	cmd := subUsecases.ApplyStatusCommand{
		TenantID:         p.TenantID,
		Status:           p.Status,
		CurrentPeriodEnd: p.CurrentPeriodEnd,
	}
	return uc.apply(ctx, p.shape(), cmd)
}

func (uc *HandlePaymentWebhookUseCase) handleProviderEvent(ctx context.Context, p ProviderEventPayload) (*WebhookResult, error) {
	mandate, err := uc.gateway.GetMandate(ctx, p.MandateID)
	if err != nil {
		uc.logger.Warnw("mandate fetch failed, acknowledging webhook",
			"mandate_id", p.MandateID,
			"event_type", p.EventType,
			"error", err,
		)
		return &WebhookResult{Error: SkipPreapprovalNotFound, Shape: p.shape()}, nil
	}

	if mandate.ExternalReference == "" {
		return nil, errors.NewValidationError("mandate has no external reference", p.MandateID).WithReason(ReasonMissingExternalReference)
	}
	if !vo.IsKnownMandateState(mandate.Status) {
		uc.logger.Warnw("unknown mandate state mapped to past due",
			"tenant_id", mandate.ExternalReference,
			"mandate_id", mandate.ID,
			"mandate_status", mandate.Status,
		)
	}

	cmd := subUsecases.CommandFromMandate(mandate.ExternalReference, mandate, uc.now())
	return uc.apply(ctx, p.shape(), cmd)
}

func (uc *HandlePaymentWebhookUseCase) apply(ctx context.Context, shape string, cmd subUsecases.ApplyStatusCommand) (*WebhookResult, error) {
	sub, err := uc.applier.Execute(ctx, cmd)
	if err != nil {
		skip := ""
		switch {
		case stderrors.Is(err, subscription.ErrSubscriptionNotFound):
			skip = SkipSubscriptionNotFound
		case stderrors.Is(err, tenant.ErrTenantNotFound):
			skip = SkipClubNotFound
		case stderrors.Is(err, subscription.ErrExternalIDConflict):
			skip = SkipExternalIDMismatch
		}
		if skip != "" {
			uc.logger.Warnw("webhook acknowledged without transition",
				"tenant_id", cmd.TenantID,
				"shape", shape,
				"reason", skip,
			)
			return &WebhookResult{Error: skip, Shape: shape, TenantID: cmd.TenantID}, nil
		}
		if errors.GetAppError(err) != nil {
			return nil, err
		}
		return nil, errors.NewInternalError("failed to apply webhook").WithReason("internal_error")
	}

	uc.logger.Infow("webhook applied",
		"tenant_id", cmd.TenantID,
		"shape", shape,
		"status", sub.Status(),
	)
	return &WebhookResult{OK: true, Shape: shape, TenantID: cmd.TenantID, Status: sub.Status()}, nil
}

func (uc *HandlePaymentWebhookUseCase) record(shape, outcome string) {
	if uc.metrics != nil {
		uc.metrics.RecordWebhook(shape, outcome)
	}
}

func reasonOf(err error) string {
	if appErr := errors.GetAppError(err); appErr != nil && appErr.Reason != "" {
		return appErr.Reason
	}
	return "internal_error"
}
