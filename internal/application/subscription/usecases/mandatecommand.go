package usecases

import (
	"time"

	"github.com/clubsaas/clubsaas/internal/application/payment/paymentgateway"
	vo "github.com/clubsaas/clubsaas/internal/domain/subscription/valueobjects"
)

// CommandFromMandate maps a fetched provider mandate into an engine command.
// Webhook ingestion and the poller both go through here. now is carried as
// AppliedAt so a fallback period end is judged at the instant it was taken.
func CommandFromMandate(tenantID string, m *paymentgateway.Mandate, now time.Time) ApplyStatusCommand {
	provider := vo.ProviderMercadoPago
	externalID := m.ID
	return ApplyStatusCommand{
		TenantID:         tenantID,
		Status:           vo.MapMandateState(m.Status),
		CurrentPeriodEnd: vo.ResolvePeriodEnd(m.NextPaymentDate, now),
		ExternalID:       &externalID,
		PaymentProvider:  &provider,
		AppliedAt:        now,
	}
}
