package paymentgateway

import (
	"context"
	"errors"
	"time"

	vo "github.com/clubsaas/clubsaas/internal/domain/subscription/valueobjects"
)

// ErrMandateNotFound is returned when the provider has no mandate with the given id.
var ErrMandateNotFound = errors.New("mandate not found")

// MandateGateway abstracts the recurring-payment provider.
type MandateGateway interface {
	CreateMandate(ctx context.Context, req CreateMandateRequest) (*Mandate, error)
	GetMandate(ctx context.Context, mandateID string) (*Mandate, error)
}

// CreateMandateRequest describes a recurring authorization for one tenant.
type CreateMandateRequest struct {
	TenantID   string
	TenantName string
	PlanName   string
	Interval   vo.PlanInterval
	// Amount in smallest currency unit
	AmountCents int64
	PayerEmail  string
}

// Mandate is the provider's view of a recurring authorization.
type Mandate struct {
	ID                string
	Status            string
	ExternalReference string
	NextPaymentDate   *time.Time
	InitPoint         string
}
