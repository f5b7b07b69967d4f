package subscription

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/clubsaas/clubsaas/internal/domain/subscription/valueobjects"
)

// Subscription is a tenant's billing record. There is exactly one per tenant.
type Subscription struct {
	id               uint
	tenantID         string
	planID           uint
	status           vo.SubscriptionStatus
	currentPeriodEnd time.Time
	externalID       *string
	paymentProvider  vo.PaymentProvider
	version          int
	createdAt        time.Time
	updatedAt        time.Time
}

// NewPendingSubscription creates the record for a self-service signup: it
// starts PAST_DUE with the period ending now and is collected by the provider.
func NewPendingSubscription(tenantID string, planID uint, now time.Time) (*Subscription, error) {
	return newSubscription(tenantID, planID, vo.StatusPastDue, now, vo.ProviderMercadoPago, now)
}

// NewManualSubscription creates an operator-provisioned subscription that is
// active until periodEnd and never polled.
func NewManualSubscription(tenantID string, planID uint, periodEnd, now time.Time) (*Subscription, error) {
	return newSubscription(tenantID, planID, vo.StatusActive, periodEnd, vo.ProviderManual, now)
}

func newSubscription(tenantID string, planID uint, status vo.SubscriptionStatus, periodEnd time.Time, provider vo.PaymentProvider, now time.Time) (*Subscription, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("tenant ID is required")
	}
	if planID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}
	now = now.UTC()
	return &Subscription{
		tenantID:         tenantID,
		planID:           planID,
		status:           status,
		currentPeriodEnd: periodEnd.UTC(),
		paymentProvider:  provider,
		version:          1,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

// ReconstructSubscription reconstructs a subscription from persistence
func ReconstructSubscription(
	id uint,
	tenantID string,
	planID uint,
	status vo.SubscriptionStatus,
	currentPeriodEnd time.Time,
	externalID *string,
	provider vo.PaymentProvider,
	version int,
	createdAt, updatedAt time.Time,
) (*Subscription, error) {
	if id == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if tenantID == "" {
		return nil, fmt.Errorf("tenant ID is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}
	if !provider.IsValid() {
		return nil, fmt.Errorf("invalid payment provider: %s", provider)
	}
	if externalID != nil && *externalID == "" {
		externalID = nil
	}
	return &Subscription{
		id:               id,
		tenantID:         tenantID,
		planID:           planID,
		status:           status,
		currentPeriodEnd: currentPeriodEnd.UTC(),
		externalID:       externalID,
		paymentProvider:  provider,
		version:          version,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}, nil
}

func (s *Subscription) ID() uint {
	return s.id
}

func (s *Subscription) TenantID() string {
	return s.tenantID
}

func (s *Subscription) PlanID() uint {
	return s.planID
}

func (s *Subscription) Status() vo.SubscriptionStatus {
	return s.status
}

func (s *Subscription) CurrentPeriodEnd() time.Time {
	return s.currentPeriodEnd
}

// ExternalID returns the provider mandate id, or nil when none is bound yet.
func (s *Subscription) ExternalID() *string {
	return s.externalID
}

func (s *Subscription) PaymentProvider() vo.PaymentProvider {
	return s.paymentProvider
}

func (s *Subscription) Version() int {
	return s.version
}

func (s *Subscription) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Subscription) UpdatedAt() time.Time {
	return s.updatedAt
}

// SetID is called by the repository after insert.
func (s *Subscription) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("subscription ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.id = id
	return nil
}

// IsActiveAt reports whether the subscription grants access at now. The
// period end itself is still inside the period.
func (s *Subscription) IsActiveAt(now time.Time) bool {
	return s.status.GrantsAccess() && !s.currentPeriodEnd.Before(now)
}

// ApplyStatus overwrites status and period end. A non-empty externalID binds
// the mandate when none is bound yet; once bound it can only be repeated.
// An empty externalID leaves the binding untouched.
func (s *Subscription) ApplyStatus(status vo.SubscriptionStatus, periodEnd time.Time, externalID *string, now time.Time) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}
	if err := s.bindExternalID(externalID); err != nil {
		return err
	}
	s.status = status
	s.currentPeriodEnd = periodEnd.UTC()
	s.updatedAt = now.UTC()
	return nil
}

// SwitchProvider changes who collects payment. Used when an operator moves a
// manual tenant onto the provider or back.
func (s *Subscription) SwitchProvider(provider vo.PaymentProvider) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid payment provider: %s", provider)
	}
	s.paymentProvider = provider
	return nil
}

func (s *Subscription) bindExternalID(externalID *string) error {
	if externalID == nil {
		return nil
	}
	id := strings.TrimSpace(*externalID)
	if id == "" {
		return nil
	}
	if s.externalID == nil {
		s.externalID = &id
		return nil
	}
	if *s.externalID != id {
		return fmt.Errorf("%w: bound=%s incoming=%s", ErrExternalIDConflict, *s.externalID, id)
	}
	return nil
}
