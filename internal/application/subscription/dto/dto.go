package dto

import "time"

type PlanDTO struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Interval   string    `json:"interval"`
	PriceCents int64     `json:"price_cents"`
	Price      float64   `json:"price"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
}

// SubscriptionDTO is the subscription as shown to operators and tenant admins.
// The mandate id itself is never exposed.
type SubscriptionDTO struct {
	TenantID         string    `json:"tenant_id"`
	PlanID           uint      `json:"plan_id"`
	Status           string    `json:"status"`
	CurrentPeriodEnd time.Time `json:"current_period_end"`
	PaymentProvider  string    `json:"payment_provider"`
	HasMandate       bool      `json:"has_mandate"`
}

// BillingStatusDTO explains to a tenant why access is or is not granted.
type BillingStatusDTO struct {
	TenantID     string           `json:"tenant_id"`
	TenantStatus string           `json:"tenant_status"`
	Active       bool             `json:"active"`
	Subscription *SubscriptionDTO `json:"subscription,omitempty"`
	Plan         *PlanDTO         `json:"plan,omitempty"`
}
