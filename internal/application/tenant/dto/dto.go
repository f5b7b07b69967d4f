package dto

import (
	"time"

	subdto "github.com/clubsaas/clubsaas/internal/application/subscription/dto"
	"github.com/clubsaas/clubsaas/internal/domain/subscription"
	"github.com/clubsaas/clubsaas/internal/domain/tenant"
)

type TenantDTO struct {
	ID           string                  `json:"id"`
	Name         string                  `json:"name"`
	Slug         string                  `json:"slug"`
	Status       string                  `json:"status"`
	CreatedAt    time.Time               `json:"created_at"`
	Subscription *subdto.SubscriptionDTO `json:"subscription,omitempty"`
}

type SignupResultDTO struct {
	ClubID      string `json:"clubId"`
	CheckoutURL string `json:"checkoutUrl"`
}

type DashboardDTO struct {
	ClubsTotal    int64            `json:"clubsTotal"`
	ClubsActive   int64            `json:"clubsActive"`
	ClubsBlocked  int64            `json:"clubsBlocked"`
	Subscriptions map[string]int64 `json:"subscriptions"`
}

func ToTenantDTO(t *tenant.Tenant, sub *subscription.Subscription) *TenantDTO {
	if t == nil {
		return nil
	}
	return &TenantDTO{
		ID:           t.ID(),
		Name:         t.Name(),
		Slug:         t.Slug(),
		Status:       t.Status().String(),
		CreatedAt:    t.CreatedAt(),
		Subscription: subdto.ToSubscriptionDTO(sub),
	}
}
