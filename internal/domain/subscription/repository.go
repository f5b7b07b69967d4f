package subscription

import (
	"context"
	"time"

	vo "github.com/clubsaas/clubsaas/internal/domain/subscription/valueobjects"
)

// SubscriptionRepository persists subscriptions. Getters return (nil, nil)
// when nothing matches.
type SubscriptionRepository interface {
	Create(ctx context.Context, subscription *Subscription) error
	GetByTenantID(ctx context.Context, tenantID string) (*Subscription, error)
	GetByExternalID(ctx context.Context, externalID string) (*Subscription, error)
	Update(ctx context.Context, subscription *Subscription) error

	// ListReconcileCandidates returns provider-collected subscriptions with a
	// bound mandate that are PAST_DUE, or ACTIVE with a period end before now.
	ListReconcileCandidates(ctx context.Context, provider vo.PaymentProvider, now time.Time) ([]*Subscription, error)
	CountByStatus(ctx context.Context) (map[vo.SubscriptionStatus]int64, error)
}

type PlanRepository interface {
	Create(ctx context.Context, plan *Plan) error
	GetByID(ctx context.Context, id uint) (*Plan, error)
	List(ctx context.Context, activeOnly bool) ([]*Plan, error)
}
