package dto

import "github.com/clubsaas/clubsaas/internal/domain/subscription"

func ToPlanDTO(plan *subscription.Plan) *PlanDTO {
	if plan == nil {
		return nil
	}
	return &PlanDTO{
		ID:         plan.ID(),
		Name:       plan.Name(),
		Interval:   string(plan.Interval()),
		PriceCents: plan.PriceCents(),
		Price:      plan.Price(),
		Active:     plan.IsActive(),
		CreatedAt:  plan.CreatedAt(),
	}
}

// ToPlanDTOList returns an empty slice for empty input.
func ToPlanDTOList(plans []*subscription.Plan) []*PlanDTO {
	dtos := make([]*PlanDTO, 0, len(plans))
	for _, p := range plans {
		if p != nil {
			dtos = append(dtos, ToPlanDTO(p))
		}
	}
	return dtos
}

func ToSubscriptionDTO(sub *subscription.Subscription) *SubscriptionDTO {
	if sub == nil {
		return nil
	}
	return &SubscriptionDTO{
		TenantID:         sub.TenantID(),
		PlanID:           sub.PlanID(),
		Status:           sub.Status().String(),
		CurrentPeriodEnd: sub.CurrentPeriodEnd(),
		PaymentProvider:  sub.PaymentProvider().String(),
		HasMandate:       sub.ExternalID() != nil,
	}
}
