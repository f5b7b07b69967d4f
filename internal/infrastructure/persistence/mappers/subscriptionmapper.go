package mappers

import (
	"fmt"

	"github.com/clubsaas/clubsaas/internal/domain/subscription"
	vo "github.com/clubsaas/clubsaas/internal/domain/subscription/valueobjects"
	"github.com/clubsaas/clubsaas/internal/infrastructure/persistence/models"
)

type SubscriptionMapper interface {
	ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error)
	ToModel(entity *subscription.Subscription) *models.SubscriptionModel
	ToEntities(models []*models.SubscriptionModel) ([]*subscription.Subscription, error)
}

type SubscriptionMapperImpl struct{}

func NewSubscriptionMapper() SubscriptionMapper {
	return &SubscriptionMapperImpl{}
}

func (m *SubscriptionMapperImpl) ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error) {
	if model == nil {
		return nil, nil
	}

	provider, err := vo.ParsePaymentProvider(model.PaymentProvider)
	if err != nil {
		return nil, fmt.Errorf("subscription %d: %w", model.ID, err)
	}

	entity, err := subscription.ReconstructSubscription(
		model.ID,
		model.TenantID,
		model.PlanID,
		vo.SubscriptionStatus(model.Status),
		model.CurrentPeriodEnd,
		model.ExternalID,
		provider,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct subscription %d: %w", model.ID, err)
	}
	return entity, nil
}

func (m *SubscriptionMapperImpl) ToModel(entity *subscription.Subscription) *models.SubscriptionModel {
	if entity == nil {
		return nil
	}
	return &models.SubscriptionModel{
		ID:               entity.ID(),
		TenantID:         entity.TenantID(),
		PlanID:           entity.PlanID(),
		Status:           entity.Status().String(),
		CurrentPeriodEnd: entity.CurrentPeriodEnd(),
		ExternalID:       entity.ExternalID(),
		PaymentProvider:  entity.PaymentProvider().String(),
		Version:          entity.Version(),
		CreatedAt:        entity.CreatedAt(),
		UpdatedAt:        entity.UpdatedAt(),
	}
}

func (m *SubscriptionMapperImpl) ToEntities(list []*models.SubscriptionModel) ([]*subscription.Subscription, error) {
	entities := make([]*subscription.Subscription, 0, len(list))
	for _, model := range list {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
