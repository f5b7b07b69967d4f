package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/clubsaas/clubsaas/internal/domain/subscription"
	vo "github.com/clubsaas/clubsaas/internal/domain/subscription/valueobjects"
	"github.com/clubsaas/clubsaas/internal/infrastructure/persistence/mappers"
	"github.com/clubsaas/clubsaas/internal/infrastructure/persistence/models"
	"github.com/clubsaas/clubsaas/internal/shared/db"
	"github.com/clubsaas/clubsaas/internal/shared/logger"
)

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SubscriptionMapper
	logger logger.Interface
}

func NewSubscriptionRepository(db *gorm.DB, logger logger.Interface) subscription.SubscriptionRepository {
	return &SubscriptionRepositoryImpl{
		db:     db,
		mapper: mappers.NewSubscriptionMapper(),
		logger: logger,
	}
}

func (r *SubscriptionRepositoryImpl) Create(ctx context.Context, entity *subscription.Subscription) error {
	model := r.mapper.ToModel(entity)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create subscription in database", "tenant_id", model.TenantID, "error", err)
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set subscription ID: %w", err)
	}

	r.logger.Infow("subscription created", "id", model.ID, "tenant_id", model.TenantID, "status", model.Status)
	return nil
}

func (r *SubscriptionRepositoryImpl) GetByTenantID(ctx context.Context, tenantID string) (*subscription.Subscription, error) {
	return r.first(ctx, "tenant_id = ?", tenantID)
}

func (r *SubscriptionRepositoryImpl) GetByExternalID(ctx context.Context, externalID string) (*subscription.Subscription, error) {
	return r.first(ctx, "external_id = ?", externalID)
}

func (r *SubscriptionRepositoryImpl) first(ctx context.Context, query string, arg interface{}) (*subscription.Subscription, error) {
	var model models.SubscriptionModel

	if err := db.GetTxFromContext(ctx, r.db).Where(query, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription", "query", query, "arg", arg, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map subscription model to entity", "id", model.ID, "error", err)
		return nil, fmt.Errorf("failed to map subscription: %w", err)
	}
	return entity, nil
}

// Update overwrites the mutable billing columns. Concurrent writers are
// serialised by the database; the last commit wins.
func (r *SubscriptionRepositoryImpl) Update(ctx context.Context, entity *subscription.Subscription) error {
	model := r.mapper.ToModel(entity)

	result := db.GetTxFromContext(ctx, r.db).Model(&models.SubscriptionModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"plan_id":            model.PlanID,
			"status":             model.Status,
			"current_period_end": model.CurrentPeriodEnd,
			"external_id":        model.ExternalID,
			"payment_provider":   model.PaymentProvider,
			"version":            gorm.Expr("version + 1"),
			"updated_at":         model.UpdatedAt,
		})

	if result.Error != nil {
		r.logger.Errorw("failed to update subscription", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update subscription: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return subscription.ErrSubscriptionNotFound
	}

	r.logger.Debugw("subscription updated", "id", model.ID, "tenant_id", model.TenantID, "status", model.Status)
	return nil
}

func (r *SubscriptionRepositoryImpl) ListReconcileCandidates(ctx context.Context, provider vo.PaymentProvider, now time.Time) ([]*subscription.Subscription, error) {
	var list []*models.SubscriptionModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("payment_provider = ? AND external_id IS NOT NULL AND external_id <> ''", provider.String()).
		Where(
			r.db.Where("status = ?", vo.StatusPastDue.String()).
				Or("status = ? AND current_period_end < ?", vo.StatusActive.String(), now.UTC()),
		).
		Order("id ASC").
		Find(&list).Error
	if err != nil {
		r.logger.Errorw("failed to list reconcile candidates", "provider", provider, "error", err)
		return nil, fmt.Errorf("failed to list reconcile candidates: %w", err)
	}

	entities, err := r.mapper.ToEntities(list)
	if err != nil {
		r.logger.Errorw("failed to map reconcile candidates", "error", err)
		return nil, fmt.Errorf("failed to map subscriptions: %w", err)
	}
	return entities, nil
}

func (r *SubscriptionRepositoryImpl) CountByStatus(ctx context.Context) (map[vo.SubscriptionStatus]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.SubscriptionModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		r.logger.Errorw("failed to count subscriptions by status", "error", err)
		return nil, fmt.Errorf("failed to count subscriptions: %w", err)
	}

	counts := make(map[vo.SubscriptionStatus]int64, len(rows))
	for _, row := range rows {
		counts[vo.SubscriptionStatus(row.Status)] = row.Count
	}
	return counts, nil
}
