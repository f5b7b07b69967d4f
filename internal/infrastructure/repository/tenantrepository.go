package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/clubsaas/clubsaas/internal/domain/tenant"
	"github.com/clubsaas/clubsaas/internal/infrastructure/persistence/mappers"
	"github.com/clubsaas/clubsaas/internal/infrastructure/persistence/models"
	"github.com/clubsaas/clubsaas/internal/shared/db"
	apperrors "github.com/clubsaas/clubsaas/internal/shared/errors"
	"github.com/clubsaas/clubsaas/internal/shared/logger"
)

type TenantRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.TenantMapper
	logger logger.Interface
}

func NewTenantRepository(db *gorm.DB, logger logger.Interface) tenant.Repository {
	return &TenantRepositoryImpl{
		db:     db,
		mapper: mappers.NewTenantMapper(),
		logger: logger,
	}
}

func (r *TenantRepositoryImpl) Create(ctx context.Context, t *tenant.Tenant) error {
	model := r.mapper.ToModel(t)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return tenant.ErrSlugTaken
		}
		r.logger.Errorw("failed to create tenant", "slug", model.Slug, "error", err)
		return fmt.Errorf("failed to create tenant: %w", err)
	}
	r.logger.Infow("tenant created", "tenant_id", model.ID, "slug", model.Slug, "status", model.Status)
	return nil
}

func (r *TenantRepositoryImpl) GetByID(ctx context.Context, id string) (*tenant.Tenant, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *TenantRepositoryImpl) GetBySlug(ctx context.Context, slug string) (*tenant.Tenant, error) {
	return r.first(ctx, "slug = ?", slug)
}

func (r *TenantRepositoryImpl) first(ctx context.Context, query string, arg interface{}) (*tenant.Tenant, error) {
	var model models.TenantModel
	if err := db.GetTxFromContext(ctx, r.db).Where(query, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get tenant", "query", query, "arg", arg, "error", err)
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *TenantRepositoryImpl) List(ctx context.Context) ([]*tenant.Tenant, error) {
	var list []*models.TenantModel
	if err := db.GetTxFromContext(ctx, r.db).Order("created_at DESC").Find(&list).Error; err != nil {
		r.logger.Errorw("failed to list tenants", "error", err)
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	out := make([]*tenant.Tenant, 0, len(list))
	for _, model := range list {
		t, err := r.mapper.ToEntity(model)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// UpdateStatus writes status only. Callers load the tenant first, so an
// unchanged row is not reported as missing.
func (r *TenantRepositoryImpl) UpdateStatus(ctx context.Context, t *tenant.Tenant) error {
	result := db.GetTxFromContext(ctx, r.db).Model(&models.TenantModel{}).
		Where("id = ?", t.ID()).
		Updates(map[string]interface{}{
			"status":     t.Status().String(),
			"updated_at": t.UpdatedAt(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update tenant status", "tenant_id", t.ID(), "error", result.Error)
		return fmt.Errorf("failed to update tenant status: %w", result.Error)
	}
	return nil
}

func (r *TenantRepositoryImpl) CountByStatus(ctx context.Context) (map[tenant.Status]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.TenantModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		r.logger.Errorw("failed to count tenants by status", "error", err)
		return nil, fmt.Errorf("failed to count tenants: %w", err)
	}
	counts := make(map[tenant.Status]int64, len(rows))
	for _, row := range rows {
		counts[tenant.Status(row.Status)] = row.Count
	}
	return counts, nil
}
