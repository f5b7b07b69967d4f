package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/clubsaas/clubsaas/internal/domain/user"
	"github.com/clubsaas/clubsaas/internal/infrastructure/persistence/mappers"
	"github.com/clubsaas/clubsaas/internal/infrastructure/persistence/models"
	"github.com/clubsaas/clubsaas/internal/shared/authorization"
	"github.com/clubsaas/clubsaas/internal/shared/db"
	apperrors "github.com/clubsaas/clubsaas/internal/shared/errors"
	"github.com/clubsaas/clubsaas/internal/shared/logger"
	"github.com/clubsaas/clubsaas/internal/shared/utils"
)

type UserRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.UserMapper
	logger logger.Interface
}

func NewUserRepository(db *gorm.DB, logger logger.Interface) user.Repository {
	return &UserRepositoryImpl{db: db, mapper: mappers.NewUserMapper(), logger: logger}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, u *user.User) error {
	model := r.mapper.ToModel(u)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return fmt.Errorf("%w: %v", user.ErrEmailTaken, err)
		}
		r.logger.Errorw("failed to create user", "email", utils.MaskEmail(model.Email), "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}
	r.logger.Infow("user created", "id", model.ID, "role", model.Role)
	return u.SetID(model.ID)
}

func (r *UserRepositoryImpl) GetByID(ctx context.Context, id uint) (*user.User, error) {
	var model models.UserModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get user by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var model models.UserModel
	if err := db.GetTxFromContext(ctx, r.db).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get user by email", "email", utils.MaskEmail(email), "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *UserRepositoryImpl) CountByRole(ctx context.Context, role authorization.UserRole) (int64, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.UserModel{}).Where("role = ?", role.String()).Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count users by role", "role", role, "error", err)
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
