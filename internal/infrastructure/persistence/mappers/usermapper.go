package mappers

import (
	"fmt"

	"github.com/clubsaas/clubsaas/internal/domain/user"
	vo "github.com/clubsaas/clubsaas/internal/domain/user/valueobjects"
	"github.com/clubsaas/clubsaas/internal/infrastructure/persistence/models"
	"github.com/clubsaas/clubsaas/internal/shared/authorization"
)

type UserMapper struct{}

func NewUserMapper() UserMapper {
	return UserMapper{}
}

func (UserMapper) ToEntity(model *models.UserModel) (*user.User, error) {
	if model == nil {
		return nil, nil
	}
	email, err := vo.NewEmail(model.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid email in user %d: %w", model.ID, err)
	}
	u, err := user.ReconstructUser(model.ID, email, model.Name, model.PasswordHash, authorization.UserRole(model.Role), model.TenantID, model.CreatedAt, model.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct user %d: %w", model.ID, err)
	}
	return u, nil
}

func (UserMapper) ToModel(entity *user.User) *models.UserModel {
	var tenantID *string
	if id := entity.TenantID(); id != "" {
		tenantID = &id
	}
	return &models.UserModel{
		ID:           entity.ID(),
		Email:        entity.Email().String(),
		Name:         entity.Name(),
		PasswordHash: entity.PasswordHash(),
		Role:         entity.Role().String(),
		TenantID:     tenantID,
		CreatedAt:    entity.CreatedAt(),
		UpdatedAt:    entity.UpdatedAt(),
	}
}
