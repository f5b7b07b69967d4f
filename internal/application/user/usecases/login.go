package usecases

import (
	"context"
	"fmt"

	"github.com/clubsaas/clubsaas/internal/domain/user"
	vo "github.com/clubsaas/clubsaas/internal/domain/user/valueobjects"
	"github.com/clubsaas/clubsaas/internal/shared/authorization"
	"github.com/clubsaas/clubsaas/internal/shared/errors"
	"github.com/clubsaas/clubsaas/internal/shared/logger"
	"github.com/clubsaas/clubsaas/internal/shared/utils"
)

type TokenIssuer interface {
	Generate(userID uint, role authorization.UserRole, tenantID string) (string, int64, error)
}

type LoginCommand struct {
	Email    string
	Password string
}

type LoginResult struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	UserID      uint   `json:"user_id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	TenantID    string `json:"tenant_id,omitempty"`
}

type LoginUseCase struct {
	userRepo       user.Repository
	passwordHasher user.PasswordHasher
	tokens         TokenIssuer
	logger         logger.Interface
}

func NewLoginUseCase(userRepo user.Repository, hasher user.PasswordHasher, tokens TokenIssuer, logger logger.Interface) *LoginUseCase {
	return &LoginUseCase{
		userRepo:       userRepo,
		passwordHasher: hasher,
		tokens:         tokens,
		logger:         logger,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	email, err := vo.NewEmail(cmd.Email)
	if err != nil {
		return nil, errors.NewValidationError("invalid email").WithReason("invalid_payload")
	}

	existing, err := uc.userRepo.GetByEmail(ctx, email.String())
	if err != nil {
		uc.logger.Errorw("failed to get user by email", "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	// Same answer for unknown email and wrong password.
	if existing == nil || existing.VerifyPassword(cmd.Password, uc.passwordHasher) != nil {
		uc.logger.Infow("login failed", "email", utils.MaskEmail(email.String()))
		return nil, errors.NewUnauthorizedError("invalid email or password").WithReason("invalid_credentials")
	}

	token, expiresIn, err := uc.tokens.Generate(existing.ID(), existing.Role(), existing.TenantID())
	if err != nil {
		uc.logger.Errorw("failed to issue token", "user_id", existing.ID(), "error", err)
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	uc.logger.Infow("user logged in", "user_id", existing.ID(), "role", existing.Role())
	return &LoginResult{
		AccessToken: token,
		ExpiresIn:   expiresIn,
		UserID:      existing.ID(),
		Name:        existing.Name(),
		Role:        existing.Role().String(),
		TenantID:    existing.TenantID(),
	}, nil
}
