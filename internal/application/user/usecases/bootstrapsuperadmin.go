package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/clubsaas/clubsaas/internal/domain/user"
	vo "github.com/clubsaas/clubsaas/internal/domain/user/valueobjects"
	"github.com/clubsaas/clubsaas/internal/shared/authorization"
	"github.com/clubsaas/clubsaas/internal/shared/biztime"
	"github.com/clubsaas/clubsaas/internal/shared/errors"
	"github.com/clubsaas/clubsaas/internal/shared/logger"
	"github.com/clubsaas/clubsaas/internal/shared/utils"
)

type BootstrapSuperAdminCommand struct {
	Email    string
	Password string
	Name     string
}

// BootstrapSuperAdminUseCase seeds the platform operator at startup. It is
// safe to run on every boot and from several replicas at once: the unique
// email index decides, and losing that race counts as success.
type BootstrapSuperAdminUseCase struct {
	userRepo       user.Repository
	passwordHasher user.PasswordHasher
	logger         logger.Interface
}

func NewBootstrapSuperAdminUseCase(userRepo user.Repository, hasher user.PasswordHasher, logger logger.Interface) *BootstrapSuperAdminUseCase {
	return &BootstrapSuperAdminUseCase{userRepo: userRepo, passwordHasher: hasher, logger: logger}
}

// Execute reports whether an account was created. Empty email or password
// disables bootstrapping.
func (uc *BootstrapSuperAdminUseCase) Execute(ctx context.Context, cmd BootstrapSuperAdminCommand) (bool, error) {
	if strings.TrimSpace(cmd.Email) == "" || cmd.Password == "" {
		return false, nil
	}

	email, err := vo.NewEmail(cmd.Email)
	if err != nil {
		return false, fmt.Errorf("invalid bootstrap email: %w", err)
	}
	if err := vo.ValidatePassword(cmd.Password); err != nil {
		return false, fmt.Errorf("invalid bootstrap password: %w", err)
	}

	existing, err := uc.userRepo.GetByEmail(ctx, email.String())
	if err != nil {
		return false, fmt.Errorf("failed to look up super admin: %w", err)
	}
	if existing != nil {
		return false, nil
	}

	hash, err := uc.passwordHasher.Hash(cmd.Password)
	if err != nil {
		return false, err
	}

	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		name = "Owner"
	}
	admin, err := user.NewUser(email, name, hash, authorization.RoleSuperAdmin, nil, biztime.NowUTC())
	if err != nil {
		return false, err
	}

	if err := uc.userRepo.Create(ctx, admin); err != nil {
		if stderrors.Is(err, user.ErrEmailTaken) || errors.IsDuplicateError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create super admin: %w", err)
	}

	uc.logger.Infow("super admin bootstrapped", "email", utils.MaskEmail(email.String()))
	return true, nil
}
