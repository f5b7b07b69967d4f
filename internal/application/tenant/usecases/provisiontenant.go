package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/clubsaas/clubsaas/internal/application/tenant/dto"
	"github.com/clubsaas/clubsaas/internal/domain/subscription"
	"github.com/clubsaas/clubsaas/internal/domain/tenant"
	"github.com/clubsaas/clubsaas/internal/domain/user"
	userVO "github.com/clubsaas/clubsaas/internal/domain/user/valueobjects"
	"github.com/clubsaas/clubsaas/internal/shared/authorization"
	"github.com/clubsaas/clubsaas/internal/shared/biztime"
	"github.com/clubsaas/clubsaas/internal/shared/db"
	"github.com/clubsaas/clubsaas/internal/shared/errors"
	"github.com/clubsaas/clubsaas/internal/shared/logger"
)

type ProvisionTenantCommand struct {
	Name             string
	Slug             string
	PlanID           uint
	CurrentPeriodEnd time.Time
	AdminName        string
	AdminEmail       string
	AdminPassword    string
}

// ProvisionTenantUseCase lets an operator create a club that is billed
// outside the payment provider. The club is ACTIVE until CurrentPeriodEnd.
type ProvisionTenantUseCase struct {
	txManager      db.TransactionRunner
	tenantRepo     tenant.Repository
	subRepo        subscription.SubscriptionRepository
	planRepo       subscription.PlanRepository
	userRepo       user.Repository
	passwordHasher user.PasswordHasher
	now            biztime.Clock
	logger         logger.Interface
}

func NewProvisionTenantUseCase(
	txManager db.TransactionRunner,
	tenantRepo tenant.Repository,
	subRepo subscription.SubscriptionRepository,
	planRepo subscription.PlanRepository,
	userRepo user.Repository,
	hasher user.PasswordHasher,
	logger logger.Interface,
) *ProvisionTenantUseCase {
	return &ProvisionTenantUseCase{
		txManager:      txManager,
		tenantRepo:     tenantRepo,
		subRepo:        subRepo,
		planRepo:       planRepo,
		userRepo:       userRepo,
		passwordHasher: hasher,
		now:            biztime.NowUTC,
		logger:         logger,
	}
}

// SetClock overrides the time source (optional).
func (uc *ProvisionTenantUseCase) SetClock(clock biztime.Clock) {
	uc.now = clock
}

func (uc *ProvisionTenantUseCase) Execute(ctx context.Context, cmd ProvisionTenantCommand) (*dto.TenantDTO, error) {
	slug, ok := normalizeSlug(cmd.Slug)
	if !ok || len(strings.TrimSpace(cmd.Name)) < 2 || cmd.CurrentPeriodEnd.IsZero() {
		return nil, errors.NewValidationError("invalid club payload").WithReason("invalid_payload")
	}
	email, err := userVO.NewEmail(cmd.AdminEmail)
	if err != nil {
		return nil, errors.NewValidationError("invalid admin email").WithReason("invalid_payload")
	}
	if err := userVO.ValidatePassword(cmd.AdminPassword); err != nil {
		return nil, errors.NewValidationError(err.Error()).WithReason("invalid_payload")
	}

	plan, err := uc.planRepo.GetByID(ctx, cmd.PlanID)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		return nil, errors.NewValidationError("plan not found").WithReason("invalid_plan")
	}

	hash, err := uc.passwordHasher.Hash(cmd.AdminPassword)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	club, err := tenant.NewTenant(cmd.Name, slug, tenant.StatusActive, now)
	if err != nil {
		return nil, errors.NewValidationError(err.Error()).WithReason("invalid_payload")
	}
	sub, err := subscription.NewManualSubscription(club.ID(), plan.ID(), cmd.CurrentPeriodEnd, now)
	if err != nil {
		return nil, errors.NewValidationError(err.Error()).WithReason("invalid_payload")
	}
	// A period end already in the past starts the club blocked.
	club.SyncAccess(sub.IsActiveAt(now), now)

	clubID := club.ID()
	admin, err := user.NewUser(email, cmd.AdminName, hash, authorization.RoleClubAdmin, &clubID, now)
	if err != nil {
		return nil, errors.NewValidationError(err.Error()).WithReason("invalid_payload")
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.tenantRepo.Create(txCtx, club); err != nil {
			return err
		}
		if err := uc.subRepo.Create(txCtx, sub); err != nil {
			return err
		}
		return uc.userRepo.Create(txCtx, admin)
	})
	switch {
	case err == nil:
	case stderrors.Is(err, tenant.ErrSlugTaken):
		return nil, errors.NewConflictError("slug already taken").WithReason("slug_taken")
	case stderrors.Is(err, user.ErrEmailTaken):
		return nil, errors.NewConflictError("email already registered").WithReason("email_taken")
	default:
		uc.logger.Errorw("failed to provision club", "slug", slug, "error", err)
		return nil, fmt.Errorf("failed to provision club: %w", err)
	}

	uc.logger.Infow("club provisioned",
		"tenant_id", clubID,
		"slug", slug,
		"status", club.Status(),
		"current_period_end", sub.CurrentPeriodEnd(),
	)
	return dto.ToTenantDTO(club, sub), nil
}
