package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/clubsaas/clubsaas/internal/application/payment/paymentgateway"
	"github.com/clubsaas/clubsaas/internal/application/tenant/dto"
	subUsecases "github.com/clubsaas/clubsaas/internal/application/subscription/usecases"
	"github.com/clubsaas/clubsaas/internal/domain/subscription"
	subVO "github.com/clubsaas/clubsaas/internal/domain/subscription/valueobjects"
	"github.com/clubsaas/clubsaas/internal/domain/tenant"
	"github.com/clubsaas/clubsaas/internal/domain/user"
	userVO "github.com/clubsaas/clubsaas/internal/domain/user/valueobjects"
	"github.com/clubsaas/clubsaas/internal/shared/authorization"
	"github.com/clubsaas/clubsaas/internal/shared/biztime"
	"github.com/clubsaas/clubsaas/internal/shared/db"
	"github.com/clubsaas/clubsaas/internal/shared/errors"
	"github.com/clubsaas/clubsaas/internal/shared/logger"
	"github.com/clubsaas/clubsaas/internal/shared/utils"
)

type SignupTenantCommand struct {
	ClubName      string
	Slug          string
	PlanID        uint
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

// SignupTenantUseCase registers a self-service club. The club starts BLOCKED
// with a PAST_DUE subscription and only gains access once the provider
// authorizes the mandate created here.
type SignupTenantUseCase struct {
	txManager      db.TransactionRunner
	tenantRepo     tenant.Repository
	subRepo        subscription.SubscriptionRepository
	planRepo       subscription.PlanRepository
	userRepo       user.Repository
	passwordHasher user.PasswordHasher
	gateway        paymentgateway.MandateGateway
	engine         subUsecases.StatusApplier
	now            biztime.Clock
	logger         logger.Interface
}

func NewSignupTenantUseCase(
	txManager db.TransactionRunner,
	tenantRepo tenant.Repository,
	subRepo subscription.SubscriptionRepository,
	planRepo subscription.PlanRepository,
	userRepo user.Repository,
	hasher user.PasswordHasher,
	gateway paymentgateway.MandateGateway,
	engine subUsecases.StatusApplier,
	logger logger.Interface,
) *SignupTenantUseCase {
	return &SignupTenantUseCase{
		txManager:      txManager,
		tenantRepo:     tenantRepo,
		subRepo:        subRepo,
		planRepo:       planRepo,
		userRepo:       userRepo,
		passwordHasher: hasher,
		gateway:        gateway,
		engine:         engine,
		now:            biztime.NowUTC,
		logger:         logger,
	}
}

// SetClock overrides the time source (optional).
func (uc *SignupTenantUseCase) SetClock(clock biztime.Clock) {
	uc.now = clock
}

func (uc *SignupTenantUseCase) Execute(ctx context.Context, cmd SignupTenantCommand) (*dto.SignupResultDTO, error) {
	slug, ok := normalizeSlug(cmd.Slug)
	if !ok || len(strings.TrimSpace(cmd.ClubName)) < 2 || len(strings.TrimSpace(cmd.AdminName)) < 2 {
		return nil, errors.NewValidationError("invalid signup payload").WithReason("invalid_payload")
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
	if plan == nil || !plan.IsActive() {
		return nil, errors.NewValidationError("plan not available").WithReason("invalid_plan")
	}

	if err := uc.checkAvailability(ctx, slug, email.String()); err != nil {
		return nil, err
	}

	hash, err := uc.passwordHasher.Hash(cmd.AdminPassword)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	club, err := tenant.NewTenant(cmd.ClubName, slug, tenant.StatusBlocked, now)
	if err != nil {
		return nil, errors.NewValidationError(err.Error()).WithReason("invalid_payload")
	}
	sub, err := subscription.NewPendingSubscription(club.ID(), plan.ID(), now)
	if err != nil {
		return nil, err
	}
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
	if err != nil {
		return nil, uc.mapCreateError(err)
	}

	uc.logger.Infow("club signed up",
		"tenant_id", clubID,
		"slug", slug,
		"plan_id", plan.ID(),
		"admin_email", utils.MaskEmail(email.String()),
	)

	mandate, err := uc.gateway.CreateMandate(ctx, paymentgateway.CreateMandateRequest{
		TenantID:    clubID,
		TenantName:  club.Name(),
		PlanName:    plan.Name(),
		Interval:    plan.Interval(),
		AmountCents: plan.PriceCents(),
		PayerEmail:  email.String(),
	})
	if err != nil {
		uc.logger.Errorw("failed to create mandate", "tenant_id", clubID, "error", err)
		return nil, errors.NewUpstreamError("payment provider unavailable").WithReason("mandate_creation_failed")
	}

	provider := subVO.ProviderMercadoPago
	_, err = uc.engine.Execute(ctx, subUsecases.ApplyStatusCommand{
		TenantID:         clubID,
		Status:           sub.Status(),
		CurrentPeriodEnd: sub.CurrentPeriodEnd(),
		ExternalID:       &mandate.ID,
		PaymentProvider:  &provider,
	})
	if err != nil {
		uc.logger.Errorw("failed to bind mandate", "tenant_id", clubID, "mandate_id", mandate.ID, "error", err)
		return nil, fmt.Errorf("failed to bind mandate: %w", err)
	}

	return &dto.SignupResultDTO{ClubID: clubID, CheckoutURL: mandate.InitPoint}, nil
}

func (uc *SignupTenantUseCase) checkAvailability(ctx context.Context, slug, email string) error {
	existing, err := uc.tenantRepo.GetBySlug(ctx, slug)
	if err != nil {
		return fmt.Errorf("failed to check slug: %w", err)
	}
	if existing != nil {
		return errors.NewConflictError("slug already taken").WithReason("slug_taken")
	}

	u, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if u != nil {
		return errors.NewConflictError("email already registered").WithReason("email_taken")
	}
	return nil
}

// mapCreateError turns a lost uniqueness race into the same conflict the
// pre-checks report.
func (uc *SignupTenantUseCase) mapCreateError(err error) error {
	switch {
	case stderrors.Is(err, tenant.ErrSlugTaken):
		return errors.NewConflictError("slug already taken").WithReason("slug_taken")
	case stderrors.Is(err, user.ErrEmailTaken):
		return errors.NewConflictError("email already registered").WithReason("email_taken")
	}
	uc.logger.Errorw("failed to create club", "error", err)
	return fmt.Errorf("failed to create club: %w", err)
}
