package handlers

import (
	"context"

	paymentUsecases "github.com/clubsaas/clubsaas/internal/application/payment/usecases"
	subdto "github.com/clubsaas/clubsaas/internal/application/subscription/dto"
	subUsecases "github.com/clubsaas/clubsaas/internal/application/subscription/usecases"
	tenantdto "github.com/clubsaas/clubsaas/internal/application/tenant/dto"
	tenantUsecases "github.com/clubsaas/clubsaas/internal/application/tenant/usecases"
	userUsecases "github.com/clubsaas/clubsaas/internal/application/user/usecases"
)

// Use case interfaces consumed by the handlers.

type paymentWebhookUseCase interface {
	Execute(ctx context.Context, req paymentUsecases.WebhookRequest) (*paymentUsecases.WebhookResult, error)
}

type signupTenantUseCase interface {
	Execute(ctx context.Context, cmd tenantUsecases.SignupTenantCommand) (*tenantdto.SignupResultDTO, error)
}

type provisionTenantUseCase interface {
	Execute(ctx context.Context, cmd tenantUsecases.ProvisionTenantCommand) (*tenantdto.TenantDTO, error)
}

type listTenantsUseCase interface {
	Execute(ctx context.Context) ([]*tenantdto.TenantDTO, error)
}

type getTenantUseCase interface {
	Execute(ctx context.Context, tenantID string) (*tenantdto.TenantDTO, error)
}

type getDashboardUseCase interface {
	Execute(ctx context.Context) (*tenantdto.DashboardDTO, error)
}

type getBillingStatusUseCase interface {
	Execute(ctx context.Context, tenantID string) (*subdto.BillingStatusDTO, error)
}

type createPlanUseCase interface {
	Execute(ctx context.Context, cmd subUsecases.CreatePlanCommand) (*subdto.PlanDTO, error)
}

type listPlansUseCase interface {
	Execute(ctx context.Context, activeOnly bool) ([]*subdto.PlanDTO, error)
}

type loginUseCase interface {
	Execute(ctx context.Context, cmd userUsecases.LoginCommand) (*userUsecases.LoginResult, error)
}
