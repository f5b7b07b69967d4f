package http

import (
	paymentUsecases "github.com/clubsaas/clubsaas/internal/application/payment/usecases"
	subUsecases "github.com/clubsaas/clubsaas/internal/application/subscription/usecases"
	tenantUsecases "github.com/clubsaas/clubsaas/internal/application/tenant/usecases"
	userUsecases "github.com/clubsaas/clubsaas/internal/application/user/usecases"
)

func (c *Container) initUseCases() {
	// Subscription engine and its readers
	c.applyStatusUC = subUsecases.NewApplySubscriptionStatusUseCase(c.txManager, c.subscriptionRepo, c.tenantRepo, c.log)
	c.applyStatusUC.SetMetrics(c.billingMetrics)

	c.authorizeTenantUC = subUsecases.NewAuthorizeTenantUseCase(c.tenantRepo, c.subscriptionRepo, c.log)
	c.authorizeTenantUC.SetMetrics(c.billingMetrics)

	c.reconcileUC = subUsecases.NewReconcileSubscriptionsUseCase(c.subscriptionRepo, c.mandateGateway, c.applyStatusUC, c.log.Named("reconcile"))
	c.reconcileUC.SetConcurrency(c.cfg.Billing.PollConcurrency)
	c.reconcileUC.SetMetrics(c.billingMetrics)

	c.billingStatusUC = subUsecases.NewGetBillingStatusUseCase(c.tenantRepo, c.subscriptionRepo, c.planRepo, c.log)
	c.createPlanUC = subUsecases.NewCreatePlanUseCase(c.planRepo, c.log)
	c.listPlansUC = subUsecases.NewListPlansUseCase(c.planRepo, c.log)

	// Webhook ingestion
	verifier := paymentUsecases.NewWebhookVerifier(c.cfg.Billing.WebhookSecret, c.cfg.Billing.AllowUnsignedWebhook)
	if !verifier.SecretConfigured() {
		c.log.Warnw("payment webhook secret not configured, webhooks are accepted without verification")
	}
	c.webhookUC = paymentUsecases.NewHandlePaymentWebhookUseCase(verifier, c.mandateGateway, c.applyStatusUC, c.log.Named("webhook"))
	c.webhookUC.SetMetrics(c.billingMetrics)

	// Tenants
	c.signupUC = tenantUsecases.NewSignupTenantUseCase(
		c.txManager, c.tenantRepo, c.subscriptionRepo, c.planRepo, c.userRepo,
		c.passwordHasher, c.mandateGateway, c.applyStatusUC, c.log,
	)
	c.provisionUC = tenantUsecases.NewProvisionTenantUseCase(
		c.txManager, c.tenantRepo, c.subscriptionRepo, c.planRepo, c.userRepo,
		c.passwordHasher, c.log,
	)
	c.listTenantsUC = tenantUsecases.NewListTenantsUseCase(c.tenantRepo, c.subscriptionRepo, c.log)
	c.getTenantUC = tenantUsecases.NewGetTenantUseCase(c.tenantRepo, c.subscriptionRepo)
	c.dashboardUC = tenantUsecases.NewGetDashboardUseCase(c.tenantRepo, c.subscriptionRepo, c.log)

	// Users
	c.loginUC = userUsecases.NewLoginUseCase(c.userRepo, c.passwordHasher, c.jwtService, c.log)
	c.bootstrapUC = userUsecases.NewBootstrapSuperAdminUseCase(c.userRepo, c.passwordHasher, c.log)
}
