package http

import (
	"github.com/clubsaas/clubsaas/internal/infrastructure/ratelimit"
	"github.com/clubsaas/clubsaas/internal/interfaces/http/handlers"
	"github.com/clubsaas/clubsaas/internal/interfaces/http/middleware"
)

func (c *Container) initHandlers() {
	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtService, c.userRepo, c.log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.enforcer, c.log)
	c.subscriptionGate = middleware.NewSubscriptionGate(c.authorizeTenantUC, c.log)
	if c.cfg.RateLimit.Enabled {
		policy := ratelimit.Policy{Limit: c.cfg.RateLimit.Limit, Window: c.cfg.RateLimit.Window}
		c.publicRateLimiter = middleware.NewRateLimiter(c.rateLimiter, policy, "public", c.log)
	}

	c.healthHandler = handlers.NewHealthHandler()
	c.webhookHandler = handlers.NewPaymentWebhookHandler(c.webhookUC, c.log)
	c.clubHandler = handlers.NewClubHandler(c.signupUC, c.provisionUC, c.listTenantsUC, c.getTenantUC, c.log)
	c.planHandler = handlers.NewPlanHandler(c.createPlanUC, c.listPlansUC, c.log)
	c.authHandler = handlers.NewAuthHandler(c.loginUC, c.log)
	c.billingHandler = handlers.NewBillingHandler(c.billingStatusUC, c.dashboardUC, c.log)
}
