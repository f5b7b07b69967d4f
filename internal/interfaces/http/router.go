package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/clubsaas/clubsaas/internal/interfaces/http/middleware"
	"github.com/clubsaas/clubsaas/internal/interfaces/http/routes"
	"github.com/clubsaas/clubsaas/internal/shared/constants"
)

// NewRouter builds the gin engine with every route mounted.
func NewRouter(c *Container) *gin.Engine {
	if c.cfg.Server.Mode == constants.EnvProduction || c.cfg.Server.Mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(c.log),
		middleware.Logger(c.log),
		middleware.Metrics(c.httpMetrics),
		middleware.CORS(c.cfg.Server.AllowedOrigins),
		middleware.SecurityHeaders(),
	)

	engine.GET("/health", c.healthHandler.Health)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})))

	var limiter gin.HandlerFunc
	if c.publicRateLimiter != nil {
		limiter = c.publicRateLimiter.Limit()
	}

	routes.SetupPublicRoutes(engine, &routes.PublicRouteConfig{
		ClubHandler:    c.clubHandler,
		PlanHandler:    c.planHandler,
		AuthHandler:    c.authHandler,
		WebhookHandler: c.webhookHandler,
		Limiter:        limiter,
	})

	routes.SetupOperatorRoutes(engine, &routes.OperatorRouteConfig{
		ClubHandler:          c.clubHandler,
		PlanHandler:          c.planHandler,
		BillingHandler:       c.billingHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})

	routes.SetupTenantRoutes(engine, &routes.TenantRouteConfig{
		ClubHandler:          c.clubHandler,
		BillingHandler:       c.billingHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
		SubscriptionGate:     c.subscriptionGate,
	})

	return engine
}
