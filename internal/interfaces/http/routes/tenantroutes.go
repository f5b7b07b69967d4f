package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/clubsaas/clubsaas/internal/interfaces/http/handlers"
	"github.com/clubsaas/clubsaas/internal/interfaces/http/middleware"
)

// TenantRouteConfig holds tenant-scoped endpoints. Billing status stays
// outside the subscription gate; everything under /api/club is gated.
type TenantRouteConfig struct {
	ClubHandler          *handlers.ClubHandler
	BillingHandler       *handlers.BillingHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
	SubscriptionGate     *middleware.SubscriptionGate
}

func SetupTenantRoutes(engine *gin.Engine, cfg *TenantRouteConfig) {
	authed := []gin.HandlerFunc{
		cfg.AuthMiddleware.RequireAuth(),
		cfg.PermissionMiddleware.RequireRoutePermission(),
	}

	billing := engine.Group("/api/billing", authed...)
	{
		billing.GET("/status", cfg.BillingHandler.Status)
	}

	club := engine.Group("/api/club", append(authed, cfg.SubscriptionGate.RequireActiveSubscription())...)
	{
		club.GET("", cfg.ClubHandler.Profile)
	}
}
