package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/clubsaas/clubsaas/internal/interfaces/http/handlers"
	"github.com/clubsaas/clubsaas/internal/interfaces/http/middleware"
)

// OperatorRouteConfig holds platform operator endpoints, authorised through
// the route policy.
type OperatorRouteConfig struct {
	ClubHandler          *handlers.ClubHandler
	PlanHandler          *handlers.PlanHandler
	BillingHandler       *handlers.BillingHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupOperatorRoutes(engine *gin.Engine, cfg *OperatorRouteConfig) {
	guard := []gin.HandlerFunc{
		cfg.AuthMiddleware.RequireAuth(),
		cfg.PermissionMiddleware.RequireRoutePermission(),
	}

	clubs := engine.Group("/api/clubs", guard...)
	{
		clubs.GET("", cfg.ClubHandler.List)
		clubs.POST("", cfg.ClubHandler.Provision)
	}

	saas := engine.Group("/api/saas", guard...)
	{
		saas.GET("/dashboard", cfg.BillingHandler.Dashboard)
		saas.GET("/plans", cfg.PlanHandler.ListPlans)
		saas.POST("/plans", cfg.PlanHandler.CreatePlan)
	}
}
