package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/clubsaas/clubsaas/internal/interfaces/http/handlers"
)

// PublicRouteConfig holds unauthenticated endpoints. Limiter may be nil.
type PublicRouteConfig struct {
	ClubHandler    *handlers.ClubHandler
	PlanHandler    *handlers.PlanHandler
	AuthHandler    *handlers.AuthHandler
	WebhookHandler *handlers.PaymentWebhookHandler
	Limiter        gin.HandlerFunc
}

func SetupPublicRoutes(engine *gin.Engine, cfg *PublicRouteConfig) {
	limited := func(h gin.HandlerFunc) []gin.HandlerFunc {
		if cfg.Limiter == nil {
			return []gin.HandlerFunc{h}
		}
		return []gin.HandlerFunc{cfg.Limiter, h}
	}

	webhooks := engine.Group("/api/webhooks")
	{
		webhooks.POST("/payments", cfg.WebhookHandler.HandlePayment)
	}

	public := engine.Group("/api/public")
	{
		public.GET("/plans", cfg.PlanHandler.ListPublicPlans)
		public.POST("/club-signup", limited(cfg.ClubHandler.Signup)...)
	}

	auth := engine.Group("/api/auth")
	{
		auth.POST("/login", limited(cfg.AuthHandler.Login)...)
	}
}
