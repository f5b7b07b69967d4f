package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clubsaas/clubsaas/internal/application/subscription/usecases"
	"github.com/clubsaas/clubsaas/internal/shared/logger"
)

// TenantAuthorizer decides whether a tenant may use tenant-scoped routes.
type TenantAuthorizer interface {
	Execute(ctx context.Context, tenantID string) (usecases.Decision, error)
}

type SubscriptionGate struct {
	authorizer TenantAuthorizer
	logger     logger.Interface
}

func NewSubscriptionGate(authorizer TenantAuthorizer, logger logger.Interface) *SubscriptionGate {
	return &SubscriptionGate{
		authorizer: authorizer,
		logger:     logger,
	}
}

// RequireActiveSubscription must run after RequireAuth. Platform operators
// pass through; everyone else needs a tenant whose subscription grants access.
// Denials are answered with {"error": reason}.
func (g *SubscriptionGate) RequireActiveSubscription() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := RoleFromContext(c)
		if role.IsSuperAdmin() {
			c.Next()
			return
		}

		tenantID := TenantIDFromContext(c)
		decision, err := g.authorizer.Execute(c.Request.Context(), tenantID)
		if err != nil {
			g.logger.Errorw("access gate check failed", "tenant_id", tenantID, "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
			return
		}

		if !decision.Allowed {
			g.logger.Debugw("access gate denied request",
				"tenant_id", tenantID,
				"reason", decision.Reason,
				"path", c.Request.URL.Path)
			c.AbortWithStatusJSON(decision.HTTPStatus, gin.H{"error": decision.Reason})
			return
		}

		c.Next()
	}
}
