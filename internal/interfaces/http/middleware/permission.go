package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/clubsaas/clubsaas/internal/shared/errors"
	"github.com/clubsaas/clubsaas/internal/shared/logger"
	"github.com/clubsaas/clubsaas/internal/shared/utils"
)

// RouteEnforcer checks a role against a route pattern and method.
type RouteEnforcer interface {
	Enforce(role, path, method string) (bool, error)
}

type PermissionMiddleware struct {
	enforcer RouteEnforcer
	logger   logger.Interface
}

func NewPermissionMiddleware(enforcer RouteEnforcer, logger logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{
		enforcer: enforcer,
		logger:   logger,
	}
}

// RequireRoutePermission enforces the policy for the matched route. It must
// run after RequireAuth.
func (m *PermissionMiddleware) RequireRoutePermission() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := RoleFromContext(c)
		if !ok {
			utils.AbortWithError(c, errors.NewUnauthorizedError("authentication required").WithReason("missing_token"))
			return
		}

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		allowed, err := m.enforcer.Enforce(role.String(), path, c.Request.Method)
		if err != nil {
			m.logger.Errorw("permission check failed", "role", role, "path", path, "error", err)
			utils.AbortWithError(c, errors.NewInternalError("permission check failed").WithReason("internal_error"))
			return
		}
		if !allowed {
			m.logger.Warnw("permission denied",
				"role", role,
				"path", path,
				"method", c.Request.Method)
			utils.AbortWithError(c, errors.NewForbiddenError("insufficient permissions").WithReason("forbidden"))
			return
		}

		c.Next()
	}
}
