package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/clubsaas/clubsaas/internal/domain/user"
	"github.com/clubsaas/clubsaas/internal/infrastructure/auth"
	"github.com/clubsaas/clubsaas/internal/shared/authorization"
	"github.com/clubsaas/clubsaas/internal/shared/constants"
	"github.com/clubsaas/clubsaas/internal/shared/errors"
	"github.com/clubsaas/clubsaas/internal/shared/logger"
	"github.com/clubsaas/clubsaas/internal/shared/utils"
)

// TokenVerifier parses and validates an access token.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// UserLoader resolves the user a token was issued to.
type UserLoader interface {
	GetByID(ctx context.Context, id uint) (*user.User, error)
}

type AuthMiddleware struct {
	tokens TokenVerifier
	users  UserLoader
	logger logger.Interface
}

func NewAuthMiddleware(tokens TokenVerifier, users UserLoader, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
		users:  users,
		logger: logger,
	}
}

// RequireAuth validates the bearer token and reloads the user, so role and
// tenant always come from the stored account rather than the token claims.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader(constants.HeaderAuthorization))
		if token == "" {
			utils.AbortWithError(c, errors.NewUnauthorizedError("authorization token required").WithReason("missing_token"))
			return
		}

		claims, err := m.tokens.Verify(token)
		if err != nil {
			m.logger.Debugw("rejected access token", "error", err, "path", c.Request.URL.Path)
			utils.AbortWithError(c, errors.NewUnauthorizedError("invalid or expired token").WithReason("invalid_token"))
			return
		}

		u, err := m.users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			m.logger.Errorw("failed to load token user", "user_id", claims.UserID, "error", err)
			utils.AbortWithError(c, err)
			return
		}
		if u == nil {
			utils.AbortWithError(c, errors.NewUnauthorizedError("user no longer exists").WithReason("invalid_user"))
			return
		}

		c.Set(constants.ContextKeyUserID, u.ID())
		c.Set(constants.ContextKeyUserRole, u.Role())
		c.Set(constants.ContextKeyTenantID, u.TenantID())

		c.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// RoleFromContext returns the role set by RequireAuth.
func RoleFromContext(c *gin.Context) (authorization.UserRole, bool) {
	v, ok := c.Get(constants.ContextKeyUserRole)
	if !ok {
		return "", false
	}
	role, ok := v.(authorization.UserRole)
	return role, ok
}

// TenantIDFromContext returns the tenant id set by RequireAuth, empty for
// platform users.
func TenantIDFromContext(c *gin.Context) string {
	return c.GetString(constants.ContextKeyTenantID)
}
