package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clubsaas/clubsaas/internal/infrastructure/ratelimit"
	"github.com/clubsaas/clubsaas/internal/shared/logger"
	"github.com/clubsaas/clubsaas/internal/shared/utils"
)

type RateLimiter struct {
	limiter ratelimit.RateLimiter
	policy  ratelimit.Policy
	scope   string
	logger  logger.Interface
}

// NewRateLimiter limits requests per client IP within scope. Scopes keep
// independent counters for route groups sharing one backend.
func NewRateLimiter(limiter ratelimit.RateLimiter, policy ratelimit.Policy, scope string, logger logger.Interface) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		policy:  policy,
		scope:   scope,
		logger:  logger,
	}
}

// Limit fails open when the backend errors.
func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rl.scope + ":" + c.ClientIP()

		allowed, err := rl.limiter.Allow(c.Request.Context(), key, rl.policy)
		if err != nil {
			rl.logger.Warnw("rate limiter unavailable, allowing request", "key", key, "error", err)
			c.Next()
			return
		}

		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "Too many requests, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
