package http

import (
	"fmt"

	"github.com/clubsaas/clubsaas/internal/infrastructure/auth"
	"github.com/clubsaas/clubsaas/internal/infrastructure/metrics"
	"github.com/clubsaas/clubsaas/internal/infrastructure/payment/mercadopago"
	"github.com/clubsaas/clubsaas/internal/infrastructure/permission"
	"github.com/clubsaas/clubsaas/internal/infrastructure/ratelimit"
	"github.com/clubsaas/clubsaas/internal/shared/utils"
)

func (c *Container) initServices() error {
	c.passwordHasher = auth.NewBcryptPasswordHasher(c.cfg.Auth.Password.BcryptCost)
	c.jwtService = auth.NewJWTService(c.cfg.Auth.JWT.Secret, c.cfg.Auth.JWT.AccessExpMinutes)

	if c.cfg.MercadoPago.AccessToken == "" {
		c.log.Warnw("mercadopago access token not configured, provider calls will fail")
	} else {
		c.log.Infow("mercadopago client configured",
			"base_url", c.cfg.MercadoPago.BaseURL,
			"token", utils.MaskSecret(c.cfg.MercadoPago.AccessToken))
	}
	c.mandateGateway = mercadopago.NewClient(c.cfg.MercadoPago, c.log.Named("mercadopago"))

	enforcer, err := permission.NewEnforcer(permission.DefaultPolicies(), c.log)
	if err != nil {
		return fmt.Errorf("failed to initialize route permissions: %w", err)
	}
	c.enforcer = enforcer

	if c.redisClient != nil {
		c.rateLimiter = ratelimit.NewRedisRateLimiter(c.redisClient)
	} else {
		c.log.Infow("redis disabled, using in-process rate limiter")
		c.rateLimiter = ratelimit.NewMemoryRateLimiter()
	}

	c.registry = newRegistry()
	c.billingMetrics = metrics.NewBilling(c.registry)
	c.httpMetrics = metrics.NewHTTP(c.registry)

	return nil
}
