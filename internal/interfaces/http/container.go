package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/clubsaas/clubsaas/internal/application/payment/paymentgateway"
	paymentUsecases "github.com/clubsaas/clubsaas/internal/application/payment/usecases"
	subUsecases "github.com/clubsaas/clubsaas/internal/application/subscription/usecases"
	tenantUsecases "github.com/clubsaas/clubsaas/internal/application/tenant/usecases"
	userUsecases "github.com/clubsaas/clubsaas/internal/application/user/usecases"
	"github.com/clubsaas/clubsaas/internal/domain/subscription"
	"github.com/clubsaas/clubsaas/internal/domain/tenant"
	"github.com/clubsaas/clubsaas/internal/domain/user"
	"github.com/clubsaas/clubsaas/internal/infrastructure/auth"
	"github.com/clubsaas/clubsaas/internal/infrastructure/config"
	"github.com/clubsaas/clubsaas/internal/infrastructure/metrics"
	"github.com/clubsaas/clubsaas/internal/infrastructure/permission"
	"github.com/clubsaas/clubsaas/internal/infrastructure/ratelimit"
	"github.com/clubsaas/clubsaas/internal/interfaces/http/handlers"
	"github.com/clubsaas/clubsaas/internal/interfaces/http/middleware"
	"github.com/clubsaas/clubsaas/internal/shared/db"
	"github.com/clubsaas/clubsaas/internal/shared/logger"
)

// Container holds every wired dependency of the HTTP server and the
// background jobs that share its use cases.
type Container struct {
	cfg         *config.Config
	db          *gorm.DB
	redisClient *redis.Client
	log         logger.Interface

	// Repositories
	txManager        *db.TransactionManager
	tenantRepo       tenant.Repository
	subscriptionRepo subscription.SubscriptionRepository
	planRepo         subscription.PlanRepository
	userRepo         user.Repository

	// Services
	passwordHasher *auth.BcryptPasswordHasher
	jwtService     *auth.JWTService
	mandateGateway paymentgateway.MandateGateway
	enforcer       *permission.Enforcer
	rateLimiter    ratelimit.RateLimiter
	registry       *prometheus.Registry
	billingMetrics *metrics.Billing
	httpMetrics    *metrics.HTTP

	// Use cases
	applyStatusUC     *subUsecases.ApplySubscriptionStatusUseCase
	authorizeTenantUC *subUsecases.AuthorizeTenantUseCase
	reconcileUC       *subUsecases.ReconcileSubscriptionsUseCase
	billingStatusUC   *subUsecases.GetBillingStatusUseCase
	createPlanUC      *subUsecases.CreatePlanUseCase
	listPlansUC       *subUsecases.ListPlansUseCase
	webhookUC         *paymentUsecases.HandlePaymentWebhookUseCase
	signupUC          *tenantUsecases.SignupTenantUseCase
	provisionUC       *tenantUsecases.ProvisionTenantUseCase
	listTenantsUC     *tenantUsecases.ListTenantsUseCase
	getTenantUC       *tenantUsecases.GetTenantUseCase
	dashboardUC       *tenantUsecases.GetDashboardUseCase
	loginUC           *userUsecases.LoginUseCase
	bootstrapUC       *userUsecases.BootstrapSuperAdminUseCase

	// Middleware
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	subscriptionGate     *middleware.SubscriptionGate
	publicRateLimiter    *middleware.RateLimiter

	// Handlers
	healthHandler  *handlers.HealthHandler
	webhookHandler *handlers.PaymentWebhookHandler
	clubHandler    *handlers.ClubHandler
	planHandler    *handlers.PlanHandler
	authHandler    *handlers.AuthHandler
	billingHandler *handlers.BillingHandler
}

// NewContainer wires the application. redisClient may be nil, in which case
// rate limiting is per process and the poller runs without a leader lock.
func NewContainer(cfg *config.Config, gdb *gorm.DB, redisClient *redis.Client, log logger.Interface) (*Container, error) {
	c := &Container{
		cfg:         cfg,
		db:          gdb,
		redisClient: redisClient,
		log:         log,
	}

	c.initRepositories()
	if err := c.initServices(); err != nil {
		return nil, err
	}
	c.initUseCases()
	c.initHandlers()

	return c, nil
}

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Registry exposes the metrics registry served on /metrics.
func (c *Container) Registry() *prometheus.Registry {
	return c.registry
}
