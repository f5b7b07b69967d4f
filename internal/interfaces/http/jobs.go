package http

import (
	"context"

	userUsecases "github.com/clubsaas/clubsaas/internal/application/user/usecases"
	"github.com/clubsaas/clubsaas/internal/infrastructure/cache"
	"github.com/clubsaas/clubsaas/internal/infrastructure/scheduler"
)

const reconcileLockKey = "clubsaas:lock:reconcile"

// ReconciliationTask returns the poller tick sharing this container's engine.
// With Redis available one replica per poll interval runs it.
func (c *Container) ReconciliationTask() *scheduler.ReconciliationTask {
	var lock scheduler.TickLock
	if c.redisClient != nil {
		lock = cache.NewRedisTickLock(c.redisClient, reconcileLockKey, c.cfg.Billing.PollInterval)
	}
	return scheduler.NewReconciliationTask(c.reconcileUC, lock, c.cfg.Billing.PollTimeout, c.log.Named("scheduler"))
}

// BootstrapSuperAdmin seeds the operator account from configuration.
func (c *Container) BootstrapSuperAdmin(ctx context.Context) (bool, error) {
	return c.bootstrapUC.Execute(ctx, userUsecases.BootstrapSuperAdminCommand{
		Email:    c.cfg.Bootstrap.SuperAdminEmail,
		Password: c.cfg.Bootstrap.SuperAdminPassword,
		Name:     c.cfg.Bootstrap.SuperAdminName,
	})
}
