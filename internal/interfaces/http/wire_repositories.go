package http

import (
	"github.com/clubsaas/clubsaas/internal/infrastructure/repository"
	"github.com/clubsaas/clubsaas/internal/shared/db"
)

func (c *Container) initRepositories() {
	c.txManager = db.NewTransactionManager(c.db)
	c.tenantRepo = repository.NewTenantRepository(c.db, c.log)
	c.subscriptionRepo = repository.NewSubscriptionRepository(c.db, c.log)
	c.planRepo = repository.NewPlanRepository(c.db, c.log)
	c.userRepo = repository.NewUserRepository(c.db, c.log)
}
