// Package repotest opens a throwaway sqlite database wired to the real
// repositories, for integration tests of use cases and handlers.
package repotest

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/clubsaas/clubsaas/internal/domain/subscription"
	"github.com/clubsaas/clubsaas/internal/domain/tenant"
	"github.com/clubsaas/clubsaas/internal/domain/user"
	"github.com/clubsaas/clubsaas/internal/infrastructure/persistence/models"
	"github.com/clubsaas/clubsaas/internal/infrastructure/repository"
	"github.com/clubsaas/clubsaas/internal/shared/db"
	"github.com/clubsaas/clubsaas/internal/shared/logger"
)

type Store struct {
	DB            *gorm.DB
	Tx            *db.TransactionManager
	Tenants       tenant.Repository
	Subscriptions subscription.SubscriptionRepository
	Plans         subscription.PlanRepository
	Users         user.Repository
}

// NewStore migrates a private in-memory database. One connection keeps all
// statements on the same memory database.
func NewStore(t testing.TB) *Store {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, gdb.AutoMigrate(models.All()...))

	log := logger.NewNop()
	return &Store{
		DB:            gdb,
		Tx:            db.NewTransactionManager(gdb),
		Tenants:       repository.NewTenantRepository(gdb, log),
		Subscriptions: repository.NewSubscriptionRepository(gdb, log),
		Plans:         repository.NewPlanRepository(gdb, log),
		Users:         repository.NewUserRepository(gdb, log),
	}
}
