package usecases

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/clubsaas/clubsaas/internal/domain/subscription/valueobjects"
	"github.com/clubsaas/clubsaas/internal/domain/tenant"
	"github.com/clubsaas/clubsaas/internal/infrastructure/repository/repotest"
	"github.com/clubsaas/clubsaas/internal/shared/biztime"
	"github.com/clubsaas/clubsaas/internal/shared/logger"
)

func newProvisionUseCase(t *testing.T) (*repotest.Store, uint, *ProvisionTenantUseCase) {
	store := repotest.NewStore(t)
	plan := seedPlan(t, store, "Basic", vo.IntervalMonthly, 4990)
	uc := NewProvisionTenantUseCase(store.Tx, store.Tenants, store.Subscriptions, store.Plans, store.Users, plainHasher{}, logger.NewNop())
	uc.SetClock(biztime.FixedClock(testNow))
	return store, plan.ID(), uc
}

func TestProvisionTenant(t *testing.T) {
	ctx := context.Background()
	store, planID, uc := newProvisionUseCase(t)

	periodEnd := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	res, err := uc.Execute(ctx, ProvisionTenantCommand{
		Name:             "Clube Manual",
		Slug:             "clube-manual",
		PlanID:           planID,
		CurrentPeriodEnd: periodEnd,
		AdminName:        "Bruno",
		AdminEmail:       "bruno@manual.test",
		AdminPassword:    "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "ACTIVE", res.Status)
	require.NotNil(t, res.Subscription)
	assert.Equal(t, "ACTIVE", res.Subscription.Status)
	assert.Equal(t, "manual", res.Subscription.PaymentProvider)
	assert.False(t, res.Subscription.HasMandate)

	sub, err := store.Subscriptions.GetByTenantID(ctx, res.ID)
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.True(t, sub.CurrentPeriodEnd().Equal(periodEnd))

	admin, err := store.Users.GetByEmail(ctx, "bruno@manual.test")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, res.ID, admin.TenantID())
}

func TestProvisionTenant_ExpiredPeriodStartsBlocked(t *testing.T) {
	ctx := context.Background()
	store, planID, uc := newProvisionUseCase(t)

	res, err := uc.Execute(ctx, ProvisionTenantCommand{
		Name:             "Clube Atrasado",
		Slug:             "clube-atrasado",
		PlanID:           planID,
		CurrentPeriodEnd: testNow.Add(-time.Second),
		AdminName:        "Caio",
		AdminEmail:       "caio@atrasado.test",
		AdminPassword:    "secret123",
	})
	require.NoError(t, err)

	club, err := store.Tenants.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, tenant.StatusBlocked, club.Status())
}

func TestProvisionTenant_Rejections(t *testing.T) {
	ctx := context.Background()
	_, planID, uc := newProvisionUseCase(t)

	valid := ProvisionTenantCommand{
		Name:             "Clube Um",
		Slug:             "clube-um",
		PlanID:           planID,
		CurrentPeriodEnd: testNow.AddDate(0, 1, 0),
		AdminName:        "Dora",
		AdminEmail:       "dora@um.test",
		AdminPassword:    "secret123",
	}

	noPeriod := valid
	noPeriod.CurrentPeriodEnd = time.Time{}
	_, err := uc.Execute(ctx, noPeriod)
	assertReason(t, err, http.StatusBadRequest, "invalid_payload")

	badPlan := valid
	badPlan.PlanID = 42
	_, err = uc.Execute(ctx, badPlan)
	assertReason(t, err, http.StatusBadRequest, "invalid_plan")

	_, err = uc.Execute(ctx, valid)
	require.NoError(t, err)

	sameSlug := valid
	sameSlug.AdminEmail = "other@um.test"
	_, err = uc.Execute(ctx, sameSlug)
	assertReason(t, err, http.StatusConflict, "slug_taken")

	sameEmail := valid
	sameEmail.Slug = "clube-dois"
	_, err = uc.Execute(ctx, sameEmail)
	assertReason(t, err, http.StatusConflict, "email_taken")
}
