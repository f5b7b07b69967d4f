package usecases

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubsaas/clubsaas/internal/application/payment/paymentgateway"
	"github.com/clubsaas/clubsaas/internal/application/subscription/testutil"
	vo "github.com/clubsaas/clubsaas/internal/domain/subscription/valueobjects"
	"github.com/clubsaas/clubsaas/internal/domain/tenant"
	"github.com/clubsaas/clubsaas/internal/infrastructure/repository/repotest"
	"github.com/clubsaas/clubsaas/internal/shared/biztime"
	"github.com/clubsaas/clubsaas/internal/shared/logger"
)

func TestPollThenGate(t *testing.T) {
	store := repotest.NewStore(t)
	seedBilling(t, store.Tenants, store.Subscriptions, "T1", tenant.StatusBlocked, vo.StatusPastDue, testNow, "M1")

	next := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	gateway := &testutil.MockMandateGateway{
		GetMandateFunc: func(ctx context.Context, id string) (*paymentgateway.Mandate, error) {
			return &paymentgateway.Mandate{ID: "M1", Status: "authorized", ExternalReference: "T1", NextPaymentDate: &next}, nil
		},
	}
	clock := biztime.FixedClock(testNow)

	engine := newEngine(store)
	poller := NewReconcileSubscriptionsUseCase(store.Subscriptions, gateway, engine, logger.NewNop())
	poller.SetClock(clock)
	gate := NewAuthorizeTenantUseCase(store.Tenants, store.Subscriptions, logger.NewNop())
	gate.SetClock(clock)

	result, err := poller.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Reconciled)
	assert.Equal(t, []string{"M1"}, gateway.FetchedIDs)

	sub, err := store.Subscriptions.GetByTenantID(context.Background(), "T1")
	require.NoError(t, err)
	assert.Equal(t, vo.StatusActive, sub.Status())
	assert.True(t, sub.CurrentPeriodEnd().Equal(next))
	assert.Equal(t, vo.ProviderMercadoPago, sub.PaymentProvider())

	tn, err := store.Tenants.GetByID(context.Background(), "T1")
	require.NoError(t, err)
	assert.Equal(t, tenant.StatusActive, tn.Status())

	decision, err := gate.Execute(context.Background(), "T1")
	require.NoError(t, err)
	assert.True(t, decision.Allowed)

	// nothing left to reconcile
	result, err = poller.Execute(context.Background())
	require.NoError(t, err)
	assert.Zero(t, result.Candidates)
}

func TestConcurrentTriggersConverge(t *testing.T) {
	store := repotest.NewStore(t)
	seedBilling(t, store.Tenants, store.Subscriptions, "T1", tenant.StatusBlocked, vo.StatusPastDue, testNow, "M1")
	engine := newEngine(store)

	fresh := ApplyStatusCommand{TenantID: "T1", Status: vo.StatusActive, CurrentPeriodEnd: testNow.Add(30 * 24 * time.Hour), ExternalID: strPtr("M1")}
	stale := ApplyStatusCommand{TenantID: "T1", Status: vo.StatusPastDue, CurrentPeriodEnd: testNow, ExternalID: strPtr("M1")}

	var wg sync.WaitGroup
	for _, cmd := range []ApplyStatusCommand{fresh, stale} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := engine.Execute(context.Background(), cmd)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// Either write may land last, but the pair stays consistent.
	sub, err := store.Subscriptions.GetByTenantID(context.Background(), "T1")
	require.NoError(t, err)
	tn, err := store.Tenants.GetByID(context.Background(), "T1")
	require.NoError(t, err)
	assert.Equal(t, tenant.StatusFor(sub.IsActiveAt(testNow)), tn.Status())

	// The next correct delivery converges to the provider's state.
	_, err = engine.Execute(context.Background(), fresh)
	require.NoError(t, err)

	sub, err = store.Subscriptions.GetByTenantID(context.Background(), "T1")
	require.NoError(t, err)
	tn, err = store.Tenants.GetByID(context.Background(), "T1")
	require.NoError(t, err)
	assert.Equal(t, vo.StatusActive, sub.Status())
	assert.Equal(t, tenant.StatusActive, tn.Status())
}

// A gate repair racing a transition can only write BLOCKED when the
// subscription does not grant access, so the engine's last write wins.
func TestGateRepairAndEngineAgree(t *testing.T) {
	store := repotest.NewStore(t)
	seedBilling(t, store.Tenants, store.Subscriptions, "T1", tenant.StatusActive, vo.StatusActive, testNow.Add(-time.Second), "M1")
	gate := NewAuthorizeTenantUseCase(store.Tenants, store.Subscriptions, logger.NewNop())
	gate.SetClock(biztime.FixedClock(testNow))

	decision, err := gate.Execute(context.Background(), "T1")
	require.NoError(t, err)
	assert.Equal(t, ReasonSubscriptionInactive, decision.Reason)

	_, err = newEngine(store).Execute(context.Background(), ApplyStatusCommand{
		TenantID:         "T1",
		Status:           vo.StatusActive,
		CurrentPeriodEnd: testNow.Add(time.Hour),
	})
	require.NoError(t, err)

	decision, err = gate.Execute(context.Background(), "T1")
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
}
