package usecases

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubsaas/clubsaas/internal/application/payment/paymentgateway"
	"github.com/clubsaas/clubsaas/internal/application/subscription/testutil"
	vo "github.com/clubsaas/clubsaas/internal/domain/subscription/valueobjects"
	"github.com/clubsaas/clubsaas/internal/domain/tenant"
	"github.com/clubsaas/clubsaas/internal/shared/biztime"
	"github.com/clubsaas/clubsaas/internal/shared/logger"
)

type reconcileFixture struct {
	tenants *testutil.MockTenantRepository
	subs    *testutil.MockSubscriptionRepository
	gateway *testutil.MockMandateGateway
	metrics *recordingMetrics
	uc      *ReconcileSubscriptionsUseCase
}

func newReconcileFixture() *reconcileFixture {
	f := &reconcileFixture{
		tenants: testutil.NewMockTenantRepository(),
		subs:    testutil.NewMockSubscriptionRepository(),
		gateway: &testutil.MockMandateGateway{},
		metrics: &recordingMetrics{},
	}
	engine := NewApplySubscriptionStatusUseCase(&testutil.TxRunner{}, f.subs, f.tenants, logger.NewNop())
	engine.SetClock(biztime.FixedClock(testNow))
	f.uc = NewReconcileSubscriptionsUseCase(f.subs, f.gateway, engine, logger.NewNop())
	f.uc.SetClock(biztime.FixedClock(testNow))
	f.uc.SetMetrics(f.metrics)
	return f
}

func TestReconcile_SelectsOnlyUnconfirmedProviderSubscriptions(t *testing.T) {
	f := newReconcileFixture()
	seedBilling(t, f.tenants, f.subs, "T1", tenant.StatusBlocked, vo.StatusPastDue, testNow, "M1")
	seedBilling(t, f.tenants, f.subs, "T2", tenant.StatusActive, vo.StatusActive, testNow.Add(time.Hour), "M2")
	seedBilling(t, f.tenants, f.subs, "T3", tenant.StatusActive, vo.StatusActive, testNow.Add(-time.Hour), "M3")
	seedBilling(t, f.tenants, f.subs, "T4", tenant.StatusBlocked, vo.StatusPastDue, testNow, "")
	seedBilling(t, f.tenants, f.subs, "T5", tenant.StatusBlocked, vo.StatusCanceled, testNow, "M5")

	f.gateway.GetMandateFunc = func(ctx context.Context, id string) (*paymentgateway.Mandate, error) {
		return &paymentgateway.Mandate{ID: id, Status: "pending"}, nil
	}

	result, err := f.uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Candidates)
	assert.ElementsMatch(t, []string{"M1", "M3"}, f.gateway.FetchedIDs)
}

func TestReconcile_PerItemFailureDoesNotAbortBatch(t *testing.T) {
	f := newReconcileFixture()
	for i := 1; i <= 5; i++ {
		id := fmt.Sprintf("T%d", i)
		seedBilling(t, f.tenants, f.subs, id, tenant.StatusBlocked, vo.StatusPastDue, testNow, "M"+id)
	}

	next := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	f.gateway.GetMandateFunc = func(ctx context.Context, id string) (*paymentgateway.Mandate, error) {
		switch id {
		case "MT2":
			return nil, errors.New("connection timeout")
		case "MT4":
			return nil, paymentgateway.ErrMandateNotFound
		}
		return &paymentgateway.Mandate{ID: id, Status: "authorized", NextPaymentDate: &next}, nil
	}

	result, err := f.uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ReconcileResult{Candidates: 5, Reconciled: 3, Failed: 2}, result)

	for id, want := range map[string]vo.SubscriptionStatus{"T1": vo.StatusActive, "T2": vo.StatusPastDue, "T3": vo.StatusActive, "T4": vo.StatusPastDue, "T5": vo.StatusActive} {
		sub, err := f.subs.GetByTenantID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, want, sub.Status(), id)
	}
	assert.Equal(t, [][2]int{{3, 2}}, f.metrics.runs)
}

func TestReconcile_UnknownStateMapsToPastDue(t *testing.T) {
	f := newReconcileFixture()
	seedBilling(t, f.tenants, f.subs, "T1", tenant.StatusBlocked, vo.StatusPastDue, testNow, "M1")
	f.gateway.GetMandateFunc = func(ctx context.Context, id string) (*paymentgateway.Mandate, error) {
		return &paymentgateway.Mandate{ID: id, Status: "expired"}, nil
	}

	result, err := f.uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Reconciled)

	sub, err := f.subs.GetByTenantID(context.Background(), "T1")
	require.NoError(t, err)
	assert.Equal(t, vo.StatusPastDue, sub.Status())
	assert.True(t, sub.CurrentPeriodEnd().Equal(testNow))
}

func TestReconcile_SkipsMandateForAnotherTenant(t *testing.T) {
	f := newReconcileFixture()
	seedBilling(t, f.tenants, f.subs, "T1", tenant.StatusBlocked, vo.StatusPastDue, testNow, "M1")
	f.gateway.GetMandateFunc = func(ctx context.Context, id string) (*paymentgateway.Mandate, error) {
		return &paymentgateway.Mandate{ID: id, Status: "authorized", ExternalReference: "T9"}, nil
	}

	result, err := f.uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)

	sub, err := f.subs.GetByTenantID(context.Background(), "T1")
	require.NoError(t, err)
	assert.Equal(t, vo.StatusPastDue, sub.Status())
}

func TestReconcile_BoundsConcurrency(t *testing.T) {
	f := newReconcileFixture()
	for i := 0; i < 12; i++ {
		id := fmt.Sprintf("T%02d", i)
		seedBilling(t, f.tenants, f.subs, id, tenant.StatusBlocked, vo.StatusPastDue, testNow, "M"+id)
	}
	f.uc.SetConcurrency(3)

	var inFlight, peak atomic.Int32
	f.gateway.GetMandateFunc = func(ctx context.Context, id string) (*paymentgateway.Mandate, error) {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		return &paymentgateway.Mandate{ID: id, Status: "pending"}, nil
	}

	result, err := f.uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, result.Reconciled)
	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestReconcile_ListFailure(t *testing.T) {
	f := newReconcileFixture()
	f.subs.ListError = errors.New("db down")

	_, err := f.uc.Execute(context.Background())
	assert.Error(t, err)
}

func TestReconcile_CanceledContextCountsRemainingAsFailed(t *testing.T) {
	f := newReconcileFixture()
	seedBilling(t, f.tenants, f.subs, "T1", tenant.StatusBlocked, vo.StatusPastDue, testNow, "M1")
	seedBilling(t, f.tenants, f.subs, "T2", tenant.StatusBlocked, vo.StatusPastDue, testNow, "M2")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := f.uc.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Failed)
	assert.Empty(t, f.gateway.FetchedIDs)
}
