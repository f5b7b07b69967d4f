package usecases

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubsaas/clubsaas/internal/application/subscription/testutil"
	vo "github.com/clubsaas/clubsaas/internal/domain/subscription/valueobjects"
	"github.com/clubsaas/clubsaas/internal/domain/tenant"
	"github.com/clubsaas/clubsaas/internal/shared/biztime"
	"github.com/clubsaas/clubsaas/internal/shared/logger"
)

func newGate(tenants *testutil.MockTenantRepository, subs *testutil.MockSubscriptionRepository) *AuthorizeTenantUseCase {
	uc := NewAuthorizeTenantUseCase(tenants, subs, logger.NewNop())
	uc.SetClock(biztime.FixedClock(testNow))
	return uc
}

func TestAuthorizeTenant_Decisions(t *testing.T) {
	tests := []struct {
		name       string
		tenantID   string
		seed       func(t *testing.T, tenants *testutil.MockTenantRepository, subs *testutil.MockSubscriptionRepository)
		wantAllow  bool
		wantReason string
		wantStatus int
	}{
		{
			name:       "no tenant on request",
			tenantID:   "",
			wantReason: ReasonClubRequired,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "unknown tenant",
			tenantID:   "T404",
			wantReason: ReasonClubNotFound,
			wantStatus: http.StatusForbidden,
		},
		{
			name:     "blocked tenant",
			tenantID: "T1",
			seed: func(t *testing.T, tenants *testutil.MockTenantRepository, subs *testutil.MockSubscriptionRepository) {
				seedBilling(t, tenants, subs, "T1", tenant.StatusBlocked, vo.StatusActive, testNow.Add(time.Hour), "")
			},
			wantReason: ReasonClubBlocked,
			wantStatus: http.StatusPaymentRequired,
		},
		{
			name:     "no subscription",
			tenantID: "T1",
			seed: func(t *testing.T, tenants *testutil.MockTenantRepository, subs *testutil.MockSubscriptionRepository) {
				tn, err := tenant.ReconstructTenant("T1", "Club", "club", tenant.StatusActive, testNow, testNow)
				require.NoError(t, err)
				require.NoError(t, tenants.Create(context.Background(), tn))
			},
			wantReason: ReasonSubscriptionRequired,
			wantStatus: http.StatusForbidden,
		},
		{
			name:     "active subscription",
			tenantID: "T1",
			seed: func(t *testing.T, tenants *testutil.MockTenantRepository, subs *testutil.MockSubscriptionRepository) {
				seedBilling(t, tenants, subs, "T1", tenant.StatusActive, vo.StatusActive, testNow.Add(time.Hour), "")
			},
			wantAllow:  true,
			wantStatus: http.StatusOK,
		},
		{
			name:     "past due subscription",
			tenantID: "T1",
			seed: func(t *testing.T, tenants *testutil.MockTenantRepository, subs *testutil.MockSubscriptionRepository) {
				seedBilling(t, tenants, subs, "T1", tenant.StatusActive, vo.StatusPastDue, testNow.Add(time.Hour), "M1")
			},
			wantReason: ReasonSubscriptionInactive,
			wantStatus: http.StatusPaymentRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tenants := testutil.NewMockTenantRepository()
			subs := testutil.NewMockSubscriptionRepository()
			if tt.seed != nil {
				tt.seed(t, tenants, subs)
			}

			decision, err := newGate(tenants, subs).Execute(context.Background(), tt.tenantID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAllow, decision.Allowed)
			assert.Equal(t, tt.wantReason, decision.Reason)
			assert.Equal(t, tt.wantStatus, decision.HTTPStatus)
		})
	}
}

func TestAuthorizeTenant_PeriodEndBoundary(t *testing.T) {
	t.Run("one second after period end denies and blocks", func(t *testing.T) {
		tenants := testutil.NewMockTenantRepository()
		subs := testutil.NewMockSubscriptionRepository()
		seedBilling(t, tenants, subs, "T1", tenant.StatusActive, vo.StatusActive, testNow.Add(-time.Second), "")

		decision, err := newGate(tenants, subs).Execute(context.Background(), "T1")
		require.NoError(t, err)
		assert.False(t, decision.Allowed)
		assert.Equal(t, ReasonSubscriptionInactive, decision.Reason)

		tn, err := tenants.GetByID(context.Background(), "T1")
		require.NoError(t, err)
		assert.Equal(t, tenant.StatusBlocked, tn.Status())
		assert.Equal(t, 1, tenants.StatusUpdates)
	})

	t.Run("one second before period end allows without writes", func(t *testing.T) {
		tenants := testutil.NewMockTenantRepository()
		subs := testutil.NewMockSubscriptionRepository()
		seedBilling(t, tenants, subs, "T1", tenant.StatusActive, vo.StatusActive, testNow.Add(time.Second), "")

		decision, err := newGate(tenants, subs).Execute(context.Background(), "T1")
		require.NoError(t, err)
		assert.True(t, decision.Allowed)

		tn, err := tenants.GetByID(context.Background(), "T1")
		require.NoError(t, err)
		assert.Equal(t, tenant.StatusActive, tn.Status())
		assert.Zero(t, tenants.StatusUpdates)
	})
}

func TestAuthorizeTenant_BlockedTenantSkipsSubscriptionRead(t *testing.T) {
	tenants := testutil.NewMockTenantRepository()
	subs := testutil.NewMockSubscriptionRepository()
	seedBilling(t, tenants, subs, "T1", tenant.StatusBlocked, vo.StatusActive, testNow.Add(time.Hour), "")
	subs.GetError = errors.New("must not be read")

	decision, err := newGate(tenants, subs).Execute(context.Background(), "T1")
	require.NoError(t, err)
	assert.Equal(t, ReasonClubBlocked, decision.Reason)
}

func TestAuthorizeTenant_RepairFailureStillDenies(t *testing.T) {
	tenants := testutil.NewMockTenantRepository()
	subs := testutil.NewMockSubscriptionRepository()
	seedBilling(t, tenants, subs, "T1", tenant.StatusActive, vo.StatusCanceled, testNow.Add(time.Hour), "")
	tenants.UpdateStatusError = errors.New("connection reset")

	decision, err := newGate(tenants, subs).Execute(context.Background(), "T1")
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonSubscriptionInactive, decision.Reason)
}

func TestAuthorizeTenant_ReadFailure(t *testing.T) {
	tenants := testutil.NewMockTenantRepository()
	tenants.GetError = errors.New("timeout")

	_, err := newGate(tenants, testutil.NewMockSubscriptionRepository()).Execute(context.Background(), "T1")
	assert.Error(t, err)
}

func TestAuthorizeTenant_RecordsMetrics(t *testing.T) {
	tenants := testutil.NewMockTenantRepository()
	subs := testutil.NewMockSubscriptionRepository()
	seedBilling(t, tenants, subs, "T1", tenant.StatusActive, vo.StatusActive, testNow.Add(time.Hour), "")
	metrics := &recordingMetrics{}
	uc := newGate(tenants, subs)
	uc.SetMetrics(metrics)

	_, err := uc.Execute(context.Background(), "T1")
	require.NoError(t, err)
	_, err = uc.Execute(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, []string{"allow", ReasonClubRequired}, metrics.decisions)
}
