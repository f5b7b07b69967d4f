package usecases

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/clubsaas/clubsaas/internal/domain/subscription"
	vo "github.com/clubsaas/clubsaas/internal/domain/subscription/valueobjects"
	"github.com/clubsaas/clubsaas/internal/domain/tenant"
)

var testNow = time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

type tenantSeeder interface {
	Create(ctx context.Context, t *tenant.Tenant) error
}

type subscriptionSeeder interface {
	Create(ctx context.Context, s *subscription.Subscription) error
}

// seedBilling stores tenant id with the given status and a subscription in
// the given state. A non-empty externalID makes it provider collected.
func seedBilling(t *testing.T, tenants tenantSeeder, subs subscriptionSeeder, id string, tenantStatus tenant.Status, subStatus vo.SubscriptionStatus, periodEnd time.Time, externalID string) {
	t.Helper()
	ctx := context.Background()

	tn, err := tenant.ReconstructTenant(id, "Club "+id, "club-"+id, tenantStatus, testNow, testNow)
	require.NoError(t, err)
	require.NoError(t, tenants.Create(ctx, tn))

	var sub *subscription.Subscription
	if externalID == "" {
		sub, err = subscription.NewManualSubscription(id, 1, periodEnd, testNow)
		require.NoError(t, err)
		require.NoError(t, sub.ApplyStatus(subStatus, periodEnd, nil, testNow))
	} else {
		sub, err = subscription.NewPendingSubscription(id, 1, testNow)
		require.NoError(t, err)
		require.NoError(t, sub.ApplyStatus(subStatus, periodEnd, strPtr(externalID), testNow))
	}
	require.NoError(t, subs.Create(ctx, sub))
}

type recordingMetrics struct {
	mu          sync.Mutex
	transitions []vo.SubscriptionStatus
	decisions   []string
	runs        [][2]int
}

func (m *recordingMetrics) RecordTransition(status vo.SubscriptionStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transitions = append(m.transitions, status)
}

func (m *recordingMetrics) RecordGateDecision(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.decisions = append(m.decisions, reason)
}

func (m *recordingMetrics) RecordReconcileRun(reconciled, failed int, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, [2]int{reconciled, failed})
}
