package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/clubsaas/clubsaas/internal/domain/subscription/valueobjects"
)

func TestBilling(t *testing.T) {
	reg := prometheus.NewRegistry()
	b := NewBilling(reg)

	b.RecordTransition(vo.StatusActive)
	b.RecordTransition(vo.StatusActive)
	b.RecordTransition(vo.StatusPastDue)
	b.RecordGateDecision("allow")
	b.RecordGateDecision("subscription_inactive")
	b.RecordReconcileRun(3, 1, 2*time.Second)
	b.RecordWebhook("provider_event", "applied")

	assert.Equal(t, 2.0, testutil.ToFloat64(b.transitions.WithLabelValues("ACTIVE")))
	assert.Equal(t, 1.0, testutil.ToFloat64(b.transitions.WithLabelValues("PAST_DUE")))
	assert.Equal(t, 1.0, testutil.ToFloat64(b.gateDecisions.WithLabelValues("subscription_inactive")))
	assert.Equal(t, 1.0, testutil.ToFloat64(b.reconcileRuns))
	assert.Equal(t, 3.0, testutil.ToFloat64(b.reconciled.WithLabelValues("reconciled")))
	assert.Equal(t, 1.0, testutil.ToFloat64(b.reconciled.WithLabelValues("failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(b.webhooks.WithLabelValues("provider_event", "applied")))

	n, err := testutil.GatherAndCount(reg, "clubsaas_billing_reconcile_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestBillingDoubleRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewBilling(reg)
	assert.Panics(t, func() { NewBilling(reg) })
}

func TestHTTPObserveRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := NewHTTP(reg)

	h.ObserveRequest("GET", "/api/club", 200, 10*time.Millisecond)
	h.ObserveRequest("GET", "/api/club", 402, 5*time.Millisecond)
	h.ObserveRequest("GET", "/api/club", 200, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(h.requests.WithLabelValues("GET", "/api/club", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.requests.WithLabelValues("GET", "/api/club", "402")))

	n, err := testutil.GatherAndCount(reg, "clubsaas_http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
