// Package metrics exports billing counters to Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	vo "github.com/clubsaas/clubsaas/internal/domain/subscription/valueobjects"
)

// Billing implements the metrics hooks of the transition engine, the access
// gate, the poller and webhook ingestion.
type Billing struct {
	transitions   *prometheus.CounterVec
	gateDecisions *prometheus.CounterVec
	reconcileRuns prometheus.Counter
	reconciled    *prometheus.CounterVec
	reconcileTime prometheus.Histogram
	webhooks      *prometheus.CounterVec
}

func NewBilling(reg prometheus.Registerer) *Billing {
	f := promauto.With(reg)
	return &Billing{
		transitions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clubsaas",
			Subsystem: "billing",
			Name:      "transitions_total",
			Help:      "Subscription status writes by resulting status.",
		}, []string{"status"}),
		gateDecisions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clubsaas",
			Subsystem: "billing",
			Name:      "gate_decisions_total",
			Help:      "Access gate decisions by reason; allow for granted requests.",
		}, []string{"reason"}),
		reconcileRuns: f.NewCounter(prometheus.CounterOpts{
			Namespace: "clubsaas",
			Subsystem: "billing",
			Name:      "reconcile_runs_total",
			Help:      "Completed reconciliation passes.",
		}),
		reconciled: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clubsaas",
			Subsystem: "billing",
			Name:      "reconcile_items_total",
			Help:      "Reconciled subscriptions by outcome.",
		}, []string{"outcome"}),
		reconcileTime: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "clubsaas",
			Subsystem: "billing",
			Name:      "reconcile_duration_seconds",
			Help:      "Reconciliation pass duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}),
		webhooks: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clubsaas",
			Subsystem: "billing",
			Name:      "webhooks_total",
			Help:      "Payment webhooks by payload shape and outcome.",
		}, []string{"shape", "outcome"}),
	}
}

func (b *Billing) RecordTransition(status vo.SubscriptionStatus) {
	b.transitions.WithLabelValues(status.String()).Inc()
}

func (b *Billing) RecordGateDecision(reason string) {
	b.gateDecisions.WithLabelValues(reason).Inc()
}

func (b *Billing) RecordReconcileRun(reconciled, failed int, d time.Duration) {
	b.reconcileRuns.Inc()
	b.reconciled.WithLabelValues("reconciled").Add(float64(reconciled))
	b.reconciled.WithLabelValues("failed").Add(float64(failed))
	b.reconcileTime.Observe(d.Seconds())
}

func (b *Billing) RecordWebhook(shape, outcome string) {
	b.webhooks.WithLabelValues(shape, outcome).Inc()
}
