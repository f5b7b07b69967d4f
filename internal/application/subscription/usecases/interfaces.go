package usecases

import (
	"time"

	vo "github.com/clubsaas/clubsaas/internal/domain/subscription/valueobjects"
)

// TransitionMetrics records applied subscription transitions.
type TransitionMetrics interface {
	RecordTransition(status vo.SubscriptionStatus)
}

// GateMetrics records access gate decisions by reason ("allow" for admitted requests).
type GateMetrics interface {
	RecordGateDecision(reason string)
}

// ReconcileMetrics records one poller run.
type ReconcileMetrics interface {
	RecordReconcileRun(reconciled, failed int, duration time.Duration)
}
