package scheduler

import (
	"context"
	"time"

	"github.com/clubsaas/clubsaas/internal/application/subscription/usecases"
	"github.com/clubsaas/clubsaas/internal/shared/logger"
)

// ReconcileJob is one poller pass over unconfirmed subscriptions.
type ReconcileJob interface {
	Execute(ctx context.Context) (usecases.ReconcileResult, error)
}

// TickLock coordinates replicas. acquired=false means another replica owns
// the current tick.
type TickLock interface {
	TryAcquire(ctx context.Context) (acquired bool, err error)
}

// ReconciliationTask runs a single reconciliation tick under a timeout and,
// when a lock is configured, only on the replica that holds it.
type ReconciliationTask struct {
	job     ReconcileJob
	lock    TickLock
	timeout time.Duration
	logger  logger.Interface
}

// NewReconciliationTask builds a tick. lock may be nil for single-replica
// deployments.
func NewReconciliationTask(job ReconcileJob, lock TickLock, timeout time.Duration, log logger.Interface) *ReconciliationTask {
	return &ReconciliationTask{job: job, lock: lock, timeout: timeout, logger: log}
}

// Run executes one tick and reports whether the job ran. Lock errors skip
// the tick; the next one retries.
func (t *ReconciliationTask) Run(ctx context.Context) bool {
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	if t.lock != nil {
		acquired, err := t.lock.TryAcquire(ctx)
		if err != nil {
			t.logger.Warnw("reconciliation tick skipped, lock unavailable", "error", err)
			return false
		}
		if !acquired {
			t.logger.Debugw("reconciliation tick skipped, held by another replica")
			return false
		}
	}

	start := time.Now()
	result, err := t.job.Execute(ctx)
	if err != nil {
		t.logger.Errorw("reconciliation tick failed", "error", err, "duration", time.Since(start))
		return true
	}

	if result.Candidates > 0 {
		t.logger.Infow("reconciliation tick completed",
			"candidates", result.Candidates,
			"reconciled", result.Reconciled,
			"failed", result.Failed,
			"duration", time.Since(start),
		)
	} else {
		t.logger.Debugw("reconciliation tick completed, nothing to do")
	}
	return true
}
