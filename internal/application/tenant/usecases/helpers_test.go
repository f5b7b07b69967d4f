package usecases

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	subUsecases "github.com/clubsaas/clubsaas/internal/application/subscription/usecases"
	"github.com/clubsaas/clubsaas/internal/domain/subscription"
	vo "github.com/clubsaas/clubsaas/internal/domain/subscription/valueobjects"
	"github.com/clubsaas/clubsaas/internal/infrastructure/repository/repotest"
	"github.com/clubsaas/clubsaas/internal/shared/biztime"
	apperrors "github.com/clubsaas/clubsaas/internal/shared/errors"
	"github.com/clubsaas/clubsaas/internal/shared/logger"
)

var testNow = time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Verify(password, hash string) error {
	if strings.TrimPrefix(hash, "hashed:") != password {
		return errors.New("mismatch")
	}
	return nil
}

func seedPlan(t *testing.T, store *repotest.Store, name string, interval vo.PlanInterval, priceCents int64) *subscription.Plan {
	t.Helper()
	plan, err := subscription.NewPlan(name, interval, priceCents, testNow)
	require.NoError(t, err)
	require.NoError(t, store.Plans.Create(context.Background(), plan))
	return plan
}

func newEngine(store *repotest.Store) *subUsecases.ApplySubscriptionStatusUseCase {
	engine := subUsecases.NewApplySubscriptionStatusUseCase(store.Tx, store.Subscriptions, store.Tenants, logger.NewNop())
	engine.SetClock(biztime.FixedClock(testNow))
	return engine
}

func assertReason(t *testing.T, err error, code int, reason string) {
	t.Helper()
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr, "expected AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
	assert.Equal(t, reason, appErr.Reason)
}
