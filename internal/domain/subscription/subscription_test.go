package subscription

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/clubsaas/clubsaas/internal/domain/subscription/valueobjects"
)

var testNow = time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func TestNewPendingSubscription(t *testing.T) {
	sub, err := NewPendingSubscription("tenant-1", 7, testNow)
	require.NoError(t, err)

	assert.Equal(t, vo.StatusPastDue, sub.Status())
	assert.Equal(t, vo.ProviderMercadoPago, sub.PaymentProvider())
	assert.Equal(t, testNow, sub.CurrentPeriodEnd())
	assert.Nil(t, sub.ExternalID())
	assert.False(t, sub.IsActiveAt(testNow))
}

func TestNewManualSubscription(t *testing.T) {
	end := testNow.AddDate(0, 1, 0)
	sub, err := NewManualSubscription("tenant-1", 7, end, testNow)
	require.NoError(t, err)

	assert.Equal(t, vo.StatusActive, sub.Status())
	assert.Equal(t, vo.ProviderManual, sub.PaymentProvider())
	assert.True(t, sub.IsActiveAt(testNow))
}

func TestNewSubscriptionValidation(t *testing.T) {
	_, err := NewPendingSubscription("", 1, testNow)
	assert.Error(t, err)

	_, err = NewPendingSubscription("tenant-1", 0, testNow)
	assert.Error(t, err)
}

func TestIsActiveAtBoundary(t *testing.T) {
	end := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	sub, err := NewManualSubscription("tenant-1", 1, end, testNow)
	require.NoError(t, err)

	assert.True(t, sub.IsActiveAt(end.Add(-time.Second)))
	assert.True(t, sub.IsActiveAt(end))
	assert.False(t, sub.IsActiveAt(end.Add(time.Second)))
}

func TestApplyStatus(t *testing.T) {
	t.Run("binds external id once", func(t *testing.T) {
		sub, _ := NewPendingSubscription("tenant-1", 1, testNow)
		end := testNow.AddDate(0, 1, 0)

		require.NoError(t, sub.ApplyStatus(vo.StatusActive, end, strPtr("M1"), testNow))
		assert.Equal(t, vo.StatusActive, sub.Status())
		assert.Equal(t, end, sub.CurrentPeriodEnd())
		require.NotNil(t, sub.ExternalID())
		assert.Equal(t, "M1", *sub.ExternalID())

		require.NoError(t, sub.ApplyStatus(vo.StatusPastDue, end, strPtr("M1"), testNow))
		assert.Equal(t, "M1", *sub.ExternalID())
	})

	t.Run("rejects a different external id", func(t *testing.T) {
		sub, _ := NewPendingSubscription("tenant-1", 1, testNow)
		require.NoError(t, sub.ApplyStatus(vo.StatusPastDue, testNow, strPtr("M1"), testNow))

		err := sub.ApplyStatus(vo.StatusActive, testNow, strPtr("M2"), testNow)
		assert.True(t, errors.Is(err, ErrExternalIDConflict))
		assert.Equal(t, vo.StatusPastDue, sub.Status())
		assert.Equal(t, "M1", *sub.ExternalID())
	})

	t.Run("empty external id keeps binding", func(t *testing.T) {
		sub, _ := NewPendingSubscription("tenant-1", 1, testNow)
		require.NoError(t, sub.ApplyStatus(vo.StatusPastDue, testNow, strPtr("M1"), testNow))
		require.NoError(t, sub.ApplyStatus(vo.StatusCanceled, testNow, strPtr("  "), testNow))
		require.NoError(t, sub.ApplyStatus(vo.StatusCanceled, testNow, nil, testNow))
		assert.Equal(t, "M1", *sub.ExternalID())
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		sub, _ := NewPendingSubscription("tenant-1", 1, testNow)
		err := sub.ApplyStatus(vo.SubscriptionStatus("TRIALING"), testNow, nil, testNow)
		assert.True(t, errors.Is(err, ErrInvalidStatus))
	})
}

func TestReconstructSubscriptionNormalisesEmptyExternalID(t *testing.T) {
	sub, err := ReconstructSubscription(1, "tenant-1", 1, vo.StatusPastDue, testNow, strPtr(""), vo.ProviderMercadoPago, 1, testNow, testNow)
	require.NoError(t, err)
	assert.Nil(t, sub.ExternalID())

	_, err = ReconstructSubscription(1, "tenant-1", 1, vo.SubscriptionStatus("bogus"), testNow, nil, vo.ProviderManual, 1, testNow, testNow)
	assert.Error(t, err)
}

func TestNewPlan(t *testing.T) {
	p, err := NewPlan("Pro", vo.IntervalMonthly, 9990, testNow)
	require.NoError(t, err)
	assert.True(t, p.IsActive())
	assert.InDelta(t, 99.90, p.Price(), 0.0001)

	_, err = NewPlan("Pro", vo.IntervalMonthly, 0, testNow)
	assert.Error(t, err)
	_, err = NewPlan(" ", vo.IntervalYearly, 100, testNow)
	assert.Error(t, err)
}
