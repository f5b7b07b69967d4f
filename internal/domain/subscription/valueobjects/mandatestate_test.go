package valueobjects

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMapMandateState(t *testing.T) {
	tests := []struct {
		state string
		want  SubscriptionStatus
	}{
		{"authorized", StatusActive},
		{"paused", StatusCanceled},
		{"cancelled", StatusCanceled},
		{"canceled", StatusPastDue},
		{"active", StatusPastDue},
		{"pending", StatusPastDue},
		{"", StatusPastDue},
		{"expired", StatusPastDue},
		{"AUTHORIZED", StatusPastDue},
		{"Active", StatusPastDue},
		{" authorized", StatusPastDue},
	}

	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			assert.Equal(t, tt.want, MapMandateState(tt.state))
		})
	}
}

func TestMapMandateStateNeverGrantsAccessForUnknownInput(t *testing.T) {
	inputs := []string{"", "x", "AUTHORIZED", "authorised", "free_trial", "\x00", "cancelled ", "ACTIVE"}
	for _, in := range inputs {
		got := MapMandateState(in)
		assert.True(t, got.IsValid(), "input %q produced %q", in, got)
		assert.NotEqual(t, StatusActive, got, "input %q must not grant access", in)
	}
}

func TestIsKnownMandateState(t *testing.T) {
	assert.True(t, IsKnownMandateState("authorized"))
	assert.True(t, IsKnownMandateState("pending"))
	assert.False(t, IsKnownMandateState("AUTHORIZED"))
	assert.False(t, IsKnownMandateState(""))
}

func TestResolvePeriodEnd(t *testing.T) {
	now := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	next := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, next, ResolvePeriodEnd(&next, now))
	assert.Equal(t, now, ResolvePeriodEnd(nil, now))

	zero := time.Time{}
	assert.Equal(t, now, ResolvePeriodEnd(&zero, now))
}

func TestParseSubscriptionStatus(t *testing.T) {
	s, err := ParseSubscriptionStatus("active")
	assert.NoError(t, err)
	assert.Equal(t, StatusActive, s)

	s, err = ParseSubscriptionStatus("PAST_DUE")
	assert.NoError(t, err)
	assert.Equal(t, StatusPastDue, s)

	_, err = ParseSubscriptionStatus("TRIALING")
	assert.Error(t, err)
}

func TestPlanIntervalFrequencyType(t *testing.T) {
	assert.Equal(t, "months", IntervalMonthly.FrequencyType())
	assert.Equal(t, "years", IntervalYearly.FrequencyType())

	_, err := ParsePlanInterval("weekly")
	assert.Error(t, err)
}
