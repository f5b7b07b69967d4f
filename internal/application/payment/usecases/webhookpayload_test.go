package usecases

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/clubsaas/clubsaas/internal/domain/subscription/valueobjects"
)

func TestParseWebhookPayload_Direct(t *testing.T) {
	for _, key := range []string{"tenantId", "clubId"} {
		t.Run(key, func(t *testing.T) {
			body := `{"` + key + `":"T1","status":"active","currentPeriodEnd":"2025-03-01T00:00:00Z"}`
			payload, err := ParseWebhookPayload(WebhookRequest{Body: []byte(body)})
			require.NoError(t, err)

			direct, ok := payload.(DirectPayload)
			require.True(t, ok)
			assert.Equal(t, "T1", direct.TenantID)
			assert.Equal(t, vo.StatusActive, direct.Status)
			assert.True(t, direct.CurrentPeriodEnd.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))
		})
	}
}

func TestParseWebhookPayload_DirectWinsOverEvent(t *testing.T) {
	body := `{"tenantId":"T1","status":"PAST_DUE","currentPeriodEnd":"2025-03-01","type":"preapproval","data":{"id":"M1"}}`
	payload, err := ParseWebhookPayload(WebhookRequest{Body: []byte(body)})
	require.NoError(t, err)
	assert.IsType(t, DirectPayload{}, payload)
}

func TestParseWebhookPayload_ProviderEvent(t *testing.T) {
	tests := []struct {
		name     string
		req      WebhookRequest
		wantType string
		wantID   string
	}{
		{"type", WebhookRequest{Body: []byte(`{"type":"subscription_preapproval","data":{"id":"M1"}}`)}, "subscription_preapproval", "M1"},
		{"action", WebhookRequest{Body: []byte(`{"action":"updated","data":{"id":77}}`)}, "updated", "77"},
		{"query", WebhookRequest{Query: url.Values{"type": {"preapproval"}, "data.id": {"M3"}}}, "preapproval", "M3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := ParseWebhookPayload(tt.req)
			require.NoError(t, err)
			event, ok := payload.(ProviderEventPayload)
			require.True(t, ok)
			assert.Equal(t, tt.wantType, event.EventType)
			assert.Equal(t, tt.wantID, event.MandateID)
		})
	}
}

func TestParseWebhookPayload_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		reason string
	}{
		{"invalid json", `{"tenantId":`, ReasonInvalidPayload},
		{"empty", `{}`, ReasonInvalidPayload},
		{"event without id", `{"type":"preapproval"}`, ReasonInvalidPayload},
		{"id without event", `{"data":{"id":"M1"}}`, ReasonInvalidPayload},
		{"partial direct", `{"tenantId":"T1","status":"ACTIVE"}`, ReasonInvalidPayload},
		{"unknown status", `{"tenantId":"T1","status":"TRIAL","currentPeriodEnd":"2025-03-01"}`, ReasonInvalidStatus},
		{"bad timestamp", `{"tenantId":"T1","status":"ACTIVE","currentPeriodEnd":"next month"}`, ReasonInvalidPayload},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWebhookPayload(WebhookRequest{Body: []byte(tt.body)})
			assert.Equal(t, tt.reason, reasonFor(t, err))
		})
	}
}
