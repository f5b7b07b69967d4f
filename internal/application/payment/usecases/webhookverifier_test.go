package usecases

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubsaas/clubsaas/internal/shared/errors"
)

const testSecret = "whsec_test"

func reasonFor(t *testing.T, err error) string {
	t.Helper()
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr, "expected AppError, got %v", err)
	return appErr.Reason
}

func TestVerify_SharedSecret(t *testing.T) {
	v := NewWebhookVerifier(testSecret, false)

	assert.NoError(t, v.Verify(WebhookRequest{SecretHeader: testSecret}, ""))

	err := v.Verify(WebhookRequest{SecretHeader: "whsec_wrong"}, "")
	assert.Equal(t, ReasonInvalidSignature, reasonFor(t, err))
}

func TestVerify_SharedSecretTakesPrecedence(t *testing.T) {
	v := NewWebhookVerifier(testSecret, false)
	good := "ts=1700000000,v1=" + Sign(testSecret, "1700000000", "M1")

	err := v.Verify(WebhookRequest{SecretHeader: "nope", SignatureHeader: good}, "M1")
	assert.Equal(t, ReasonInvalidSignature, reasonFor(t, err))
}

func TestVerify_HMAC(t *testing.T) {
	v := NewWebhookVerifier(testSecret, false)
	digest := Sign(testSecret, "1700000000", "M1")

	assert.NoError(t, v.Verify(WebhookRequest{SignatureHeader: "ts=1700000000,v1=" + digest}, "M1"))
	assert.NoError(t, v.Verify(WebhookRequest{SignatureHeader: " v1=" + digest + " , ts=1700000000"}, "M1"))

	altered := []byte(digest)
	if altered[0] == 'a' {
		altered[0] = 'b'
	} else {
		altered[0] = 'a'
	}
	err := v.Verify(WebhookRequest{SignatureHeader: "ts=1700000000,v1=" + string(altered)}, "M1")
	assert.Equal(t, ReasonInvalidSignature, reasonFor(t, err))
}

func TestVerify_HMACMissingComponents(t *testing.T) {
	v := NewWebhookVerifier(testSecret, false)
	digest := Sign(testSecret, "1700000000", "M1")

	tests := []struct {
		name    string
		header  string
		eventID string
	}{
		{"no ts", "v1=" + digest, "M1"},
		{"no v1", "ts=1700000000", "M1"},
		{"no event id", "ts=1700000000,v1=" + digest, ""},
		{"garbage", "not-a-signature", "M1"},
		{"other event", "ts=1700000000,v1=" + digest, "M2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Verify(WebhookRequest{SignatureHeader: tt.header}, tt.eventID)
			assert.Equal(t, ReasonInvalidSignature, reasonFor(t, err))
		})
	}
}

func TestVerify_Unsigned(t *testing.T) {
	err := NewWebhookVerifier(testSecret, false).Verify(WebhookRequest{}, "M1")
	assert.Equal(t, ReasonMissingSignature, reasonFor(t, err))

	assert.NoError(t, NewWebhookVerifier(testSecret, true).Verify(WebhookRequest{}, "M1"))
}

func TestVerify_NoSecretAcceptsEverything(t *testing.T) {
	v := NewWebhookVerifier("", false)
	assert.False(t, v.SecretConfigured())
	assert.NoError(t, v.Verify(WebhookRequest{}, ""))
	assert.NoError(t, v.Verify(WebhookRequest{SecretHeader: "anything"}, ""))
}

func TestEventID(t *testing.T) {
	tests := []struct {
		name string
		req  WebhookRequest
		want string
	}{
		{"body data.id", WebhookRequest{Body: []byte(`{"data":{"id":"M1"},"id":"E9"}`), Query: url.Values{"data.id": {"Q1"}}}, "M1"},
		{"numeric data.id", WebhookRequest{Body: []byte(`{"data":{"id":123456789012}}`)}, "123456789012"},
		{"query fallback", WebhookRequest{Body: []byte(`{"id":"E9"}`), Query: url.Values{"data.id": {"Q1"}}}, "Q1"},
		{"body id fallback", WebhookRequest{Body: []byte(`{"id":42}`)}, "42"},
		{"invalid json", WebhookRequest{Body: []byte(`{`), Query: url.Values{"data.id": {"Q1"}}}, "Q1"},
		{"nothing", WebhookRequest{Body: []byte(`{}`)}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EventID(tt.req))
		})
	}
}
