package mercadopago

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubsaas/clubsaas/internal/application/payment/paymentgateway"
	vo "github.com/clubsaas/clubsaas/internal/domain/subscription/valueobjects"
	"github.com/clubsaas/clubsaas/internal/shared/config"
	"github.com/clubsaas/clubsaas/internal/shared/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.MercadoPagoConfig{
		AccessToken: "test-token",
		BaseURL:     srv.URL + "/",
		BackURL:     "https://app.example.com/billing",
	}, logger.NewNop())
}

func TestCreateMandate(t *testing.T) {
	var got preapprovalRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/preapproval", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"pre_123","status":"pending","external_reference":"T1","init_point":"https://mp.example/checkout/pre_123"}`))
	})

	m, err := client.CreateMandate(context.Background(), paymentgateway.CreateMandateRequest{
		TenantID:    "T1",
		TenantName:  "Clube Azul",
		PlanName:    "Pro",
		Interval:    vo.IntervalYearly,
		AmountCents: 19990,
		PayerEmail:  "admin@azul.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "pre_123", m.ID)
	assert.Equal(t, "https://mp.example/checkout/pre_123", m.InitPoint)
	assert.Nil(t, m.NextPaymentDate)

	assert.Equal(t, "Plano Pro - Clube Azul", got.Reason)
	assert.Equal(t, 1, got.AutoRecurring.Frequency)
	assert.Equal(t, "years", got.AutoRecurring.FrequencyType)
	assert.InDelta(t, 199.90, got.AutoRecurring.TransactionAmount, 0.0001)
	assert.Equal(t, "BRL", got.AutoRecurring.CurrencyID)
	assert.Equal(t, "T1", got.ExternalReference)
	assert.Equal(t, "admin@azul.com", got.PayerEmail)
	assert.Equal(t, "https://app.example.com/billing", got.BackURL)
}

func TestGetMandate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/preapproval/M1", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"M1","status":"authorized","external_reference":"T1","next_payment_date":"2025-04-01T00:00:00.000-03:00"}`))
	})

	m, err := client.GetMandate(context.Background(), "M1")
	require.NoError(t, err)
	assert.Equal(t, "authorized", m.Status)
	assert.Equal(t, "T1", m.ExternalReference)
	require.NotNil(t, m.NextPaymentDate)
	assert.True(t, m.NextPaymentDate.Equal(time.Date(2025, 4, 1, 3, 0, 0, 0, time.UTC)))
}

func TestGetMandateNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"not found"}`))
	})

	_, err := client.GetMandate(context.Background(), "missing")
	assert.ErrorIs(t, err, paymentgateway.ErrMandateNotFound)
}

func TestGetMandateUpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.GetMandate(context.Background(), "M1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, paymentgateway.ErrMandateNotFound)
	assert.Contains(t, err.Error(), "500")
}

func TestGetMandateUnparseableNextPaymentDate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"M1","status":"paused","next_payment_date":"soon"}`))
	})
	var logs bytes.Buffer
	client.logger = logger.NewLoggerWithSlog(slog.New(slog.NewJSONHandler(&logs, nil)))

	m, err := client.GetMandate(context.Background(), "M1")
	require.NoError(t, err)
	assert.Nil(t, m.NextPaymentDate)

	assert.Contains(t, logs.String(), `"level":"WARN"`)
	assert.Contains(t, logs.String(), `"next_payment_date":"soon"`)
	assert.Contains(t, logs.String(), `"mandate_id":"M1"`)
}
