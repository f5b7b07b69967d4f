// Package mercadopago talks to the Mercado Pago preapproval API.
package mercadopago

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/clubsaas/clubsaas/internal/application/payment/paymentgateway"
	"github.com/clubsaas/clubsaas/internal/shared/biztime"
	"github.com/clubsaas/clubsaas/internal/shared/config"
	"github.com/clubsaas/clubsaas/internal/shared/logger"
)

const (
	defaultBaseURL  = "https://api.mercadopago.com"
	defaultTimeout  = 15 * time.Second
	defaultCurrency = "BRL"
	// Maximum response body size (1MB)
	maxResponseSize = 1 << 20
)

type autoRecurring struct {
	Frequency         int     `json:"frequency"`
	FrequencyType     string  `json:"frequency_type"`
	TransactionAmount float64 `json:"transaction_amount"`
	CurrencyID        string  `json:"currency_id"`
}

type preapprovalRequest struct {
	Reason            string        `json:"reason"`
	AutoRecurring     autoRecurring `json:"auto_recurring"`
	BackURL           string        `json:"back_url,omitempty"`
	ExternalReference string        `json:"external_reference"`
	PayerEmail        string        `json:"payer_email"`
	Status            string        `json:"status"`
}

type preapprovalResponse struct {
	ID                string `json:"id"`
	Status            string `json:"status"`
	ExternalReference string `json:"external_reference"`
	NextPaymentDate   string `json:"next_payment_date"`
	InitPoint         string `json:"init_point"`
}

// Client implements paymentgateway.MandateGateway.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	backURL     string
	currency    string
	logger      logger.Interface
}

var _ paymentgateway.MandateGateway = (*Client)(nil)

func NewClient(cfg config.MercadoPagoConfig, log logger.Interface) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	currency := cfg.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     baseURL,
		accessToken: cfg.AccessToken,
		backURL:     cfg.BackURL,
		currency:    currency,
		logger:      log,
	}
}

// CreateMandate registers a pending preapproval and returns its checkout link.
func (c *Client) CreateMandate(ctx context.Context, req paymentgateway.CreateMandateRequest) (*paymentgateway.Mandate, error) {
	body := preapprovalRequest{
		Reason: fmt.Sprintf("Plano %s - %s", req.PlanName, req.TenantName),
		AutoRecurring: autoRecurring{
			Frequency:         1,
			FrequencyType:     req.Interval.FrequencyType(),
			TransactionAmount: float64(req.AmountCents) / 100,
			CurrencyID:        c.currency,
		},
		BackURL:           c.backURL,
		ExternalReference: req.TenantID,
		PayerEmail:        req.PayerEmail,
		Status:            "pending",
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode preapproval: %w", err)
	}

	var resp preapprovalResponse
	if err := c.do(ctx, http.MethodPost, "/preapproval", payload, &resp); err != nil {
		c.logger.Errorw("failed to create preapproval",
			"tenant_id", req.TenantID,
			"error", err,
		)
		return nil, err
	}

	c.logger.Infow("preapproval created",
		"tenant_id", req.TenantID,
		"mandate_id", resp.ID,
	)
	return c.toMandate(&resp), nil
}

// GetMandate fetches the current state of a preapproval.
func (c *Client) GetMandate(ctx context.Context, mandateID string) (*paymentgateway.Mandate, error) {
	if mandateID == "" {
		return nil, paymentgateway.ErrMandateNotFound
	}
	var resp preapprovalResponse
	if err := c.do(ctx, http.MethodGet, "/preapproval/"+url.PathEscape(mandateID), nil, &resp); err != nil {
		return nil, err
	}
	return c.toMandate(&resp), nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte, out any) error {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mercadopago request failed: %w", err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(io.LimitReader(res.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("failed to read mercadopago response: %w", err)
	}

	if res.StatusCode == http.StatusNotFound {
		return paymentgateway.ErrMandateNotFound
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("mercadopago returned status %d: %s", res.StatusCode, truncate(string(data), 256))
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode mercadopago response: %w", err)
	}
	return nil
}

func (c *Client) toMandate(r *preapprovalResponse) *paymentgateway.Mandate {
	m := &paymentgateway.Mandate{
		ID:                r.ID,
		Status:            r.Status,
		ExternalReference: r.ExternalReference,
		InitPoint:         r.InitPoint,
	}
	if r.NextPaymentDate != "" {
		t, err := biztime.ParseTimestamp(r.NextPaymentDate)
		if err != nil {
			c.logger.Warnw("unparseable next_payment_date, period end falls back to now",
				"mandate_id", r.ID,
				"next_payment_date", r.NextPaymentDate,
				"error", err,
			)
		} else {
			m.NextPaymentDate = &t
		}
	}
	return m
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
