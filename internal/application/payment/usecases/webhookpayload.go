package usecases

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	vo "github.com/clubsaas/clubsaas/internal/domain/subscription/valueobjects"
	"github.com/clubsaas/clubsaas/internal/shared/biztime"
	"github.com/clubsaas/clubsaas/internal/shared/errors"
)

// WebhookRequest is the transport-independent view of a notification.
type WebhookRequest struct {
	SecretHeader    string
	SignatureHeader string
	Query           url.Values
	Body            []byte
}

// WebhookPayload is either DirectPayload or ProviderEventPayload.
type WebhookPayload interface {
	shape() string
}

// DirectPayload is an administrative push carrying the target state.
type DirectPayload struct {
	TenantID         string
	Status           vo.SubscriptionStatus
	CurrentPeriodEnd time.Time
}

func (DirectPayload) shape() string { return "direct" }

// ProviderEventPayload names a mandate whose state must be fetched.
type ProviderEventPayload struct {
	EventType string
	MandateID string
}

func (ProviderEventPayload) shape() string { return "provider_event" }

// flexibleID accepts ids sent as JSON strings or numbers.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexibleID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexibleID(n.String())
	return nil
}

type rawWebhookBody struct {
	TenantID         string     `json:"tenantId"`
	ClubID           string     `json:"clubId"`
	Status           string     `json:"status"`
	CurrentPeriodEnd string     `json:"currentPeriodEnd"`
	Type             string     `json:"type"`
	Action           string     `json:"action"`
	ID               flexibleID `json:"id"`
	Data             struct {
		ID flexibleID `json:"id"`
	} `json:"data"`
}

func decodeBody(body []byte) (*rawWebhookBody, bool) {
	var raw rawWebhookBody
	if len(bytes.TrimSpace(body)) == 0 {
		return &raw, true
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return &raw, false
	}
	return &raw, true
}

// EventID is the id covered by the HMAC signature: body data.id, then the
// data.id query parameter, then body id.
func EventID(req WebhookRequest) string {
	raw, _ := decodeBody(req.Body)
	if raw.Data.ID != "" {
		return string(raw.Data.ID)
	}
	if q := strings.TrimSpace(req.Query.Get("data.id")); q != "" {
		return q
	}
	return string(raw.ID)
}

// ParseWebhookPayload selects the payload shape by the fields present. The
// direct shape wins when tenantId (or clubId), status and currentPeriodEnd
// are all set; otherwise an event type and a mandate id are required.
func ParseWebhookPayload(req WebhookRequest) (WebhookPayload, error) {
	raw, ok := decodeBody(req.Body)
	if !ok {
		return nil, invalidPayload("webhook body is not valid JSON")
	}

	tenantID := strings.TrimSpace(raw.TenantID)
	if tenantID == "" {
		tenantID = strings.TrimSpace(raw.ClubID)
	}
	if tenantID != "" && strings.TrimSpace(raw.Status) != "" && strings.TrimSpace(raw.CurrentPeriodEnd) != "" {
		status, err := vo.ParseSubscriptionStatus(raw.Status)
		if err != nil {
			return nil, errors.NewValidationError("invalid subscription status", raw.Status).WithReason(ReasonInvalidStatus)
		}
		periodEnd, err := biztime.ParseTimestamp(raw.CurrentPeriodEnd)
		if err != nil {
			return nil, invalidPayload("invalid currentPeriodEnd")
		}
		return DirectPayload{TenantID: tenantID, Status: status, CurrentPeriodEnd: periodEnd}, nil
	}

	eventType := firstNonEmpty(raw.Type, raw.Action, req.Query.Get("type"), req.Query.Get("topic"))
	mandateID := string(raw.Data.ID)
	if mandateID == "" {
		mandateID = strings.TrimSpace(req.Query.Get("data.id"))
	}
	if eventType == "" || mandateID == "" {
		return nil, invalidPayload("webhook payload has neither a direct status nor a provider event")
	}
	return ProviderEventPayload{EventType: eventType, MandateID: mandateID}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func invalidPayload(message string) error {
	return errors.NewValidationError(message).WithReason(ReasonInvalidPayload)
}
