package valueobjects

import "time"

// Mandate states reported by the payment provider for a recurring
// authorization (preapproval).
const (
	MandateAuthorized = "authorized"
	MandatePending    = "pending"
	MandatePaused     = "paused"
	MandateCancelled  = "cancelled"
)

var mandateStatusMap = map[string]SubscriptionStatus{
	MandateAuthorized: StatusActive,
	MandatePending:    StatusPastDue,
	MandatePaused:     StatusCanceled,
	MandateCancelled:  StatusCanceled,
}

// MapMandateState translates a provider mandate state into a subscription
// status. The mapping is total: unknown or empty states map to PAST_DUE so a
// vocabulary change at the provider can never grant access. Matching is
// case-sensitive.
func MapMandateState(state string) SubscriptionStatus {
	if status, ok := mandateStatusMap[state]; ok {
		return status
	}
	return StatusPastDue
}

// IsKnownMandateState reports whether MapMandateState has an explicit entry
// for state. Callers use it to log unexpected provider vocabulary.
func IsKnownMandateState(state string) bool {
	_, ok := mandateStatusMap[state]
	return ok
}

// ResolvePeriodEnd uses the provider's next payment date when present and
// falls back to now otherwise.
func ResolvePeriodEnd(nextPaymentDate *time.Time, now time.Time) time.Time {
	if nextPaymentDate != nil && !nextPaymentDate.IsZero() {
		return nextPaymentDate.UTC()
	}
	return now.UTC()
}
