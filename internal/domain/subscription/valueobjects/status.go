package valueobjects

import (
	"fmt"
	"strings"
)

// SubscriptionStatus is the platform's own view of a tenant's billing state.
type SubscriptionStatus string

const (
	StatusActive   SubscriptionStatus = "ACTIVE"
	StatusPastDue  SubscriptionStatus = "PAST_DUE"
	StatusCanceled SubscriptionStatus = "CANCELED"
)

var ValidStatuses = map[SubscriptionStatus]bool{
	StatusActive:   true,
	StatusPastDue:  true,
	StatusCanceled: true,
}

func (s SubscriptionStatus) String() string {
	return string(s)
}

func (s SubscriptionStatus) IsValid() bool {
	return ValidStatuses[s]
}

// GrantsAccess reports whether the status alone permits tenant access.
// The period end must still be checked.
func (s SubscriptionStatus) GrantsAccess() bool {
	return s == StatusActive
}

// ParseSubscriptionStatus accepts any casing of a known status.
func ParseSubscriptionStatus(s string) (SubscriptionStatus, error) {
	status := SubscriptionStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", fmt.Errorf("invalid subscription status: %q", s)
	}
	return status, nil
}
