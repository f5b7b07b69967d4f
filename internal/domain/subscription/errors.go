package subscription

import "errors"

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	// ErrExternalIDConflict is returned when a write tries to replace an
	// already bound provider mandate id with a different one.
	ErrExternalIDConflict = errors.New("subscription already bound to a different mandate")
	ErrInvalidStatus      = errors.New("invalid subscription status")
	ErrPlanNotFound       = errors.New("plan not found")
	ErrPlanInactive       = errors.New("plan inactive")
)
