package tenant

import "fmt"

// Status is the cached access decision for a tenant.
type Status string

const (
	StatusActive  Status = "ACTIVE"
	StatusBlocked Status = "BLOCKED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusBlocked
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid tenant status: %q", s)
	}
	return st, nil
}

// StatusFor derives the tenant status from whether its subscription grants access.
func StatusFor(subscriptionActive bool) Status {
	if subscriptionActive {
		return StatusActive
	}
	return StatusBlocked
}
