package valueobjects

import "fmt"

// PlanInterval is the billing cadence of a plan.
type PlanInterval string

const (
	IntervalMonthly PlanInterval = "monthly"
	IntervalYearly  PlanInterval = "yearly"
)

func (i PlanInterval) IsValid() bool {
	return i == IntervalMonthly || i == IntervalYearly
}

// FrequencyType is the unit the payment provider expects for a recurring
// mandate with frequency 1.
func (i PlanInterval) FrequencyType() string {
	if i == IntervalYearly {
		return "years"
	}
	return "months"
}

func ParsePlanInterval(s string) (PlanInterval, error) {
	i := PlanInterval(s)
	if !i.IsValid() {
		return "", fmt.Errorf("invalid plan interval: %q", s)
	}
	return i, nil
}
