package subscription

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/clubsaas/clubsaas/internal/domain/subscription/valueobjects"
)

// Plan is a SaaS tier a tenant subscribes to.
type Plan struct {
	id         uint
	name       string
	interval   vo.PlanInterval
	priceCents int64
	active     bool
	createdAt  time.Time
	updatedAt  time.Time
}

func NewPlan(name string, interval vo.PlanInterval, priceCents int64, now time.Time) (*Plan, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("plan name is required")
	}
	if !interval.IsValid() {
		return nil, fmt.Errorf("invalid plan interval: %s", interval)
	}
	if priceCents <= 0 {
		return nil, fmt.Errorf("plan price must be positive")
	}
	now = now.UTC()
	return &Plan{
		name:       name,
		interval:   interval,
		priceCents: priceCents,
		active:     true,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func ReconstructPlan(id uint, name string, interval vo.PlanInterval, priceCents int64, active bool, createdAt, updatedAt time.Time) (*Plan, error) {
	if id == 0 {
		return nil, fmt.Errorf("plan ID cannot be zero")
	}
	if !interval.IsValid() {
		return nil, fmt.Errorf("invalid plan interval: %s", interval)
	}
	return &Plan{
		id:         id,
		name:       name,
		interval:   interval,
		priceCents: priceCents,
		active:     active,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}, nil
}

func (p *Plan) ID() uint { return p.id }
func (p *Plan) Name() string { return p.name }
func (p *Plan) Interval() vo.PlanInterval { return p.interval }
func (p *Plan) PriceCents() int64 { return p.priceCents }
func (p *Plan) IsActive() bool { return p.active }
func (p *Plan) CreatedAt() time.Time { return p.createdAt }
func (p *Plan) UpdatedAt() time.Time { return p.updatedAt }

// Price returns the amount in currency units as the provider expects it.
func (p *Plan) Price() float64 {
	return float64(p.priceCents) / 100
}

func (p *Plan) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("plan ID is already set")
	}
	p.id = id
	return nil
}
