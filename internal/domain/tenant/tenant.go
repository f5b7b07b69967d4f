// Package tenant models a club: the unit of isolation and billing.
package tenant

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Tenant struct {
	id        string
	name      string
	slug      string
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

// NewTenant creates a tenant with a fresh UUID.
func NewTenant(name, slug string, status Status, now time.Time) (*Tenant, error) {
	name = strings.TrimSpace(name)
	slug = strings.TrimSpace(slug)
	if name == "" {
		return nil, fmt.Errorf("tenant name is required")
	}
	if slug == "" {
		return nil, fmt.Errorf("tenant slug is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid tenant status: %s", status)
	}
	now = now.UTC()
	return &Tenant{
		id:        uuid.NewString(),
		name:      name,
		slug:      slug,
		status:    status,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructTenant(id, name, slug string, status Status, createdAt, updatedAt time.Time) (*Tenant, error) {
	if id == "" {
		return nil, fmt.Errorf("tenant ID is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid tenant status: %s", status)
	}
	return &Tenant{
		id:        id,
		name:      name,
		slug:      slug,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (t *Tenant) ID() string {
	return t.id
}

func (t *Tenant) Name() string {
	return t.name
}

func (t *Tenant) Slug() string {
	return t.slug
}

func (t *Tenant) Status() Status {
	return t.status
}

func (t *Tenant) IsBlocked() bool {
	return t.status == StatusBlocked
}

func (t *Tenant) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Tenant) UpdatedAt() time.Time {
	return t.updatedAt
}

// SyncAccess sets the status derived from the subscription and reports
// whether it changed.
func (t *Tenant) SyncAccess(subscriptionActive bool, now time.Time) bool {
	next := StatusFor(subscriptionActive)
	if next == t.status {
		return false
	}
	t.status = next
	t.updatedAt = now.UTC()
	return true
}
