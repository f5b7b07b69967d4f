// Package user models platform accounts. Every role except SUPER_ADMIN
// belongs to exactly one tenant.
package user

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/clubsaas/clubsaas/internal/domain/user/valueobjects"
	"github.com/clubsaas/clubsaas/internal/shared/authorization"
)

type User struct {
	id           uint
	email        *vo.Email
	name         string
	passwordHash string
	role         authorization.UserRole
	tenantID     *string
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser creates an account. tenantID must be set for tenant roles and must
// be nil for SUPER_ADMIN.
func NewUser(email *vo.Email, name, passwordHash string, role authorization.UserRole, tenantID *string, now time.Time) (*User, error) {
	if email == nil {
		return nil, fmt.Errorf("email is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}
	if err := validateRoleTenant(role, tenantID); err != nil {
		return nil, err
	}
	now = now.UTC()
	return &User{
		email:        email,
		name:         name,
		passwordHash: passwordHash,
		role:         role,
		tenantID:     tenantID,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructUser(id uint, email *vo.Email, name, passwordHash string, role authorization.UserRole, tenantID *string, createdAt, updatedAt time.Time) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if email == nil {
		return nil, fmt.Errorf("email is required")
	}
	if err := validateRoleTenant(role, tenantID); err != nil {
		return nil, err
	}
	return &User{
		id:           id,
		email:        email,
		name:         name,
		passwordHash: passwordHash,
		role:         role,
		tenantID:     tenantID,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func validateRoleTenant(role authorization.UserRole, tenantID *string) error {
	if !role.IsValid() {
		return fmt.Errorf("invalid role: %s", role)
	}
	hasTenant := tenantID != nil && *tenantID != ""
	if role.RequiresTenant() && !hasTenant {
		return fmt.Errorf("role %s requires a tenant", role)
	}
	if !role.RequiresTenant() && hasTenant {
		return fmt.Errorf("role %s cannot belong to a tenant", role)
	}
	return nil
}

func (u *User) ID() uint {
	return u.id
}

func (u *User) Email() *vo.Email {
	return u.email
}

func (u *User) Name() string {
	return u.name
}

func (u *User) PasswordHash() string {
	return u.passwordHash
}

func (u *User) Role() authorization.UserRole {
	return u.role
}

// TenantID returns "" for the platform operator.
func (u *User) TenantID() string {
	if u.tenantID == nil {
		return ""
	}
	return *u.tenantID
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	u.id = id
	return nil
}
