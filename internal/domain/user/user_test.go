package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/clubsaas/clubsaas/internal/domain/user/valueobjects"
	"github.com/clubsaas/clubsaas/internal/shared/authorization"
)

func TestNewUserRoleTenantRules(t *testing.T) {
	now := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	email, err := vo.NewEmail("owner@club.example")
	require.NoError(t, err)
	tenantID := "3f1c6c1e-6a4e-4a57-9f59-0c0d9d0f6d11"

	tests := []struct {
		name     string
		role     authorization.UserRole
		tenantID *string
		wantErr  bool
	}{
		{"club admin with tenant", authorization.RoleClubAdmin, &tenantID, false},
		{"cashier without tenant", authorization.RoleCashier, nil, true},
		{"super admin without tenant", authorization.RoleSuperAdmin, nil, false},
		{"super admin with tenant", authorization.RoleSuperAdmin, &tenantID, true},
		{"unknown role", authorization.UserRole("OWNER"), &tenantID, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := NewUser(email, "Owner", "hash", tt.role, tt.tenantID, now)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.role, u.Role())
		})
	}
}

func TestTenantIDEmptyForOperator(t *testing.T) {
	email, _ := vo.NewEmail("ops@platform.example")
	u, err := NewUser(email, "Ops", "hash", authorization.RoleSuperAdmin, nil, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "", u.TenantID())
}
