// Package authorization defines the platform roles.
package authorization

type UserRole string

const (
	// RoleSuperAdmin is the platform operator. It has no tenant and is never gated.
	RoleSuperAdmin UserRole = "SUPER_ADMIN"
	RoleClubAdmin  UserRole = "CLUB_ADMIN"
	RoleCashier    UserRole = "CASHIER"
	RoleWaiter     UserRole = "WAITER"
)

var allRoles = []UserRole{RoleSuperAdmin, RoleClubAdmin, RoleCashier, RoleWaiter}

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsSuperAdmin() bool {
	return r == RoleSuperAdmin
}

// RequiresTenant reports whether users with this role must belong to a tenant.
func (r UserRole) RequiresTenant() bool {
	return r != RoleSuperAdmin
}

func (r UserRole) IsValid() bool {
	for _, role := range allRoles {
		if r == role {
			return true
		}
	}
	return false
}

// AllRoles returns every known role.
func AllRoles() []UserRole {
	out := make([]UserRole, len(allRoles))
	copy(out, allRoles)
	return out
}
