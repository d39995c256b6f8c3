package domain

// Role is the closed set of privilege levels. Roles are totally ordered:
// basic_user < admin < super_admin.
type Role string

const (
	RoleBasicUser  Role = "basic_user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// Rank returns the privilege rank of the role: basic_user=0, admin=1,
// super_admin=2. Unknown role names rank below basic_user; callers surface
// those as data errors, not this package.
func (r Role) Rank() int {
	switch r {
	case RoleBasicUser:
		return 0
	case RoleAdmin:
		return 1
	case RoleSuperAdmin:
		return 2
	default:
		return -1
	}
}

// AtLeast reports whether r carries at least the privilege of threshold.
func (r Role) AtLeast(threshold Role) bool {
	return r.Rank() >= threshold.Rank()
}

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	return r.Rank() >= 0
}

// IsBasicLevel reports whether r is neither admin nor super_admin. Unknown
// roles count as basic level, mirroring how the privileged checks treat them.
func (r Role) IsBasicLevel() bool {
	return r != RoleAdmin && r != RoleSuperAdmin
}

// IsAdminLevel reports whether r is admin or super_admin.
func (r Role) IsAdminLevel() bool {
	return !r.IsBasicLevel()
}
