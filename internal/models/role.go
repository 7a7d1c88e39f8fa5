package models

// Role is the caller's role as carried in the access token.
type Role string

const (
	RoleSuperAdmin  Role = "SUPER_ADMIN"
	RoleClinicAdmin Role = "CLINIC_ADMIN"
	RoleStaff       Role = "STAFF"
)

// IsSuperAdmin reports whether the role sees every clinic.
func (r Role) IsSuperAdmin() bool {
	return r == RoleSuperAdmin
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleClinicAdmin, RoleStaff:
		return true
	}
	return false
}
