package models

import "github.com/google/uuid"

// Caller is the identity attached to a request by the auth middleware.
// It is read-only for the lifetime of the request.
type Caller struct {
	UserID   uuid.UUID
	Role     Role
	ClinicID string
}

func (c Caller) IsSuperAdmin() bool {
	return c.Role.IsSuperAdmin()
}
