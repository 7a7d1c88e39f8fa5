package models

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type UserClaims struct {
	jwt.RegisteredClaims
	UserID       uuid.UUID `json:"user_id"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	ClinicID     string    `json:"clinic_id,omitempty"`
	Permissions  []string  `json:"permissions"`
	TokenVersion int       `json:"token_version"`
}

// HasPermission checks if the claims include a specific permission
func (c *UserClaims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// Caller projects the claims onto the per-request caller identity.
func (c *UserClaims) Caller() Caller {
	return Caller{
		UserID:   c.UserID,
		Role:     c.Role,
		ClinicID: c.ClinicID,
	}
}
