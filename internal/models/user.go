package models

import "github.com/google/uuid"

type User struct {
	Base
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	Password     string     `gorm:"not null" json:"-"`
	Name         string     `gorm:"not null" json:"name"`
	Role         Role       `gorm:"type:varchar(32);not null;default:'STAFF'" json:"role"`
	ClinicID     *uuid.UUID `gorm:"type:uuid;index" json:"clinic_id,omitempty"`
	TokenVersion int        `gorm:"not null;default:1" json:"-"`
}

// ClinicKey returns the user's clinic id as carried in tokens, empty for none.
func (u *User) ClinicKey() string {
	if u.ClinicID == nil {
		return ""
	}
	return u.ClinicID.String()
}
