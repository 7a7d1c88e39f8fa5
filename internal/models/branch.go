package models

import "github.com/google/uuid"

type Branch struct {
	Base
	Name     string    `gorm:"size:200;not null" json:"name"`
	Address  string    `json:"address"`
	ClinicID uuid.UUID `gorm:"type:uuid;index;not null" json:"clinic_id"`
}
