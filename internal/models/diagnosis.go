package models

import "github.com/google/uuid"

type Diagnosis struct {
	Base
	Name     string    `gorm:"size:200;not null;uniqueIndex:idx_diagnoses_clinic_name" json:"name"`
	ClinicID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_diagnoses_clinic_name" json:"clinic_id"`
}

func (Diagnosis) TableName() string {
	return "diagnoses"
}
