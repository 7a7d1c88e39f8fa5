package models

import (
	"database/sql/driver"

	"clinic/internal/utils/rounding"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FeeType string

const (
	FeeTypePercentage FeeType = "PERCENTAGE"
	FeeTypeFixed      FeeType = "FIXED"
)

// FeeSpec describes how a professional fee is derived from a treatment price.
// It is replaced wholesale on update.
type FeeSpec struct {
	Amount float64 `json:"amount"`
	Type   FeeType `json:"type"`
}

func (f FeeSpec) Value() (driver.Value, error) {
	return jsonValue(f)
}

func (f *FeeSpec) Scan(value interface{}) error {
	return scanJSON(value, f)
}

type Treatment struct {
	Base
	Name         string    `gorm:"size:200;not null;uniqueIndex:idx_treatments_clinic_name" json:"name"`
	Price        float64   `gorm:"not null;default:0" json:"price"`
	IncludeVat   bool      `gorm:"not null;default:false" json:"include_vat"`
	DoctorFee    *FeeSpec  `gorm:"type:jsonb" json:"doctor_fee,omitempty"`
	AssistantFee *FeeSpec  `gorm:"type:jsonb" json:"assistant_fee,omitempty"`
	ClinicID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_treatments_clinic_name" json:"clinic_id"`
}

// BeforeSave re-applies two-decimal rounding to the price and fee amounts.
func (t *Treatment) BeforeSave(tx *gorm.DB) error {
	t.Normalize()
	return nil
}

func (t *Treatment) Normalize() {
	t.Price = rounding.Round2(t.Price)
	if t.DoctorFee != nil {
		t.DoctorFee.Amount = rounding.Round2(t.DoctorFee.Amount)
	}
	if t.AssistantFee != nil {
		t.AssistantFee.Amount = rounding.Round2(t.AssistantFee.Amount)
	}
}
