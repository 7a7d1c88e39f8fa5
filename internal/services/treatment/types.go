package treatment

import (
	"clinic/internal/models"
	"clinic/internal/services/fee"
)

const MaxNameLength = 200

type CreateInput struct {
	Name         string          `json:"name" validate:"required,max=200"`
	Price        *float64        `json:"price" validate:"required,gte=0"`
	IncludeVat   bool            `json:"include_vat"`
	DoctorFee    *models.FeeSpec `json:"doctor_fee"`
	AssistantFee *models.FeeSpec `json:"assistant_fee"`
	ClinicID     string          `json:"clinic_id"`
}

// UpdateInput is a partial update. A null or absent fee spec leaves the stored
// one in place; the Remove flags clear it.
type UpdateInput struct {
	Name               *string         `json:"name" validate:"omitempty,max=200"`
	Price              *float64        `json:"price" validate:"omitempty,gte=0"`
	IncludeVat         *bool           `json:"include_vat"`
	DoctorFee          *models.FeeSpec `json:"doctor_fee"`
	AssistantFee       *models.FeeSpec `json:"assistant_fee"`
	RemoveDoctorFee    bool            `json:"remove_doctor_fee"`
	RemoveAssistantFee bool            `json:"remove_assistant_fee"`
	ClinicID           *string         `json:"clinic_id"`
}

// FeeOverride replaces persisted values for a preview only.
type FeeOverride struct {
	IncludeVat   *bool           `json:"include_vat"`
	DoctorFee    *models.FeeSpec `json:"doctor_fee"`
	AssistantFee *models.FeeSpec `json:"assistant_fee"`
}

// CalculateInput prices a treatment that has not been saved.
type CalculateInput struct {
	Price        float64         `json:"price" validate:"gte=0"`
	IncludeVat   bool            `json:"include_vat"`
	DoctorFee    *models.FeeSpec `json:"doctor_fee"`
	AssistantFee *models.FeeSpec `json:"assistant_fee"`
}

type ViewOptions struct {
	WithCalculations bool
	PopulateClinic   bool
}

type ListFilter struct {
	ViewOptions
	ClinicID   string
	Name       string
	IncludeVat *bool
	Sort       string
	Offset     int
	Limit      int
}

// View is a treatment as returned to clients.
type View struct {
	models.Treatment
	Clinic       models.ClinicRef `json:"clinic_id"`
	Calculations *fee.Calculation `json:"calculations,omitempty"`
}
