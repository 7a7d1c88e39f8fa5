package assistant

import (
	"regexp"

	"clinic/internal/models"
)

const (
	MaxNameLength  = 100
	BirthdayLayout = "2006-01-02"
)

// timeSlot accepts "09:00" or "09:00-17:30".
var timeSlot = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d(-([01]\d|2[0-3]):[0-5]\d)?$`)

type TimetableInput struct {
	Day  models.Weekday `json:"day" validate:"required"`
	Time []string       `json:"time"`
}

type BranchInput struct {
	BranchID  string           `json:"branch_id" validate:"required,uuid"`
	Timetable []TimetableInput `json:"timetable" validate:"dive"`
}

type CreateInput struct {
	Name           string                `json:"name" validate:"required,max=100"`
	Surname        string                `json:"surname" validate:"required,max=100"`
	Nickname       *string               `json:"nickname" validate:"omitempty,max=100"`
	Gender         models.Gender         `json:"gender" validate:"required"`
	EmploymentType models.EmploymentType `json:"employment_type" validate:"required"`
	Birthday       *string               `json:"birthday"`
	IsActive       *bool                 `json:"is_active"`
	ClinicID       string                `json:"clinic_id"`
	Branches       []BranchInput         `json:"branches" validate:"dive"`
}

// UpdateInput is a partial update. Branches, when present, replace every
// existing assignment. An empty nickname or birthday clears it.
type UpdateInput struct {
	Name           *string                `json:"name" validate:"omitempty,max=100"`
	Surname        *string                `json:"surname" validate:"omitempty,max=100"`
	Nickname       *string                `json:"nickname" validate:"omitempty,max=100"`
	Gender         *models.Gender         `json:"gender"`
	EmploymentType *models.EmploymentType `json:"employment_type"`
	Birthday       *string                `json:"birthday"`
	IsActive       *bool                  `json:"is_active"`
	ClinicID       *string                `json:"clinic_id"`
	Branches       *[]BranchInput         `json:"branches"`
}

type ListFilter struct {
	ClinicID       string
	Search         string
	IsActive       *bool
	BranchID       string
	EmploymentType models.EmploymentType
	Sort           string
	Offset         int
	Limit          int
	PopulateClinic bool
}

// View is an assistant with its computed fields.
type View struct {
	models.Assistant
	Clinic   models.ClinicRef `json:"clinic_id"`
	FullName string           `json:"full_name"`
	Age      *int             `json:"age"`
}
