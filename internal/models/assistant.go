package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

type EmploymentType string

const (
	EmploymentPartTime EmploymentType = "PART_TIME"
	EmploymentFullTime EmploymentType = "FULL_TIME"
)

type Weekday string

const (
	Monday    Weekday = "MONDAY"
	Tuesday   Weekday = "TUESDAY"
	Wednesday Weekday = "WEDNESDAY"
	Thursday  Weekday = "THURSDAY"
	Friday    Weekday = "FRIDAY"
	Saturday  Weekday = "SATURDAY"
	Sunday    Weekday = "SUNDAY"
)

// Weekdays lists the accepted timetable days in calendar order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

type Assistant struct {
	Base
	Name           string            `gorm:"size:100;not null" json:"name"`
	Surname        string            `gorm:"size:100;not null" json:"surname"`
	Nickname       *string           `gorm:"size:100" json:"nickname,omitempty"`
	Gender         Gender            `gorm:"type:varchar(16);not null" json:"gender"`
	EmploymentType EmploymentType    `gorm:"type:varchar(16);not null" json:"employment_type"`
	Birthday       *time.Time        `gorm:"type:date" json:"birthday,omitempty"`
	ClinicID       uuid.UUID         `gorm:"type:uuid;index;not null" json:"clinic_id"`
	Branches       []AssistantBranch `gorm:"foreignKey:AssistantID;constraint:OnDelete:CASCADE" json:"branches"`
	IsActive       bool              `gorm:"not null" json:"is_active"`
}

// AssistantBranch assigns an assistant to a branch with a weekly timetable.
type AssistantBranch struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey" json:"-"`
	AssistantID uuid.UUID        `gorm:"type:uuid;index;not null" json:"-"`
	BranchID    uuid.UUID        `gorm:"type:uuid;index;not null" json:"branch_id"`
	Timetable   []TimetableEntry `gorm:"foreignKey:AssistantBranchID;constraint:OnDelete:CASCADE" json:"timetable"`
}

type TimetableEntry struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey" json:"-"`
	AssistantBranchID uuid.UUID      `gorm:"type:uuid;index;not null" json:"-"`
	Day               Weekday        `gorm:"type:varchar(16);not null" json:"day"`
	Time              pq.StringArray `gorm:"type:text[]" json:"time"`
}

// FullName joins name and surname, with the nickname in parentheses when set.
func (a *Assistant) FullName() string {
	full := strings.TrimSpace(a.Name + " " + a.Surname)
	if a.Nickname != nil && strings.TrimSpace(*a.Nickname) != "" {
		full += " (" + strings.TrimSpace(*a.Nickname) + ")"
	}
	return full
}

// Age returns whole years between the birthday and now, nil when unknown.
func (a *Assistant) Age(now time.Time) *int {
	if a.Birthday == nil {
		return nil
	}
	b := a.Birthday.UTC()
	now = now.UTC()
	years := now.Year() - b.Year()
	if now.Month() < b.Month() || (now.Month() == b.Month() && now.Day() < b.Day()) {
		years--
	}
	if years < 0 {
		years = 0
	}
	return &years
}

// BranchIDs returns the distinct branch ids the assistant is assigned to.
func (a *Assistant) BranchIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(a.Branches))
	ids := make([]uuid.UUID, 0, len(a.Branches))
	for _, b := range a.Branches {
		if _, ok := seen[b.BranchID]; ok {
			continue
		}
		seen[b.BranchID] = struct{}{}
		ids = append(ids, b.BranchID)
	}
	return ids
}

func (b *AssistantBranch) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

func (e *TimetableEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
