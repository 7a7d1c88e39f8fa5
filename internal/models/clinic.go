package models

type Clinic struct {
	Base
	Name string `gorm:"size:200;uniqueIndex;not null" json:"name"`
}
