package entity

import (
	"time"
)

// Patient mirrors the patient table owned by the main clinic system. This
// service only reads it: lookups by passport+birth date during linking and by
// id when snapshotting the full name onto an appointment.
type Patient struct {
	ID             int64     `gorm:"primaryKey" json:"id"`
	FullName       string    `gorm:"type:text;not null" json:"full_name"`
	PassportNumber string    `gorm:"column:passport;type:text;not null" json:"passport_number"`
	BirthDate      time.Time `gorm:"type:date;not null" json:"birth_date"`
}

func (Patient) TableName() string {
	return "patients"
}
