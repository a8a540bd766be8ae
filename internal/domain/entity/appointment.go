package entity

import (
	"time"
)

// Appointment is the single active booking slot for a patient (or, in
// chat-user booking mode, for a chat user). Bookings overwrite in place via
// upsert, so there is never more than one row per key.
//
// FullNameSnapshot is a deliberate denormalization: reading an appointment
// back must not depend on a join against the patients table.
type Appointment struct {
	ID                  int64     `gorm:"primaryKey" json:"id"`
	PatientID           *int64    `gorm:"uniqueIndex" json:"patient_id,omitempty"`
	ChatUserID          int64     `gorm:"uniqueIndex;not null" json:"chat_user_id"`
	FullNameSnapshot    string    `gorm:"column:full_name;type:text;not null" json:"full_name_snapshot"`
	ScheduledAt         time.Time `gorm:"not null" json:"scheduled_at"`
	CreatedByChatUserID int64     `json:"created_by_chat_user_id"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Appointment) TableName() string {
	return "appointments"
}
