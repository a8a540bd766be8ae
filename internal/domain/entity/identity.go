package entity

import (
	"time"
)

// Identity binds a chat user to a patient record (or, for accounts without a
// patient card, a generic user record). At most one row per chat user; exactly
// one of PatientID/GenericUserID is set once verified.
type Identity struct {
	ChatUserID    int64      `gorm:"primaryKey;autoIncrement:false" json:"chat_user_id"`
	PatientID     *int64     `gorm:"index" json:"patient_id,omitempty"`
	GenericUserID *int64     `json:"generic_user_id,omitempty"`
	DisplayHandle string     `gorm:"type:text" json:"display_handle,omitempty"`
	VerifiedAt    *time.Time `json:"verified_at,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (Identity) TableName() string {
	return "identities"
}

// IsVerified reports whether the binding has been confirmed against a patient
// or generic user record.
func (i *Identity) IsVerified() bool {
	return i.VerifiedAt != nil && (i.PatientID != nil || i.GenericUserID != nil)
}

// HasPatient reports whether the binding points at a patient record.
func (i *Identity) HasPatient() bool {
	return i.PatientID != nil
}
