package repository

import (
	"context"

	"clinic-appointment-bot/internal/domain/entity"

	"gorm.io/gorm"
)

type AppointmentRepository interface {
	// UpsertForPatient inserts or replaces the single active appointment keyed
	// by patient id. Insert and replace happen in one statement so the
	// one-row-per-patient invariant holds under concurrent callers.
	UpsertForPatient(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error

	// UpsertForChatUser is the identity-less variant, keyed by chat user id.
	UpsertForChatUser(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error

	// FindForChatUser resolves through the identity binding to the appointment
	// of the patient currently linked to the chat user.
	FindForChatUser(ctx context.Context, db *gorm.DB, chatUserID int64) (*entity.Appointment, error)

	// FindByChatUserID looks up the appointment keyed directly by chat user id
	// (identity-less variant).
	FindByChatUserID(ctx context.Context, db *gorm.DB, chatUserID int64) (*entity.Appointment, error)
}
