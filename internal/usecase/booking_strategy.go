package usecase

import (
	"context"
	"fmt"
	"time"

	"clinic-appointment-bot/internal/domain/entity"
	"clinic-appointment-bot/internal/domain/repository"

	"gorm.io/gorm"
)

// BookingStrategy is the appointment capability behind the booking flow. The
// patient-keyed and chat-user-keyed models are two implementations selected at
// configuration time.
type BookingStrategy interface {
	// Prepare checks whether the chat user may enter the booking flow.
	// Returns ErrIdentityMissing when the user must link first.
	Prepare(ctx context.Context, db *gorm.DB, chatUserID int64) error

	// NeedsFullName reports whether the flow has to collect a full name
	// before asking for the appointment time.
	NeedsFullName() bool

	// Save atomically inserts or replaces the chat user's appointment.
	// fullName is the collected scratch name; the patient-keyed strategy
	// ignores it and resolves the name from the patient record.
	Save(ctx context.Context, db *gorm.DB, chatUserID int64, fullName string, scheduledAt time.Time) (*entity.Appointment, error)

	// Fetch returns the chat user's current appointment, or nil.
	Fetch(ctx context.Context, db *gorm.DB, chatUserID int64) (*entity.Appointment, error)
}

// patientBookingStrategy keys appointments by the linked patient.
type patientBookingStrategy struct {
	identityRepo    repository.IdentityRepository
	patientRepo     repository.PatientRepository
	appointmentRepo repository.AppointmentRepository
}

func NewPatientBookingStrategy(
	identityRepo repository.IdentityRepository,
	patientRepo repository.PatientRepository,
	appointmentRepo repository.AppointmentRepository,
) BookingStrategy {
	return &patientBookingStrategy{
		identityRepo:    identityRepo,
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
	}
}

func (s *patientBookingStrategy) Prepare(ctx context.Context, db *gorm.DB, chatUserID int64) error {
	identity, err := s.identityRepo.FindByChatUserID(ctx, db, chatUserID)
	if err != nil {
		return err
	}
	if identity == nil || !identity.HasPatient() {
		return ErrIdentityMissing
	}
	return nil
}

func (s *patientBookingStrategy) NeedsFullName() bool {
	return false
}

func (s *patientBookingStrategy) Save(ctx context.Context, db *gorm.DB, chatUserID int64, _ string, scheduledAt time.Time) (*entity.Appointment, error) {
	// Re-check the binding: it may have been replaced while the user was
	// typing the time.
	identity, err := s.identityRepo.FindByChatUserID(ctx, db, chatUserID)
	if err != nil {
		return nil, err
	}
	if identity == nil || !identity.HasPatient() {
		return nil, ErrIdentityMissing
	}

	patientID := *identity.PatientID

	fullName, err := s.resolveFullName(ctx, db, patientID)
	if err != nil {
		return nil, err
	}

	appointment := &entity.Appointment{
		PatientID:           &patientID,
		ChatUserID:          chatUserID,
		FullNameSnapshot:    fullName,
		ScheduledAt:         scheduledAt,
		CreatedByChatUserID: chatUserID,
	}
	if err := s.appointmentRepo.UpsertForPatient(ctx, db, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// resolveFullName snapshots the patient's name onto the appointment. The
// placeholder only covers the window where the patient row disappeared
// between link and book.
func (s *patientBookingStrategy) resolveFullName(ctx context.Context, db *gorm.DB, patientID int64) (string, error) {
	patient, err := s.patientRepo.FindByID(ctx, db, patientID)
	if err != nil {
		return "", err
	}
	if patient == nil {
		return fmt.Sprintf("PATIENT#%d", patientID), nil
	}
	return patient.FullName, nil
}

func (s *patientBookingStrategy) Fetch(ctx context.Context, db *gorm.DB, chatUserID int64) (*entity.Appointment, error) {
	return s.appointmentRepo.FindForChatUser(ctx, db, chatUserID)
}

// chatUserBookingStrategy keys appointments directly by the chat user and has
// no patient-linking concept, so it collects the name itself.
type chatUserBookingStrategy struct {
	appointmentRepo repository.AppointmentRepository
}

func NewChatUserBookingStrategy(appointmentRepo repository.AppointmentRepository) BookingStrategy {
	return &chatUserBookingStrategy{appointmentRepo: appointmentRepo}
}

func (s *chatUserBookingStrategy) Prepare(ctx context.Context, db *gorm.DB, chatUserID int64) error {
	return nil
}

func (s *chatUserBookingStrategy) NeedsFullName() bool {
	return true
}

func (s *chatUserBookingStrategy) Save(ctx context.Context, db *gorm.DB, chatUserID int64, fullName string, scheduledAt time.Time) (*entity.Appointment, error) {
	appointment := &entity.Appointment{
		ChatUserID:          chatUserID,
		FullNameSnapshot:    fullName,
		ScheduledAt:         scheduledAt,
		CreatedByChatUserID: chatUserID,
	}
	if err := s.appointmentRepo.UpsertForChatUser(ctx, db, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

func (s *chatUserBookingStrategy) Fetch(ctx context.Context, db *gorm.DB, chatUserID int64) (*entity.Appointment, error) {
	return s.appointmentRepo.FindByChatUserID(ctx, db, chatUserID)
}
