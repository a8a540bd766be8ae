package repository

import (
	"context"
	"time"

	"clinic-appointment-bot/internal/domain/entity"

	"gorm.io/gorm"
)

// PatientRepository reads the patient table owned by the main clinic system.
// Nothing here mutates it.
type PatientRepository interface {
	FindByPassportAndBirthDate(ctx context.Context, db *gorm.DB, passport string, birthDate time.Time) (*entity.Patient, error)
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.Patient, error)
}
