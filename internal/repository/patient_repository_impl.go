package repository

import (
	"context"
	"errors"
	"time"

	"clinic-appointment-bot/internal/domain/entity"
	domainRepo "clinic-appointment-bot/internal/domain/repository"

	"gorm.io/gorm"
)

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) FindByPassportAndBirthDate(ctx context.Context, db *gorm.DB, passport string, birthDate time.Time) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.WithContext(ctx).
		Where("passport = ? AND birth_date = ?", passport, birthDate.Format("2006-01-02")).
		First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.WithContext(ctx).Where("id = ?", id).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}
