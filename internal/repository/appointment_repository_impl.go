package repository

import (
	"context"
	"errors"

	"clinic-appointment-bot/internal/domain/entity"
	domainRepo "clinic-appointment-bot/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

var appointmentUpsertColumns = []string{
	"chat_user_id",
	"full_name",
	"scheduled_at",
	"created_by_chat_user_id",
	"updated_at",
}

// UpsertForPatient relies on the partial unique index on patient_id. The
// conflict target carries the index predicate so postgres picks the partial
// index; insert and overwrite are one statement.
func (r *appointmentRepository) UpsertForPatient(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:     []clause.Column{{Name: "patient_id"}},
		TargetWhere: clause.Where{Exprs: []clause.Expression{gorm.Expr("patient_id IS NOT NULL")}},
		DoUpdates:   clause.AssignmentColumns(appointmentUpsertColumns),
	}).Create(appointment).Error
}

func (r *appointmentRepository) UpsertForChatUser(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "chat_user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"full_name",
			"scheduled_at",
			"updated_at",
		}),
	}).Create(appointment).Error
}

func (r *appointmentRepository) FindForChatUser(ctx context.Context, db *gorm.DB, chatUserID int64) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.WithContext(ctx).
		Joins("JOIN identities ON identities.patient_id = appointments.patient_id").
		Where("identities.chat_user_id = ?", chatUserID).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByChatUserID(ctx context.Context, db *gorm.DB, chatUserID int64) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.WithContext(ctx).Where("chat_user_id = ?", chatUserID).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}
