package repository

import (
	"context"
	"errors"

	"clinic-appointment-bot/internal/domain/entity"
	domainRepo "clinic-appointment-bot/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type identityRepository struct{}

func NewIdentityRepository() domainRepo.IdentityRepository {
	return &identityRepository{}
}

func (r *identityRepository) FindByChatUserID(ctx context.Context, db *gorm.DB, chatUserID int64) (*entity.Identity, error) {
	var identity entity.Identity
	err := db.WithContext(ctx).Where("chat_user_id = ?", chatUserID).First(&identity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &identity, nil
}

// UpsertPatientBinding is a single INSERT ... ON CONFLICT (chat_user_id) DO
// UPDATE. GenericUserID on the inserted row is always nil, so a re-link from a
// generic-user binding clears it in the same statement.
func (r *identityRepository) UpsertPatientBinding(ctx context.Context, db *gorm.DB, identity *entity.Identity) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "chat_user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"patient_id",
			"generic_user_id",
			"display_handle",
			"verified_at",
		}),
	}).Create(identity).Error
}
