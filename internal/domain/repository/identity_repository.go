package repository

import (
	"context"

	"clinic-appointment-bot/internal/domain/entity"

	"gorm.io/gorm"
)

type IdentityRepository interface {
	FindByChatUserID(ctx context.Context, db *gorm.DB, chatUserID int64) (*entity.Identity, error)

	// UpsertPatientBinding atomically creates or replaces the identity row for
	// a chat user, pointing it at the given patient and clearing any generic
	// user binding. Re-running with the same inputs refreshes verified_at.
	UpsertPatientBinding(ctx context.Context, db *gorm.DB, identity *entity.Identity) error
}
