package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/modulehub/modulehub-backend/internal/logger"
	"github.com/modulehub/modulehub-backend/internal/types"
)

type LastSeenRepo interface {
	ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.LastSeen, error)
	Upsert(ctx context.Context, tx *gorm.DB, userID, moduleID uuid.UUID, seenAt time.Time) (*types.LastSeen, error)
}

type lastSeenRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLastSeenRepo(db *gorm.DB, baseLog *logger.Logger) LastSeenRepo {
	repoLog := baseLog.With("repo", "LastSeenRepo")
	return &lastSeenRepo{db: db, log: repoLog}
}

func (lr *lastSeenRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.LastSeen, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var results []*types.LastSeen
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Module", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "title", "image", "summary", "created_by_id", "created_at", "updated_at")
		}).
		Preload("Module.Topics.Topic").
		Order("last_seen_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// Upsert by the unique (user_id, module_id) pair: a repeat view refreshes
// last_seen_at on the existing row.
func (lr *lastSeenRepo) Upsert(ctx context.Context, tx *gorm.DB, userID, moduleID uuid.UUID, seenAt time.Time) (*types.LastSeen, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	row := types.LastSeen{UserID: userID, ModuleID: moduleID}
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND module_id = ?", userID, moduleID).
		Assign(map[string]interface{}{"last_seen_at": seenAt}).
		FirstOrCreate(&row).Error; err != nil {
		return nil, err
	}
	row.LastSeenAt = seenAt
	return &row, nil
}
