package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/modulehub/modulehub-backend/internal/logger"
	"github.com/modulehub/modulehub-backend/internal/types"
)

type BookmarkRepo interface {
	ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Bookmark, error)
	GetByUserAndModule(ctx context.Context, tx *gorm.DB, userID, moduleID uuid.UUID) (*types.Bookmark, error)
	Create(ctx context.Context, tx *gorm.DB, bookmark *types.Bookmark) (*types.Bookmark, error)
	DeleteByUserAndModule(ctx context.Context, tx *gorm.DB, userID, moduleID uuid.UUID) (int64, error)
}

type bookmarkRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBookmarkRepo(db *gorm.DB, baseLog *logger.Logger) BookmarkRepo {
	repoLog := baseLog.With("repo", "BookmarkRepo")
	return &bookmarkRepo{db: db, log: repoLog}
}

func (br *bookmarkRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Bookmark, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	var results []*types.Bookmark
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Module", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "title", "image", "summary", "created_by_id", "created_at", "updated_at")
		}).
		Preload("Module.CreatedBy", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "image")
		}).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (br *bookmarkRepo) GetByUserAndModule(ctx context.Context, tx *gorm.DB, userID, moduleID uuid.UUID) (*types.Bookmark, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	var result types.Bookmark
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND module_id = ?", userID, moduleID).
		Preload("Module", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "title", "image", "summary", "created_by_id", "created_at", "updated_at")
		}).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Create is intentionally not an upsert; the composite primary key rejects a
// second bookmark for the same (user, module) pair.
func (br *bookmarkRepo) Create(ctx context.Context, tx *gorm.DB, bookmark *types.Bookmark) (*types.Bookmark, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	if err := transaction.WithContext(ctx).Omit("Module").Create(bookmark).Error; err != nil {
		return nil, err
	}
	return bookmark, nil
}

func (br *bookmarkRepo) DeleteByUserAndModule(ctx context.Context, tx *gorm.DB, userID, moduleID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	res := transaction.WithContext(ctx).
		Where("user_id = ? AND module_id = ?", userID, moduleID).
		Delete(&types.Bookmark{})
	return res.RowsAffected, res.Error
}
