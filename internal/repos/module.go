package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/modulehub/modulehub-backend/internal/logger"
	"github.com/modulehub/modulehub-backend/internal/types"
)

type ModuleRepo interface {
	List(ctx context.Context, tx *gorm.DB) ([]*types.Module, error)
	GetByID(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID) (*types.Module, error)
	Create(ctx context.Context, tx *gorm.DB, module *types.Module) (*types.Module, error)
	Update(ctx context.Context, tx *gorm.DB, module *types.Module) error
	Delete(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID) (int64, error)
}

type moduleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewModuleRepo(db *gorm.DB, baseLog *logger.Logger) ModuleRepo {
	repoLog := baseLog.With("repo", "ModuleRepo")
	return &moduleRepo{db: db, log: repoLog}
}

// List omits content (it can be large) and embeds the creator's public fields.
func (mr *moduleRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Module, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var results []*types.Module
	if err := transaction.WithContext(ctx).
		Select("id", "title", "image", "summary", "created_by_id", "created_at", "updated_at").
		Preload("CreatedBy", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "image")
		}).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *moduleRepo) GetByID(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID) (*types.Module, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var result types.Module
	err := transaction.WithContext(ctx).
		Preload("Topics.Topic").
		Preload("CreatedBy", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		Where("id = ?", moduleID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (mr *moduleRepo) Create(ctx context.Context, tx *gorm.DB, module *types.Module) (*types.Module, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	if err := transaction.WithContext(ctx).Omit("Topics", "CreatedBy").Create(module).Error; err != nil {
		return nil, err
	}
	return module, nil
}

func (mr *moduleRepo) Update(ctx context.Context, tx *gorm.DB, module *types.Module) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Module{}).
		Where("id = ?", module.ID).
		Updates(map[string]interface{}{
			"title":   module.Title,
			"image":   module.Image,
			"summary": module.Summary,
			"content": module.Content,
		}).Error
}

func (mr *moduleRepo) Delete(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	res := transaction.WithContext(ctx).
		Where("id = ?", moduleID).
		Delete(&types.Module{})
	return res.RowsAffected, res.Error
}
