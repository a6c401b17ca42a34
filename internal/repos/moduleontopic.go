package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/modulehub/modulehub-backend/internal/logger"
	"github.com/modulehub/modulehub-backend/internal/types"
)

type ModuleOnTopicRepo interface {
	CreateBatch(ctx context.Context, tx *gorm.DB, rows []*types.ModuleOnTopic) error
	DeleteByModuleID(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID) error
	ReplaceForModule(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID, topicIDs []uuid.UUID) error
}

type moduleOnTopicRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewModuleOnTopicRepo(db *gorm.DB, baseLog *logger.Logger) ModuleOnTopicRepo {
	repoLog := baseLog.With("repo", "ModuleOnTopicRepo")
	return &moduleOnTopicRepo{db: db, log: repoLog}
}

func (mtr *moduleOnTopicRepo) CreateBatch(ctx context.Context, tx *gorm.DB, rows []*types.ModuleOnTopic) error {
	transaction := tx
	if transaction == nil {
		transaction = mtr.db
	}

	if len(rows) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).Omit("Module", "Topic").Create(&rows).Error
}

func (mtr *moduleOnTopicRepo) DeleteByModuleID(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = mtr.db
	}

	return transaction.WithContext(ctx).
		Where("module_id = ?", moduleID).
		Delete(&types.ModuleOnTopic{}).Error
}

// ReplaceForModule swaps the module's topic set wholesale: delete all, then
// bulk insert. Not a diff.
func (mtr *moduleOnTopicRepo) ReplaceForModule(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID, topicIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = mtr.db
	}

	if err := mtr.DeleteByModuleID(ctx, transaction, moduleID); err != nil {
		return err
	}
	rows := make([]*types.ModuleOnTopic, 0, len(topicIDs))
	for _, topicID := range topicIDs {
		rows = append(rows, &types.ModuleOnTopic{ModuleID: moduleID, TopicID: topicID})
	}
	return mtr.CreateBatch(ctx, transaction, rows)
}
