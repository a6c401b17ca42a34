package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/modulehub/modulehub-backend/internal/logger"
	"github.com/modulehub/modulehub-backend/internal/types"
)

type TopicRepo interface {
	List(ctx context.Context, tx *gorm.DB) ([]*types.Topic, error)
	GetByID(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) (*types.Topic, error)
	Create(ctx context.Context, tx *gorm.DB, topic *types.Topic) (*types.Topic, error)
	Update(ctx context.Context, tx *gorm.DB, topic *types.Topic) error
	Delete(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) (int64, error)
}

type topicRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTopicRepo(db *gorm.DB, baseLog *logger.Logger) TopicRepo {
	repoLog := baseLog.With("repo", "TopicRepo")
	return &topicRepo{db: db, log: repoLog}
}

func (tr *topicRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Topic, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var results []*types.Topic
	if err := transaction.WithContext(ctx).
		Select("id", "name").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *topicRepo) GetByID(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) (*types.Topic, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var result types.Topic
	err := transaction.WithContext(ctx).
		Preload("Modules.Module").
		Where("id = ?", topicID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (tr *topicRepo) Create(ctx context.Context, tx *gorm.DB, topic *types.Topic) (*types.Topic, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	if err := transaction.WithContext(ctx).Omit("Modules").Create(topic).Error; err != nil {
		return nil, err
	}
	return topic, nil
}

func (tr *topicRepo) Update(ctx context.Context, tx *gorm.DB, topic *types.Topic) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Topic{}).
		Where("id = ?", topic.ID).
		Updates(map[string]interface{}{
			"name":        topic.Name,
			"description": topic.Description,
		}).Error
}

func (tr *topicRepo) Delete(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	res := transaction.WithContext(ctx).
		Where("id = ?", topicID).
		Delete(&types.Topic{})
	return res.RowsAffected, res.Error
}
