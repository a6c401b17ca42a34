package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/modulehub/modulehub-backend/internal/apierr"
	"github.com/modulehub/modulehub-backend/internal/logger"
	"github.com/modulehub/modulehub-backend/internal/repos"
	"github.com/modulehub/modulehub-backend/internal/types"
)

type TopicService interface {
	List(ctx context.Context) ([]*types.Topic, error)
	Get(ctx context.Context, topicID uuid.UUID) (*types.Topic, error)
	Create(ctx context.Context, name, description string) (*types.Topic, error)
	Update(ctx context.Context, topicID uuid.UUID, name, description string) (*types.Topic, error)
	Delete(ctx context.Context, topicID uuid.UUID) error
}

type topicService struct {
	db        *gorm.DB
	log       *logger.Logger
	topicRepo repos.TopicRepo
}

func NewTopicService(db *gorm.DB, log *logger.Logger, topicRepo repos.TopicRepo) TopicService {
	serviceLog := log.With("service", "TopicService")
	return &topicService{db: db, log: serviceLog, topicRepo: topicRepo}
}

func (ts *topicService) List(ctx context.Context) ([]*types.Topic, error) {
	topics, err := ts.topicRepo.List(ctx, nil)
	if err != nil {
		return nil, apierr.Upstream("Failed to fetch topics", err)
	}
	return topics, nil
}

func (ts *topicService) Get(ctx context.Context, topicID uuid.UUID) (*types.Topic, error) {
	topic, err := ts.topicRepo.GetByID(ctx, nil, topicID)
	if err != nil {
		return nil, apierr.Upstream("Failed to fetch topic", err)
	}
	if topic == nil {
		return nil, apierr.NotFound("Topic not found")
	}
	return topic, nil
}

func (ts *topicService) Create(ctx context.Context, name, description string) (*types.Topic, error) {
	topic := &types.Topic{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
	}
	if _, err := ts.topicRepo.Create(ctx, nil, topic); err != nil {
		return nil, apierr.Upstream("Failed to create topic", err)
	}
	return topic, nil
}

func (ts *topicService) Update(ctx context.Context, topicID uuid.UUID, name, description string) (*types.Topic, error) {
	err := ts.topicRepo.Update(ctx, nil, &types.Topic{
		ID:          topicID,
		Name:        name,
		Description: description,
	})
	if err != nil {
		return nil, apierr.Upstream("Failed to update topic", err)
	}
	updated, err := ts.topicRepo.GetByID(ctx, nil, topicID)
	if err != nil || updated == nil {
		return nil, apierr.Upstream("Failed to update topic", err)
	}
	return updated, nil
}

func (ts *topicService) Delete(ctx context.Context, topicID uuid.UUID) error {
	err := ts.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).Where("topic_id = ?", topicID).Delete(&types.ModuleOnTopic{}).Error; err != nil {
			return err
		}
		rows, err := ts.topicRepo.Delete(ctx, tx, topicID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return apierr.Upstream("Failed to delete topic", err)
	}
	return nil
}
