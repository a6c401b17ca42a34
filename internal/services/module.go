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

// ModuleInput carries the validated body of a module create/update. TopicIDs
// nil means the request did not mention topics at all; an empty non-nil slice
// clears every association.
type ModuleInput struct {
	Title    string
	Image    string
	Summary  string
	Content  string
	TopicIDs []uuid.UUID
}

type ModuleService interface {
	List(ctx context.Context) ([]*types.Module, error)
	Get(ctx context.Context, moduleID uuid.UUID) (*types.Module, error)
	Create(ctx context.Context, createdByID uuid.UUID, in ModuleInput) (*types.Module, error)
	Update(ctx context.Context, moduleID uuid.UUID, in ModuleInput) (*types.Module, error)
	Delete(ctx context.Context, moduleID uuid.UUID) error
}

type moduleService struct {
	db                *gorm.DB
	log               *logger.Logger
	moduleRepo        repos.ModuleRepo
	moduleOnTopicRepo repos.ModuleOnTopicRepo
}

func NewModuleService(db *gorm.DB, log *logger.Logger, moduleRepo repos.ModuleRepo, moduleOnTopicRepo repos.ModuleOnTopicRepo) ModuleService {
	serviceLog := log.With("service", "ModuleService")
	return &moduleService{
		db:                db,
		log:               serviceLog,
		moduleRepo:        moduleRepo,
		moduleOnTopicRepo: moduleOnTopicRepo,
	}
}

func (ms *moduleService) List(ctx context.Context) ([]*types.Module, error) {
	modules, err := ms.moduleRepo.List(ctx, nil)
	if err != nil {
		return nil, apierr.Upstream("Failed to fetch modules", err)
	}
	return modules, nil
}

func (ms *moduleService) Get(ctx context.Context, moduleID uuid.UUID) (*types.Module, error) {
	module, err := ms.moduleRepo.GetByID(ctx, nil, moduleID)
	if err != nil {
		return nil, apierr.Upstream("Failed to fetch module", err)
	}
	if module == nil {
		return nil, apierr.NotFound("Module not found")
	}
	return module, nil
}

func (ms *moduleService) Create(ctx context.Context, createdByID uuid.UUID, in ModuleInput) (*types.Module, error) {
	module := &types.Module{
		ID:          uuid.New(),
		Title:       in.Title,
		Image:       in.Image,
		Summary:     in.Summary,
		Content:     in.Content,
		CreatedByID: createdByID,
	}
	err := ms.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ms.moduleRepo.Create(ctx, tx, module); err != nil {
			return err
		}
		if in.TopicIDs != nil {
			return ms.moduleOnTopicRepo.ReplaceForModule(ctx, tx, module.ID, in.TopicIDs)
		}
		return nil
	})
	if err != nil {
		return nil, apierr.Upstream("Failed to create module", err)
	}
	created, err := ms.moduleRepo.GetByID(ctx, nil, module.ID)
	if err != nil || created == nil {
		return nil, apierr.Upstream("Failed to create module", err)
	}
	return created, nil
}

// Update replaces the topic association set wholesale rather than diffing it.
func (ms *moduleService) Update(ctx context.Context, moduleID uuid.UUID, in ModuleInput) (*types.Module, error) {
	err := ms.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ms.moduleOnTopicRepo.DeleteByModuleID(ctx, tx, moduleID); err != nil {
			return err
		}
		if len(in.TopicIDs) > 0 {
			rows := make([]*types.ModuleOnTopic, 0, len(in.TopicIDs))
			for _, topicID := range in.TopicIDs {
				rows = append(rows, &types.ModuleOnTopic{ModuleID: moduleID, TopicID: topicID})
			}
			if err := ms.moduleOnTopicRepo.CreateBatch(ctx, tx, rows); err != nil {
				return err
			}
		}
		return ms.moduleRepo.Update(ctx, tx, &types.Module{
			ID:      moduleID,
			Title:   in.Title,
			Image:   in.Image,
			Summary: in.Summary,
			Content: in.Content,
		})
	})
	if err != nil {
		return nil, apierr.Upstream("Failed to update module", err)
	}
	updated, err := ms.moduleRepo.GetByID(ctx, nil, moduleID)
	if err != nil || updated == nil {
		return nil, apierr.Upstream("Failed to update module", err)
	}
	return updated, nil
}

func (ms *moduleService) Delete(ctx context.Context, moduleID uuid.UUID) error {
	err := ms.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ms.moduleOnTopicRepo.DeleteByModuleID(ctx, tx, moduleID); err != nil {
			return err
		}
		rows, err := ms.moduleRepo.Delete(ctx, tx, moduleID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return apierr.Upstream("Failed to delete module", err)
	}
	return nil
}
