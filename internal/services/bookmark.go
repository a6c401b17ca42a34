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

type BookmarkService interface {
	List(ctx context.Context, userID uuid.UUID) ([]*types.Bookmark, error)
	Create(ctx context.Context, userID, moduleID uuid.UUID) (*types.Bookmark, error)
	Delete(ctx context.Context, userID, moduleID uuid.UUID) error
}

type bookmarkService struct {
	db           *gorm.DB
	log          *logger.Logger
	bookmarkRepo repos.BookmarkRepo
}

func NewBookmarkService(db *gorm.DB, log *logger.Logger, bookmarkRepo repos.BookmarkRepo) BookmarkService {
	serviceLog := log.With("service", "BookmarkService")
	return &bookmarkService{db: db, log: serviceLog, bookmarkRepo: bookmarkRepo}
}

func (bs *bookmarkService) List(ctx context.Context, userID uuid.UUID) ([]*types.Bookmark, error) {
	bookmarks, err := bs.bookmarkRepo.ListByUserID(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Upstream("Failed to fetch bookmarks", err)
	}
	return bookmarks, nil
}

// Create surfaces a duplicate (user, module) pair as a store failure; the
// uniqueness boundary is the composite primary key, not application logic.
func (bs *bookmarkService) Create(ctx context.Context, userID, moduleID uuid.UUID) (*types.Bookmark, error) {
	bookmark := &types.Bookmark{UserID: userID, ModuleID: moduleID}
	if _, err := bs.bookmarkRepo.Create(ctx, nil, bookmark); err != nil {
		return nil, apierr.Upstream("Failed to create bookmark", err)
	}
	created, err := bs.bookmarkRepo.GetByUserAndModule(ctx, nil, userID, moduleID)
	if err != nil || created == nil {
		return nil, apierr.Upstream("Failed to create bookmark", err)
	}
	return created, nil
}

func (bs *bookmarkService) Delete(ctx context.Context, userID, moduleID uuid.UUID) error {
	rows, err := bs.bookmarkRepo.DeleteByUserAndModule(ctx, nil, userID, moduleID)
	if err != nil {
		return apierr.Upstream("Failed to delete bookmark", err)
	}
	if rows == 0 {
		return apierr.Upstream("Failed to delete bookmark", gorm.ErrRecordNotFound)
	}
	return nil
}
