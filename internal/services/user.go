package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/modulehub/modulehub-backend/internal/apierr"
	"github.com/modulehub/modulehub-backend/internal/logger"
	"github.com/modulehub/modulehub-backend/internal/repos"
	"github.com/modulehub/modulehub-backend/internal/types"
)

type UserService interface {
	UpdateProfile(ctx context.Context, userID uuid.UUID, name, image string) (*types.User, error)
	ListLastSeen(ctx context.Context, userID uuid.UUID) ([]*types.LastSeen, error)
	TouchLastSeen(ctx context.Context, userID, moduleID uuid.UUID) (*types.LastSeen, error)
}

type userService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	lastSeenRepo repos.LastSeenRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, lastSeenRepo repos.LastSeenRepo) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{
		db:           db,
		log:          serviceLog,
		userRepo:     userRepo,
		lastSeenRepo: lastSeenRepo,
	}
}

func (us *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, name, image string) (*types.User, error) {
	updated, err := us.userRepo.UpdateProfile(ctx, nil, userID, name, image)
	if err != nil || updated == nil {
		return nil, apierr.Upstream("Failed to update profile", err)
	}
	return updated, nil
}

func (us *userService) ListLastSeen(ctx context.Context, userID uuid.UUID) ([]*types.LastSeen, error) {
	rows, err := us.lastSeenRepo.ListByUserID(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Upstream("Failed to fetch last seen modules", err)
	}
	return rows, nil
}

func (us *userService) TouchLastSeen(ctx context.Context, userID, moduleID uuid.UUID) (*types.LastSeen, error) {
	row, err := us.lastSeenRepo.Upsert(ctx, nil, userID, moduleID, time.Now())
	if err != nil {
		return nil, apierr.Upstream("Failed to update last seen", err)
	}
	return row, nil
}
