package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/modulehub/modulehub-backend/internal/logger"
	"github.com/modulehub/modulehub-backend/internal/types"
)

type SessionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, session *types.Session) (*types.Session, error)
	GetByToken(ctx context.Context, tx *gorm.DB, token string) (*types.Session, error)
	DeleteByToken(ctx context.Context, tx *gorm.DB, token string) error
}

type sessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSessionRepo(db *gorm.DB, baseLog *logger.Logger) SessionRepo {
	repoLog := baseLog.With("repo", "SessionRepo")
	return &sessionRepo{db: db, log: repoLog}
}

func (sr *sessionRepo) Create(ctx context.Context, tx *gorm.DB, session *types.Session) (*types.Session, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	if err := transaction.WithContext(ctx).Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

func (sr *sessionRepo) GetByToken(ctx context.Context, tx *gorm.DB, token string) (*types.Session, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var result types.Session
	err := transaction.WithContext(ctx).
		Where("token = ?", token).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (sr *sessionRepo) DeleteByToken(ctx context.Context, tx *gorm.DB, token string) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	return transaction.WithContext(ctx).
		Where("token = ?", token).
		Delete(&types.Session{}).Error
}
