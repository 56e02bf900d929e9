package repos

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eduforge/eduforge-backend/internal/platform/logger"
	"github.com/eduforge/eduforge-backend/internal/types"
)

type GeneratedContentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.GeneratedContent) ([]*types.GeneratedContent, error)
	GetByKey(ctx context.Context, tx *gorm.DB, userID uuid.UUID, topic, difficulty string) (*types.GeneratedContent, error)
	GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.GeneratedContent, error)
	FullDeleteByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) error
}

type generatedContentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGeneratedContentRepo(db *gorm.DB, baseLog *logger.Logger) GeneratedContentRepo {
	repoLog := baseLog.With("repo", "GeneratedContentRepo")
	return &generatedContentRepo{db: db, log: repoLog}
}

func (gcr *generatedContentRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.GeneratedContent) ([]*types.GeneratedContent, error) {
	transaction := tx
	if transaction == nil {
		transaction = gcr.db
	}

	if len(rows) == 0 {
		return []*types.GeneratedContent{}, nil
	}

	for _, row := range rows {
		row.Topic = strings.ToLower(strings.TrimSpace(row.Topic))
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

// GetByKey returns (nil, nil) when no row matches: a cache miss is not an
// error.
func (gcr *generatedContentRepo) GetByKey(ctx context.Context, tx *gorm.DB, userID uuid.UUID, topic, difficulty string) (*types.GeneratedContent, error) {
	transaction := tx
	if transaction == nil {
		transaction = gcr.db
	}

	var result types.GeneratedContent

	err := transaction.WithContext(ctx).
		Where("user_id = ? AND topic = ? AND difficulty_level = ?",
			userID, strings.ToLower(strings.TrimSpace(topic)), difficulty).
		First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &result, nil
}

func (gcr *generatedContentRepo) GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.GeneratedContent, error) {
	transaction := tx
	if transaction == nil {
		transaction = gcr.db
	}

	var results []*types.GeneratedContent

	if len(userIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (gcr *generatedContentRepo) FullDeleteByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = gcr.db
	}

	if len(userIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Unscoped().
		Where("user_id IN (?)", userIDs).
		Delete(&types.GeneratedContent{}).Error; err != nil {
		return err
	}

	return nil
}
