package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	redisclient "github.com/eduforge/eduforge-backend/internal/clients/redis"
	"github.com/eduforge/eduforge-backend/internal/content"
	"github.com/eduforge/eduforge-backend/internal/platform/apierr"
	"github.com/eduforge/eduforge-backend/internal/platform/logger"
	"github.com/eduforge/eduforge-backend/internal/repos"
	"github.com/eduforge/eduforge-backend/internal/types"
)

// GeneratedResult pairs the lesson JSON with whether it was served from
// cache or freshly generated.
type GeneratedResult struct {
	Content json.RawMessage `json:"content"`
	Cached  bool            `json:"cached"`
}

type ContentService interface {
	GenerateContent(ctx context.Context, userID uuid.UUID, topic, difficulty string) (*GeneratedResult, error)
	ListUserContents(ctx context.Context, userID uuid.UUID) ([]*types.GeneratedContent, error)
	GenerateQuestions(ctx context.Context, text string, numQuestions int, difficulty string) ([]content.QuestionItem, error)
	TranslateContent(ctx context.Context, input any, language string) *content.TranslationResult
	DeleteUserContents(ctx context.Context, userID uuid.UUID) error
}

type contentService struct {
	db          *gorm.DB
	log         *logger.Logger
	contentRepo repos.GeneratedContentRepo
	cache       redisclient.ContentCache
	pipeline    *content.ContentPipeline
	questions   *content.QuestionPipeline
	translator  *content.TranslationPipeline
}

// NewContentService wires the generation pipelines to persistence. The
// cache may be nil; lookups then fall through to Postgres.
func NewContentService(
	db *gorm.DB,
	log *logger.Logger,
	contentRepo repos.GeneratedContentRepo,
	cache redisclient.ContentCache,
	pipeline *content.ContentPipeline,
	questions *content.QuestionPipeline,
	translator *content.TranslationPipeline,
) ContentService {
	serviceLog := log.With("service", "ContentService")
	return &contentService{
		db:          db,
		log:         serviceLog,
		contentRepo: contentRepo,
		cache:       cache,
		pipeline:    pipeline,
		questions:   questions,
		translator:  translator,
	}
}

func (cs *contentService) GenerateContent(ctx context.Context, userID uuid.UUID, topic, difficulty string) (*GeneratedResult, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, apierr.BadRequest("missing_topic", fmt.Errorf("topic is required"))
	}

	difficulty = strings.ToLower(strings.TrimSpace(difficulty))
	if difficulty == "" {
		difficulty = content.DifficultyIntermediate
	}
	if !content.ValidDifficulty(difficulty) {
		return nil, apierr.BadRequest("invalid_difficulty",
			fmt.Errorf("difficulty must be one of %s", strings.Join(content.Difficulties, ", ")))
	}

	cacheKey := redisclient.CacheKey(userID.String(), topic, difficulty)
	if cs.cache != nil {
		if raw, err := cs.cache.Get(ctx, cacheKey); err != nil {
			cs.log.Warn("Cache lookup failed", "error", err.Error())
		} else if raw != nil {
			return &GeneratedResult{Content: raw, Cached: true}, nil
		}
	}

	existing, err := cs.contentRepo.GetByKey(ctx, nil, userID, topic, difficulty)
	if err != nil {
		return nil, fmt.Errorf("failed to look up cached content: %w", err)
	}
	if existing != nil {
		raw := json.RawMessage(existing.Content)
		cs.fillCache(ctx, cacheKey, raw)
		return &GeneratedResult{Content: raw, Cached: true}, nil
	}

	generated, err := cs.pipeline.Generate(ctx, topic, difficulty, nil)
	if err != nil {
		return nil, err
	}

	raw, mErr := json.Marshal(generated)
	if mErr != nil {
		return nil, fmt.Errorf("failed to encode generated content: %w", mErr)
	}

	row := &types.GeneratedContent{
		ID:              uuid.New(),
		UserID:          userID,
		Topic:           topic,
		DifficultyLevel: difficulty, // keyed on the requested level, not the steered one
		Content:         raw,
	}
	if _, cErr := cs.contentRepo.Create(ctx, nil, []*types.GeneratedContent{row}); cErr != nil {
		// The lesson was generated; losing the cache row is not fatal.
		cs.log.Warn("Failed to persist generated content", "topic", topic, "error", cErr.Error())
	} else {
		cs.fillCache(ctx, cacheKey, raw)
	}

	return &GeneratedResult{Content: raw, Cached: false}, nil
}

func (cs *contentService) ListUserContents(ctx context.Context, userID uuid.UUID) ([]*types.GeneratedContent, error) {
	rows, err := cs.contentRepo.GetByUserIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list user contents: %w", err)
	}
	return rows, nil
}

func (cs *contentService) GenerateQuestions(ctx context.Context, text string, numQuestions int, difficulty string) ([]content.QuestionItem, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apierr.BadRequest("missing_text", fmt.Errorf("text is required"))
	}
	return cs.questions.Generate(ctx, text, numQuestions, difficulty)
}

func (cs *contentService) TranslateContent(ctx context.Context, input any, language string) *content.TranslationResult {
	return cs.translator.Translate(ctx, input, language)
}

// DeleteUserContents purges every generated lesson a user owns. Called on
// account deletion; redis entries are left to expire via TTL.
func (cs *contentService) DeleteUserContents(ctx context.Context, userID uuid.UUID) error {
	if err := cs.contentRepo.FullDeleteByUserIDs(ctx, nil, []uuid.UUID{userID}); err != nil {
		return fmt.Errorf("failed to delete user contents: %w", err)
	}
	return nil
}

func (cs *contentService) fillCache(ctx context.Context, key string, raw json.RawMessage) {
	if cs.cache == nil {
		return
	}
	if err := cs.cache.Set(ctx, key, raw); err != nil {
		cs.log.Warn("Cache write failed", "error", err.Error())
	}
}
