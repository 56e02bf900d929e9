package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	redisclient "github.com/eduforge/eduforge-backend/internal/clients/redis"
	"github.com/eduforge/eduforge-backend/internal/content"
	"github.com/eduforge/eduforge-backend/internal/llm"
	"github.com/eduforge/eduforge-backend/internal/platform/apierr"
	"github.com/eduforge/eduforge-backend/internal/platform/logger"
	"github.com/eduforge/eduforge-backend/internal/types"
)

const lessonJSON = `{
  "topic": "Photosynthesis",
  "summary": "How plants convert light into chemical energy.",
  "sections": [
    {
      "title": "Overview",
      "content": "Light reactions and the Calvin cycle.",
      "key_points": ["Chlorophyll absorbs light", "Glucose is produced"]
    }
  ],
  "references": [],
  "difficulty_level": "beginner"
}`

const analysisJSON = `{"recommended_difficulty":"beginner","sections":["Overview"],"key_concepts":["Chlorophyll"]}`

type fakeContentRepo struct {
	rows    map[string]*types.GeneratedContent
	created int
}

func newFakeContentRepo() *fakeContentRepo {
	return &fakeContentRepo{rows: map[string]*types.GeneratedContent{}}
}

func (f *fakeContentRepo) key(userID uuid.UUID, topic, difficulty string) string {
	return userID.String() + "|" + strings.ToLower(strings.TrimSpace(topic)) + "|" + difficulty
}

func (f *fakeContentRepo) Create(_ context.Context, _ *gorm.DB, rows []*types.GeneratedContent) ([]*types.GeneratedContent, error) {
	for _, row := range rows {
		f.created++
		f.rows[f.key(row.UserID, row.Topic, row.DifficultyLevel)] = row
	}
	return rows, nil
}

func (f *fakeContentRepo) GetByKey(_ context.Context, _ *gorm.DB, userID uuid.UUID, topic, difficulty string) (*types.GeneratedContent, error) {
	return f.rows[f.key(userID, topic, difficulty)], nil
}

func (f *fakeContentRepo) GetByUserIDs(_ context.Context, _ *gorm.DB, userIDs []uuid.UUID) ([]*types.GeneratedContent, error) {
	var out []*types.GeneratedContent
	for _, row := range f.rows {
		for _, id := range userIDs {
			if row.UserID == id {
				out = append(out, row)
			}
		}
	}
	return out, nil
}

func (f *fakeContentRepo) FullDeleteByUserIDs(_ context.Context, _ *gorm.DB, userIDs []uuid.UUID) error {
	for key, row := range f.rows {
		for _, id := range userIDs {
			if row.UserID == id {
				delete(f.rows, key)
			}
		}
	}
	return nil
}

type fakeCache struct {
	entries map[string][]byte
	gets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (f *fakeCache) Get(_ context.Context, key string) ([]byte, error) {
	f.gets++
	return f.entries[key], nil
}

func (f *fakeCache) Set(_ context.Context, key string, value []byte) error {
	f.entries[key] = value
	return nil
}

func (f *fakeCache) Close() error { return nil }

func newTestContentService(t *testing.T, repo *fakeContentRepo, cache *fakeCache, mock *llm.MockProvider) ContentService {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	pipeline := content.NewContentPipeline(mock, log)
	questions := content.NewQuestionPipeline(mock, log)
	translator := content.NewTranslationPipeline(mock, log)
	var c redisclient.ContentCache
	if cache != nil {
		c = cache
	}
	return NewContentService(nil, log, repo, c, pipeline, questions, translator)
}

func TestGenerateContentPersistsAndServesFromStore(t *testing.T) {
	repo := newFakeContentRepo()
	mock := llm.NewMockProvider(
		llm.MockReply{Text: analysisJSON},
		llm.MockReply{Text: lessonJSON},
	)
	svc := newTestContentService(t, repo, nil, mock)
	userID := uuid.New()

	first, err := svc.GenerateContent(context.Background(), userID, "Photosynthesis", "beginner")
	if err != nil {
		t.Fatalf("first generate: %v", err)
	}
	if first.Cached {
		t.Fatalf("first generation must not be marked cached")
	}
	if repo.created != 1 {
		t.Fatalf("rows created: want=1 got=%d", repo.created)
	}

	// Second call for the same key must not touch the provider.
	calls := mock.CallCount()
	second, err := svc.GenerateContent(context.Background(), userID, "  photosynthesis ", "beginner")
	if err != nil {
		t.Fatalf("second generate: %v", err)
	}
	if !second.Cached {
		t.Fatalf("second generation should come from the store")
	}
	if mock.CallCount() != calls {
		t.Fatalf("provider calls after cache hit: want=%d got=%d", calls, mock.CallCount())
	}

	var decoded content.ContentResponse
	if err := json.Unmarshal(second.Content, &decoded); err != nil {
		t.Fatalf("stored content is not valid JSON: %v", err)
	}
	if decoded.Topic != "Photosynthesis" {
		t.Fatalf("topic: want=%q got=%q", "Photosynthesis", decoded.Topic)
	}
}

func TestGenerateContentUsesRedisBeforeStore(t *testing.T) {
	repo := newFakeContentRepo()
	cache := newFakeCache()
	mock := llm.NewMockProvider(
		llm.MockReply{Text: analysisJSON},
		llm.MockReply{Text: lessonJSON},
	)
	svc := newTestContentService(t, repo, cache, mock)
	userID := uuid.New()

	if _, err := svc.GenerateContent(context.Background(), userID, "Photosynthesis", "beginner"); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(cache.entries) != 1 {
		t.Fatalf("cache entries after generation: want=1 got=%d", len(cache.entries))
	}

	// Wipe the repo: a redis hit must satisfy the request on its own.
	repo.rows = map[string]*types.GeneratedContent{}
	res, err := svc.GenerateContent(context.Background(), userID, "Photosynthesis", "beginner")
	if err != nil {
		t.Fatalf("cached generate: %v", err)
	}
	if !res.Cached {
		t.Fatalf("expected a cache hit")
	}
}

func TestGenerateContentDefaultsDifficultyToIntermediate(t *testing.T) {
	repo := newFakeContentRepo()
	mock := llm.NewMockProvider(
		llm.MockReply{Text: analysisJSON},
		llm.MockReply{Text: lessonJSON},
	)
	svc := newTestContentService(t, repo, nil, mock)
	userID := uuid.New()

	if _, err := svc.GenerateContent(context.Background(), userID, "Photosynthesis", ""); err != nil {
		t.Fatalf("generate: %v", err)
	}

	row, err := repo.GetByKey(context.Background(), nil, userID, "Photosynthesis", "intermediate")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if row == nil {
		t.Fatalf("omitted difficulty should store the row under intermediate")
	}
	if row.DifficultyLevel != "intermediate" {
		t.Fatalf("difficulty: want=%q got=%q", "intermediate", row.DifficultyLevel)
	}
}

func TestDeleteUserContentsPurgesRows(t *testing.T) {
	repo := newFakeContentRepo()
	mock := llm.NewMockProvider(
		llm.MockReply{Text: analysisJSON},
		llm.MockReply{Text: lessonJSON},
	)
	svc := newTestContentService(t, repo, nil, mock)
	userID := uuid.New()

	if _, err := svc.GenerateContent(context.Background(), userID, "Photosynthesis", "beginner"); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(repo.rows) != 1 {
		t.Fatalf("rows before purge: want=1 got=%d", len(repo.rows))
	}

	if err := svc.DeleteUserContents(context.Background(), userID); err != nil {
		t.Fatalf("delete user contents: %v", err)
	}
	if len(repo.rows) != 0 {
		t.Fatalf("rows after purge: want=0 got=%d", len(repo.rows))
	}
}

func TestGenerateContentRejectsBadInput(t *testing.T) {
	repo := newFakeContentRepo()
	mock := llm.NewMockProvider()
	svc := newTestContentService(t, repo, nil, mock)

	_, err := svc.GenerateContent(context.Background(), uuid.New(), "   ", "beginner")
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) || apiErr.Status != 400 {
		t.Fatalf("blank topic: want 400 apierr, got %v", err)
	}

	_, err = svc.GenerateContent(context.Background(), uuid.New(), "Photosynthesis", "expert")
	if !errors.As(err, &apiErr) || apiErr.Status != 400 {
		t.Fatalf("bad difficulty: want 400 apierr, got %v", err)
	}
	if mock.CallCount() != 0 {
		t.Fatalf("invalid input must not reach the provider, got %d calls", mock.CallCount())
	}
}
