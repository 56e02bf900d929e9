package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/eduforge/eduforge-backend/internal/content"
	"github.com/eduforge/eduforge-backend/internal/services"
	"github.com/eduforge/eduforge-backend/internal/types"
)

type fakeContentService struct {
	questionText       string
	questionCount      int
	questionDifficulty string
	deletedUsers       []uuid.UUID
}

func (f *fakeContentService) GenerateContent(_ context.Context, _ uuid.UUID, _, _ string) (*services.GeneratedResult, error) {
	return &services.GeneratedResult{}, nil
}

func (f *fakeContentService) ListUserContents(_ context.Context, _ uuid.UUID) ([]*types.GeneratedContent, error) {
	return nil, nil
}

func (f *fakeContentService) GenerateQuestions(_ context.Context, text string, numQuestions int, difficulty string) ([]content.QuestionItem, error) {
	f.questionText = text
	f.questionCount = numQuestions
	f.questionDifficulty = difficulty
	return []content.QuestionItem{}, nil
}

func (f *fakeContentService) TranslateContent(_ context.Context, _ any, _ string) *content.TranslationResult {
	return &content.TranslationResult{}
}

func (f *fakeContentService) DeleteUserContents(_ context.Context, userID uuid.UUID) error {
	f.deletedUsers = append(f.deletedUsers, userID)
	return nil
}

func newQuestionsRouter(svc services.ContentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewContentHandler(svc)
	r.POST("/api/generate-questions", handler.GenerateQuestions)
	return r
}

func TestGenerateQuestionsReadsContentField(t *testing.T) {
	svc := &fakeContentService{}
	router := newQuestionsRouter(svc)

	body := `{"content":"Photosynthesis basics","num_questions":2}`
	req := httptest.NewRequest(http.MethodPost, "/api/generate-questions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: want=%d got=%d body=%s", http.StatusOK, rec.Code, rec.Body.String())
	}
	if svc.questionText != "Photosynthesis basics" {
		t.Fatalf("text passed to service: want=%q got=%q", "Photosynthesis basics", svc.questionText)
	}
	if svc.questionCount != 2 {
		t.Fatalf("num_questions passed to service: want=2 got=%d", svc.questionCount)
	}
}

func TestGenerateQuestionsAcceptsTextAlias(t *testing.T) {
	svc := &fakeContentService{}
	router := newQuestionsRouter(svc)

	body := `{"text":"The Calvin cycle","num_questions":1}`
	req := httptest.NewRequest(http.MethodPost, "/api/generate-questions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: want=%d got=%d body=%s", http.StatusOK, rec.Code, rec.Body.String())
	}
	if svc.questionText != "The Calvin cycle" {
		t.Fatalf("text passed to service: want=%q got=%q", "The Calvin cycle", svc.questionText)
	}
}
