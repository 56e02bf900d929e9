package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/eduforge/eduforge-backend/internal/content"
	"github.com/eduforge/eduforge-backend/internal/llm"
	"github.com/eduforge/eduforge-backend/internal/platform/apierr"
	"github.com/eduforge/eduforge-backend/internal/platform/logger"
)

type ChatService interface {
	Ask(ctx context.Context, question, grounding string) (string, error)
}

type chatService struct {
	log      *logger.Logger
	provider llm.Provider
}

func NewChatService(log *logger.Logger, provider llm.Provider) ChatService {
	serviceLog := log.With("service", "ChatService")
	return &chatService{log: serviceLog, provider: provider}
}

// Ask answers a free-form question, optionally grounded on previously
// generated content. A reply that is not the expected JSON envelope is
// returned verbatim rather than rejected.
func (cs *chatService) Ask(ctx context.Context, question, grounding string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", apierr.BadRequest("missing_question", fmt.Errorf("question is required"))
	}

	reply, err := cs.provider.Generate(ctx, content.ChatPrompt(question, grounding), nil)
	if err != nil {
		return "", fmt.Errorf("chat generation failed: %w", err)
	}

	stripped := content.StripFences(reply)
	var envelope struct {
		Answer string `json:"answer"`
	}
	if uErr := json.Unmarshal([]byte(stripped), &envelope); uErr != nil || envelope.Answer == "" {
		cs.log.Debug("Chat reply was not the expected JSON envelope")
		return stripped, nil
	}
	return envelope.Answer, nil
}
