package content

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/eduforge/eduforge-backend/internal/llm"
)

func TestTranslateInvalidInputSkipsProvider(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockReply{Text: `{}`})
	pipeline := NewTranslationPipeline(mock, testLogger(t))

	res := pipeline.Translate(context.Background(), "{not json", "hindi")

	if mock.CallCount() != 0 {
		t.Fatalf("provider calls: want=0 got=%d (unparseable input must not reach the model)", mock.CallCount())
	}
	if res.Topic != "Error" {
		t.Fatalf("topic: want=%q got=%q", "Error", res.Topic)
	}
	if res.TranslatedContent["error"] != "Invalid JSON input" {
		t.Fatalf("error payload: want=%q got=%v", "Invalid JSON input", res.TranslatedContent["error"])
	}
	if res.Language != "hindi" {
		t.Fatalf("language: want=%q got=%q", "hindi", res.Language)
	}
}

func TestTranslateUnsupportedLanguageDefaultsToHindi(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockReply{Text: `{"topic":"जल चक्र","summary":"सारांश"}`})
	pipeline := NewTranslationPipeline(mock, testLogger(t))

	res := pipeline.Translate(context.Background(), map[string]any{"topic": "Water cycle", "summary": "s"}, "french")

	if res.Language != "hindi" {
		t.Fatalf("language: want=%q got=%q", "hindi", res.Language)
	}
	if !strings.Contains(mock.Prompts[0], "Hindi") {
		t.Fatalf("prompt should name Hindi as the target language")
	}
}

func TestTranslateKannadaIsRespected(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockReply{Text: `{"topic":"t","summary":"s"}`})
	pipeline := NewTranslationPipeline(mock, testLogger(t))

	res := pipeline.Translate(context.Background(), map[string]any{"topic": "t", "summary": "s"}, "Kannada")

	if res.Language != "kannada" {
		t.Fatalf("language: want=%q got=%q", "kannada", res.Language)
	}
	if !strings.Contains(mock.Prompts[0], "Kannada") {
		t.Fatalf("prompt should name Kannada as the target language")
	}
}

func TestTranslateProviderFailureDegrades(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockReply{Err: &llm.ProviderError{Provider: "mock", Err: errors.New("quota exceeded")}})
	pipeline := NewTranslationPipeline(mock, testLogger(t))

	res := pipeline.Translate(context.Background(), map[string]any{"topic": "Gravity", "summary": "s"}, "hindi")

	if res.Topic != "Gravity" {
		t.Fatalf("topic should survive a provider failure: got=%q", res.Topic)
	}
	if !strings.Contains(res.Summary, "Error translating content to Hindi") {
		t.Fatalf("summary should carry the failure: got=%q", res.Summary)
	}
	if _, ok := res.TranslatedContent["original"]; !ok {
		t.Fatalf("degraded result should keep the original content")
	}
}

func TestTranslateUnparseableReplyDegrades(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockReply{Text: "sorry, I translated it in prose instead"})
	pipeline := NewTranslationPipeline(mock, testLogger(t))

	res := pipeline.Translate(context.Background(), map[string]any{"topic": "Gravity", "summary": "s"}, "hindi")

	if res.Summary != "Error parsing translation response as JSON" {
		t.Fatalf("summary: got=%q", res.Summary)
	}
	if res.TranslatedContent["error"] != "Invalid JSON in translation response" {
		t.Fatalf("error payload: got=%v", res.TranslatedContent["error"])
	}
	if _, ok := res.TranslatedContent["original"]; !ok {
		t.Fatalf("degraded result should keep the original content")
	}
}

func TestTranslateSuccessUsesTranslatedFields(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockReply{Text: "```json\n{\"topic\":\"गुरुत्वाकर्षण\",\"summary\":\"सारांश\"}\n```"})
	pipeline := NewTranslationPipeline(mock, testLogger(t))

	res := pipeline.Translate(context.Background(), map[string]any{"topic": "Gravity", "summary": "s"}, "hindi")

	if res.Topic != "गुरुत्वाकर्षण" {
		t.Fatalf("topic: got=%q", res.Topic)
	}
	if res.Summary != "सारांश" {
		t.Fatalf("summary: got=%q", res.Summary)
	}
	if res.TranslatedContent["topic"] != "गुरुत्वाकर्षण" {
		t.Fatalf("translated content should be the parsed reply: got=%v", res.TranslatedContent)
	}
}
