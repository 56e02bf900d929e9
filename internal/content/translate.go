package content

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/eduforge/eduforge-backend/internal/llm"
	"github.com/eduforge/eduforge-backend/internal/platform/logger"
)

// TranslationPipeline translates a content-shaped payload into Hindi or
// Kannada. It never returns an error: every failure tier is absorbed into
// the result object, because translation is presentation-layer and must not
// abort a request. The translated payload is not re-validated against the
// ContentResponse shape.
type TranslationPipeline struct {
	provider llm.Provider
	log      *logger.Logger
}

func NewTranslationPipeline(provider llm.Provider, log *logger.Logger) *TranslationPipeline {
	return &TranslationPipeline{provider: provider, log: log.With("pipeline", "translate")}
}

// Translate accepts the content as a map, a JSON-encoded string, or raw
// JSON bytes. An unrecognized language code falls back to Hindi.
func (p *TranslationPipeline) Translate(ctx context.Context, input any, language string) *TranslationResult {
	lang := NormalizeLanguage(language)

	source, ok := decodeInput(input)
	if !ok {
		return &TranslationResult{
			Topic:             "Error",
			Summary:           "Failed to parse content as JSON",
			TranslatedContent: map[string]any{"error": "Invalid JSON input"},
			Language:          lang,
		}
	}

	sourceJSON, err := json.MarshalIndent(source, "", "  ")
	if err != nil {
		return p.failed(source, lang, err.Error())
	}

	reply, err := p.provider.Generate(ctx, translatePrompt(sourceJSON, lang), nil)
	if err != nil {
		p.log.Warn("translation call failed", "language", lang, "error", err.Error())
		return p.failed(source, lang, err.Error())
	}

	var translated map[string]any
	if err := json.Unmarshal([]byte(StripFences(reply)), &translated); err != nil {
		p.log.Warn("translation reply was not valid JSON", "language", lang, "error", err.Error())
		return &TranslationResult{
			Topic:             stringField(source, "topic", "Translation Error"),
			Summary:           "Error parsing translation response as JSON",
			TranslatedContent: map[string]any{"error": "Invalid JSON in translation response", "original": source},
			Language:          lang,
		}
	}

	return &TranslationResult{
		Topic:             stringField(translated, "topic", stringField(source, "topic", "")),
		Summary:           stringField(translated, "summary", stringField(source, "summary", "")),
		TranslatedContent: translated,
		Language:          lang,
	}
}

func (p *TranslationPipeline) failed(source map[string]any, lang, errMsg string) *TranslationResult {
	return &TranslationResult{
		Topic:             stringField(source, "topic", "Translation Error"),
		Summary:           fmt.Sprintf("Error translating content to %s: %s", languageName(lang), errMsg),
		TranslatedContent: map[string]any{"error": errMsg, "original": source},
		Language:          lang,
	}
}

func decodeInput(input any) (map[string]any, bool) {
	switch v := input.(type) {
	case map[string]any:
		return v, true
	case string:
		var m map[string]any
		if err := json.Unmarshal([]byte(v), &m); err != nil {
			return nil, false
		}
		return m, true
	case json.RawMessage:
		var m map[string]any
		if err := json.Unmarshal(v, &m); err != nil {
			return nil, false
		}
		return m, true
	case []byte:
		var m map[string]any
		if err := json.Unmarshal(v, &m); err != nil {
			return nil, false
		}
		return m, true
	case nil:
		return nil, false
	default:
		return nil, false
	}
}

func stringField(m map[string]any, key, fallback string) string {
	if m == nil {
		return fallback
	}
	if s, ok := m[key].(string); ok && s != "" {
		return s
	}
	return fallback
}
