package content

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/eduforge/eduforge-backend/internal/llm"
	"github.com/eduforge/eduforge-backend/internal/platform/logger"
)

// Stage names the step of the content pipeline an error escaped from.
// The pipeline moves strictly forward: analyzing, extracting, normalizing,
// validating, optionally one pass through repairing, then done or failed.
type Stage string

const (
	StageAnalyzing   Stage = "analyzing"
	StageExtracting  Stage = "extracting"
	StageNormalizing Stage = "normalizing"
	StageValidating  Stage = "validating"
	StageRepairing   Stage = "repairing"
)

// generateOpts mirrors the tuning the original generation used.
var generateOpts = &llm.Options{Temperature: 0.7, TopP: 0.95, MaxTokens: 4096}

// ContentPipeline turns a topic into a validated ContentResponse. Each
// invocation is independent and holds no state beyond its locals; callers
// own caching and persistence.
type ContentPipeline struct {
	provider llm.Provider
	log      *logger.Logger
}

func NewContentPipeline(provider llm.Provider, log *logger.Logger) *ContentPipeline {
	return &ContentPipeline{provider: provider, log: log.With("pipeline", "content")}
}

// Generate runs analysis, extraction, normalization, validation and at most
// one repair attempt. A nil analysis triggers the analyze step; passing one
// in skips it. The returned error is always a *GenerationError.
func (p *ContentPipeline) Generate(ctx context.Context, topic, difficulty string, analysis *TopicAnalysis) (*ContentResponse, error) {
	if analysis == nil {
		analysis = p.AnalyzeTopic(ctx, topic, difficulty)
	}

	// Analysis is advisory: a valid recommendation steers difficulty,
	// anything else leaves the caller's choice alone.
	if ValidDifficulty(analysis.RecommendedDifficulty) {
		difficulty = strings.ToLower(analysis.RecommendedDifficulty)
	}

	reply, err := p.provider.Generate(ctx, generatePrompt(topic, difficulty, analysis.KeyConcepts), generateOpts)
	if err != nil {
		return nil, &GenerationError{Stage: StageExtracting, Err: err}
	}

	raw := json.RawMessage(StripFences(reply))

	resp, vErr := ValidateContent(raw)
	if vErr == nil {
		return resp, nil
	}

	var schemaErr *SchemaValidationError
	if !errors.As(vErr, &schemaErr) {
		// Malformed JSON: the fence stripper produced no parseable
		// payload. Repair only handles shape errors, not syntax.
		return nil, &GenerationError{Stage: StageNormalizing, Err: vErr}
	}

	p.log.Warn("generated payload failed validation, attempting repair",
		"topic", topic,
		"fields", strings.Join(schemaErr.Fields, ","),
	)
	return p.repair(ctx, raw, schemaErr)
}

// repair issues exactly one corrective call embedding the invalid payload
// and the validation error. Whatever comes back is final: a second shape
// failure, a parse failure, or a provider failure all terminate the
// pipeline.
func (p *ContentPipeline) repair(ctx context.Context, payload json.RawMessage, cause *SchemaValidationError) (*ContentResponse, error) {
	reply, err := p.provider.Generate(ctx, repairPrompt(payload, cause.Error()), nil)
	if err != nil {
		return nil, &GenerationError{Stage: StageRepairing, Err: err}
	}

	resp, vErr := ValidateContent(json.RawMessage(StripFences(reply)))
	if vErr != nil {
		return nil, &GenerationError{Stage: StageRepairing, Err: vErr}
	}
	return resp, nil
}

// AnalyzeTopic asks the model for a recommended structure. It never fails:
// any provider or parse problem degrades to the fixed default structure,
// logged as a distinct condition so tests and operators can tell a degraded
// analysis from a successful one.
func (p *ContentPipeline) AnalyzeTopic(ctx context.Context, topic, difficulty string) *TopicAnalysis {
	reply, err := p.provider.Generate(ctx, analyzePrompt(topic, difficulty), nil)
	if err != nil {
		p.log.Warn("topic analysis degraded, falling back to default structure",
			"topic", topic, "stage", string(StageAnalyzing), "error", err.Error())
		return DefaultAnalysis(topic, difficulty)
	}

	var analysis TopicAnalysis
	if err := json.Unmarshal([]byte(StripFences(reply)), &analysis); err != nil {
		p.log.Warn("topic analysis degraded, falling back to default structure",
			"topic", topic, "stage", string(StageAnalyzing), "error", err.Error())
		return DefaultAnalysis(topic, difficulty)
	}
	return &analysis
}
