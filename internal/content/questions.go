package content

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/eduforge/eduforge-backend/internal/llm"
	"github.com/eduforge/eduforge-backend/internal/platform/logger"
)

// QuestionPipeline turns source text into multiple-choice questions in a
// single pass: no analyze step and no repair loop. The requested count is
// advisory; the model may return fewer or more and the pipeline neither
// pads nor truncates.
type QuestionPipeline struct {
	provider llm.Provider
	log      *logger.Logger
}

func NewQuestionPipeline(provider llm.Provider, log *logger.Logger) *QuestionPipeline {
	return &QuestionPipeline{provider: provider, log: log.With("pipeline", "questions")}
}

// defaultQuestionDifficulty is applied when the caller does not specify
// one. Question difficulty is free-form, unlike the content levels.
const defaultQuestionDifficulty = "easy"

func (p *QuestionPipeline) Generate(ctx context.Context, text string, numQuestions int, difficulty string) ([]QuestionItem, error) {
	if numQuestions <= 0 {
		numQuestions = 5
	}
	if strings.TrimSpace(difficulty) == "" {
		difficulty = defaultQuestionDifficulty
	}

	reply, err := p.provider.Generate(ctx, questionsPrompt(text, numQuestions, difficulty), generateOpts)
	if err != nil {
		return nil, &GenerationError{Stage: StageExtracting, Err: err}
	}

	items, vErr := ValidateQuestions(json.RawMessage(StripFences(reply)))
	if vErr != nil {
		return nil, &GenerationError{Stage: StageValidating, Err: vErr}
	}

	if len(items) != numQuestions {
		p.log.Debug("model returned a different question count than requested",
			"requested", numQuestions, "returned", len(items))
	}

	return items, nil
}
