package content

import "strings"

// Difficulty levels accepted for generated content. Stored lower-case;
// matching is case-insensitive everywhere input enters the system.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Difficulties lists the accepted difficulty levels in display order.
var Difficulties = []string{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}

// ValidDifficulty reports whether s is an accepted difficulty level,
// ignoring case.
func ValidDifficulty(s string) bool {
	switch strings.ToLower(s) {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	default:
		return false
	}
}

// Translation target languages. Anything unrecognized falls back to Hindi.
const (
	LanguageHindi   = "hindi"
	LanguageKannada = "kannada"
)

// NormalizeLanguage lower-cases the language code and falls back to Hindi
// for anything that is not a supported target.
func NormalizeLanguage(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case LanguageKannada:
		return LanguageKannada
	default:
		return LanguageHindi
	}
}

// languageName maps a normalized language code to the name used in prompts.
func languageName(code string) string {
	if code == LanguageKannada {
		return "Kannada"
	}
	return "Hindi"
}

// ContentSection is one section of a generated lesson. A section carries at
// least two key points; fewer is a validation failure.
type ContentSection struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	KeyPoints []string `json:"key_points"`
}

// ContentResponse is the validated shape of a generated lesson.
type ContentResponse struct {
	Topic           string           `json:"topic"`
	Summary         string           `json:"summary"`
	Sections        []ContentSection `json:"sections"`
	References      []string         `json:"references"`
	DifficultyLevel string           `json:"difficulty_level"`
}

// TopicAnalysis is the lightweight steering shape produced by the analyze
// step. It is advisory: when analysis fails the pipeline substitutes
// DefaultAnalysis instead of failing the request.
type TopicAnalysis struct {
	RecommendedDifficulty string   `json:"recommended_difficulty"`
	Sections              []string `json:"sections"`
	KeyConcepts           []string `json:"key_concepts"`
}

// DefaultAnalysis is the fixed fallback structure used when topic analysis
// fails: four generic sections, difficulty unchanged.
func DefaultAnalysis(topic, difficulty string) *TopicAnalysis {
	return &TopicAnalysis{
		RecommendedDifficulty: difficulty,
		Sections:              []string{"Introduction", "Core Concepts", "Applications", "Conclusion"},
		KeyConcepts:           []string{"Important aspects of " + topic},
	}
}

// QuestionItem is one generated multiple-choice question. AnswerString is
// always recomputed from AnswerOption; the model's own value is discarded.
type QuestionItem struct {
	Question     string `json:"question"`
	OptionA      string `json:"option_a"`
	OptionB      string `json:"option_b"`
	OptionC      string `json:"option_c"`
	OptionD      string `json:"option_d"`
	AnswerOption string `json:"answer_option"`
	AnswerString string `json:"answer_string"`
}

// ResolveAnswer returns the literal text of the chosen option, or "" when
// the answer option is not one of a-d.
func (q QuestionItem) ResolveAnswer() string {
	switch strings.ToLower(q.AnswerOption) {
	case "a":
		return q.OptionA
	case "b":
		return q.OptionB
	case "c":
		return q.OptionC
	case "d":
		return q.OptionD
	default:
		return ""
	}
}

// TranslationResult is the always-returned outcome of a translation. The
// translated payload is deliberately not re-validated against the
// ContentResponse shape: translation is best-effort and presentation-layer.
type TranslationResult struct {
	Topic             string         `json:"topic"`
	Summary           string         `json:"summary"`
	TranslatedContent map[string]any `json:"translated_content"`
	Language          string         `json:"language"`
}
