package content

// JSON Schema definitions for the shapes the model is asked to emit.
// Structural rules (required fields, primitive kinds, minimum key points)
// live here; semantic rules that need normalization (the difficulty enum is
// matched case-insensitively) are enforced in validate.go.

var contentSectionSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"title":   map[string]any{"type": "string"},
		"content": map[string]any{"type": "string"},
		"key_points": map[string]any{
			"type":     "array",
			"items":    map[string]any{"type": "string"},
			"minItems": 2,
		},
	},
	"required": []any{"title", "content", "key_points"},
}

var contentResponseSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"topic":   map[string]any{"type": "string"},
		"summary": map[string]any{"type": "string"},
		"sections": map[string]any{
			"type":     "array",
			"items":    contentSectionSchema,
			"minItems": 1,
		},
		"references": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		// Enum membership is checked after case normalization, not here.
		"difficulty_level": map[string]any{"type": "string"},
	},
	"required": []any{"topic", "summary", "sections", "difficulty_level"},
}

// answer_option is a plain string on purpose: an unrecognized option letter
// resolves to an empty answer text rather than a validation failure.
var questionItemSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"question":      map[string]any{"type": "string"},
		"option_a":      map[string]any{"type": "string"},
		"option_b":      map[string]any{"type": "string"},
		"option_c":      map[string]any{"type": "string"},
		"option_d":      map[string]any{"type": "string"},
		"answer_option": map[string]any{"type": "string"},
		"answer_string": map[string]any{"type": "string"},
	},
	"required": []any{"question", "option_a", "option_b", "option_c", "option_d", "answer_option"},
}

var questionListSchema = map[string]any{
	"type":  "array",
	"items": questionItemSchema,
}
