package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// ValidateContent parses raw as JSON and checks it against the
// ContentResponse shape. On success the difficulty level is normalized to
// lower case in the returned value. Failure modes are distinguishable:
// *ParseError for malformed JSON, *SchemaValidationError for a payload
// that parsed but violates the shape.
func ValidateContent(raw json.RawMessage) (*ContentResponse, error) {
	parsed, err := parseJSON(raw)
	if err != nil {
		return nil, err
	}

	if vErr := validateAgainst("content-response", contentResponseSchema, parsed); vErr != nil {
		return nil, vErr
	}

	var resp ContentResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, &ParseError{Raw: string(raw), Err: err}
	}

	level := strings.ToLower(resp.DifficultyLevel)
	if !ValidDifficulty(level) {
		return nil, &SchemaValidationError{
			Fields: []string{"/difficulty_level"},
			Reason: fmt.Sprintf("difficulty_level must be one of %s", strings.Join(Difficulties, ", ")),
		}
	}
	resp.DifficultyLevel = level

	if resp.References == nil {
		resp.References = []string{}
	}

	return &resp, nil
}

// ValidateQuestions parses raw as a list of question objects. The model is
// prompted for a bare array but a reply wrapped as {"questions": [...]} is
// accepted too. answer_string is recomputed for every item from its
// answer_option, regardless of what the model sent.
func ValidateQuestions(raw json.RawMessage) ([]QuestionItem, error) {
	parsed, err := parseJSON(raw)
	if err != nil {
		return nil, err
	}

	// Unwrap a {"questions": [...]} envelope.
	if obj, ok := parsed.(map[string]any); ok {
		inner, ok := obj["questions"]
		if !ok {
			return nil, &SchemaValidationError{Reason: "expected a list of questions"}
		}
		parsed = inner
		rewrapped, mErr := json.Marshal(inner)
		if mErr != nil {
			return nil, &SchemaValidationError{Reason: "expected a list of questions"}
		}
		raw = rewrapped
	}

	if vErr := validateAgainst("question-list", questionListSchema, parsed); vErr != nil {
		return nil, vErr
	}

	var items []QuestionItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &ParseError{Raw: string(raw), Err: err}
	}

	for i := range items {
		items[i].AnswerString = items[i].ResolveAnswer()
	}

	return items, nil
}

func parseJSON(raw json.RawMessage) (any, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &ParseError{Raw: string(raw), Err: err}
	}
	return parsed, nil
}

// validateAgainst runs a compiled schema over a parsed JSON value and maps
// the library's error tree onto a *SchemaValidationError carrying the
// offending field paths.
func validateAgainst(name string, definition map[string]any, parsed any) error {
	compiled, err := compileSchema(name, definition)
	if err != nil {
		return &SchemaValidationError{Reason: fmt.Sprintf("compile schema %q: %v", name, err)}
	}

	vErr := compiled.Validate(parsed)
	if vErr == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if errors.As(vErr, &ve) {
		return &SchemaValidationError{
			Fields: leafFields(ve),
			Reason: ve.Error(),
		}
	}
	return &SchemaValidationError{Reason: vErr.Error()}
}

func compileSchema(name string, definition map[string]any) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants a plain parsed JSON value, so round-trip the
	// definition through encoding/json.
	defBytes, err := json.Marshal(definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(name, compiled)
	return compiled, nil
}

// leafFields collects the instance paths of the deepest failing nodes in a
// validation error tree, e.g. "/sections/0/key_points".
func leafFields(ve *jsonschema.ValidationError) []string {
	if len(ve.Causes) == 0 {
		return []string{"/" + strings.Join(ve.InstanceLocation, "/")}
	}
	var out []string
	for _, cause := range ve.Causes {
		out = append(out, leafFields(cause)...)
	}
	return out
}
