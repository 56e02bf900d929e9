package content

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

const validContentJSON = `{
  "topic": "Photosynthesis",
  "summary": "How plants convert light into chemical energy.",
  "sections": [
    {
      "title": "Light Reactions",
      "content": "Chlorophyll absorbs light energy.",
      "key_points": ["Occurs in thylakoids", "Produces ATP and NADPH"]
    }
  ],
  "references": ["Campbell Biology"],
  "difficulty_level": "beginner"
}`

func TestValidateContentAcceptsValidPayload(t *testing.T) {
	resp, err := ValidateContent(json.RawMessage(validContentJSON))
	if err != nil {
		t.Fatalf("ValidateContent: %v", err)
	}
	if resp.Topic != "Photosynthesis" {
		t.Fatalf("topic: want=%q got=%q", "Photosynthesis", resp.Topic)
	}
	if len(resp.Sections) != 1 || len(resp.Sections[0].KeyPoints) != 2 {
		t.Fatalf("sections not preserved: %+v", resp.Sections)
	}
}

func TestValidateContentNormalizesDifficultyCase(t *testing.T) {
	for _, in := range []string{"BEGINNER", "Beginner", "beginner", "InTeRmEdIaTe"} {
		payload := strings.Replace(validContentJSON, `"beginner"`, `"`+in+`"`, 1)
		resp, err := ValidateContent(json.RawMessage(payload))
		if err != nil {
			t.Fatalf("difficulty %q rejected: %v", in, err)
		}
		if resp.DifficultyLevel != strings.ToLower(in) {
			t.Fatalf("difficulty %q: want=%q got=%q", in, strings.ToLower(in), resp.DifficultyLevel)
		}
	}
}

func TestValidateContentRejectsUnknownDifficulty(t *testing.T) {
	payload := strings.Replace(validContentJSON, `"beginner"`, `"easy"`, 1)
	_, err := ValidateContent(json.RawMessage(payload))

	var schemaErr *SchemaValidationError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("want *SchemaValidationError, got %T: %v", err, err)
	}
	if !strings.Contains(schemaErr.Error(), "difficulty_level") {
		t.Fatalf("error should name difficulty_level: %v", schemaErr)
	}
}

func TestValidateContentRejectsTooFewKeyPoints(t *testing.T) {
	payload := strings.Replace(validContentJSON,
		`["Occurs in thylakoids", "Produces ATP and NADPH"]`,
		`["Occurs in thylakoids"]`, 1)
	_, err := ValidateContent(json.RawMessage(payload))

	var schemaErr *SchemaValidationError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("want *SchemaValidationError, got %T: %v", err, err)
	}
	found := false
	for _, f := range schemaErr.Fields {
		if strings.Contains(f, "key_points") {
			found = true
		}
	}
	if !found {
		t.Fatalf("error fields should name key_points: %v", schemaErr.Fields)
	}
}

func TestValidateContentMalformedJSONIsParseError(t *testing.T) {
	_, err := ValidateContent(json.RawMessage(`{"topic": "x",`))

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("want *ParseError, got %T: %v", err, err)
	}
}

func TestValidateContentMissingFieldIsSchemaError(t *testing.T) {
	payload := strings.Replace(validContentJSON, `"summary": "How plants convert light into chemical energy.",`, "", 1)
	_, err := ValidateContent(json.RawMessage(payload))

	var schemaErr *SchemaValidationError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("want *SchemaValidationError, got %T: %v", err, err)
	}
}

func TestValidateQuestionsAcceptsBareArray(t *testing.T) {
	raw := `[{"question":"Capital of France?","option_a":"Rome","option_b":"Berlin","option_c":"Paris","option_d":"Madrid","answer_option":"c"}]`
	items, err := ValidateQuestions(json.RawMessage(raw))
	if err != nil {
		t.Fatalf("ValidateQuestions: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("item count: want=1 got=%d", len(items))
	}
	if items[0].AnswerString != "Paris" {
		t.Fatalf("answer_string: want=%q got=%q", "Paris", items[0].AnswerString)
	}
}

func TestValidateQuestionsAcceptsEnvelope(t *testing.T) {
	raw := `{"questions":[{"question":"2+2?","option_a":"3","option_b":"4","option_c":"5","option_d":"6","answer_option":"b"}]}`
	items, err := ValidateQuestions(json.RawMessage(raw))
	if err != nil {
		t.Fatalf("ValidateQuestions: %v", err)
	}
	if len(items) != 1 || items[0].AnswerString != "4" {
		t.Fatalf("envelope not unwrapped: %+v", items)
	}
}

func TestValidateQuestionsOverridesModelAnswerString(t *testing.T) {
	raw := `[{"question":"q","option_a":"right","option_b":"b","option_c":"c","option_d":"d","answer_option":"a","answer_string":"model lied"}]`
	items, err := ValidateQuestions(json.RawMessage(raw))
	if err != nil {
		t.Fatalf("ValidateQuestions: %v", err)
	}
	if items[0].AnswerString != "right" {
		t.Fatalf("answer_string must be recomputed: got=%q", items[0].AnswerString)
	}
}
