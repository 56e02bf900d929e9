package content

import (
	"fmt"
	"strings"
)

// ParseError indicates the model reply was not valid JSON after fence
// normalization. Parse failures never enter the repair loop.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("reply is not valid JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaValidationError indicates parsed JSON failed structural or semantic
// checks. Fields holds the instance paths of the offending fields; Reason
// is the human-readable explanation fed back to the model during repair.
type SchemaValidationError struct {
	Fields []string
	Reason string
}

func (e *SchemaValidationError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("schema validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("schema validation failed at %s: %s", strings.Join(e.Fields, ", "), e.Reason)
}

// GenerationError is the terminal wrapper surfaced to callers once a
// pipeline has exhausted its options (including the single repair attempt).
type GenerationError struct {
	Stage Stage
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("content generation failed while %s: %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
