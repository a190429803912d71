package forms

import (
	"encoding/json"
	"fmt"
	"strings"
)

// codecVersion tags every encoded blob so future question kinds can be added
// without breaking decode of previously stored rows.
const codecVersion = 1

type schemaEnvelope struct {
	Version   int    `json:"v"`
	Questions Schema `json:"questions"`
}

type answersEnvelope struct {
	Version int            `json:"v"`
	Answers map[string]any `json:"answers"`
}

// EncodeSchema serializes a schema into the opaque text stored in the
// contact form's questions column. DecodeSchema(EncodeSchema(s)) == s for
// every valid schema, question order included.
func EncodeSchema(s Schema) (string, error) {
	b, err := json.Marshal(schemaEnvelope{Version: codecVersion, Questions: s})
	if err != nil {
		return "", fmt.Errorf("encode schema: %w", err)
	}
	return string(b), nil
}

// DecodeSchema is the inverse of EncodeSchema. Rows written before the
// envelope was introduced hold a bare question array; those still decode.
// Malformed text fails with ErrCorruptSchema.
func DecodeSchema(text string) (Schema, error) {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "[") {
		var s Schema
		if err := json.Unmarshal([]byte(trimmed), &s); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptSchema, err)
		}
		return s, nil
	}
	var env schemaEnvelope
	if err := json.Unmarshal([]byte(trimmed), &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSchema, err)
	}
	if env.Questions == nil {
		return nil, fmt.Errorf("%w: missing questions", ErrCorruptSchema)
	}
	return env.Questions, nil
}

// EncodeAnswers serializes a submission's answer map into opaque text,
// preserving nested list and mapping structure exactly.
func EncodeAnswers(answers map[string]any) (string, error) {
	b, err := json.Marshal(answersEnvelope{Version: codecVersion, Answers: answers})
	if err != nil {
		return "", fmt.Errorf("encode answers: %w", err)
	}
	return string(b), nil
}

// DecodeAnswers is the inverse of EncodeAnswers. Pre-envelope rows hold the
// bare answer object and still decode. Malformed text fails with
// ErrCorruptAnswers.
func DecodeAnswers(text string) (map[string]any, error) {
	var env answersEnvelope
	if err := json.Unmarshal([]byte(text), &env); err == nil && env.Version > 0 && env.Answers != nil {
		return env.Answers, nil
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(text), &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptAnswers, err)
	}
	if m == nil {
		return nil, fmt.Errorf("%w: null answers", ErrCorruptAnswers)
	}
	return m, nil
}
