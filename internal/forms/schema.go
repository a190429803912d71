// Package forms implements the dynamic contact-form engine: the question
// kind registry, schema building and validation, the default template,
// submission validation, and the storage codec. Everything here is pure
// computation over in-memory values; persistence, sanitization, and rate
// limiting live with the callers.
package forms

import "strings"

// MaxQuestions bounds how many questions a contact form may carry.
const MaxQuestions = 20

// QuestionDefinition is one question in a form schema. Which of the optional
// constraint fields are meaningful depends on Kind; the registry in kinds.go
// is the source of truth.
type QuestionDefinition struct {
	Prompt      string   `json:"question"`
	Kind        Kind     `json:"type"`
	Required    bool     `json:"required"`
	Placeholder string   `json:"placeholder,omitempty"`
	Options     []string `json:"options,omitempty"`
	MinValue    *float64 `json:"min_value,omitempty"`
	MaxValue    *float64 `json:"max_value,omitempty"`
	MinLength   *int     `json:"min_length,omitempty"`
	MaxLength   *int     `json:"max_length,omitempty"`
}

// Schema is the ordered question list of one supplier's contact form. Order
// is significant: a question's position is the primary key for matching its
// answer, and it survives encode/decode exactly.
type Schema []QuestionDefinition

// Build validates a question list and returns it as a Schema, preserving
// input order. It reports the first violation found. Replacing an existing
// form's questions goes through Build as well: replacement is always of the
// whole sequence, never a partial merge.
func Build(questions []QuestionDefinition) (Schema, error) {
	if len(questions) > MaxQuestions {
		return nil, &SchemaError{Code: TooManyQuestions, Index: -1}
	}
	for i, q := range questions {
		if strings.TrimSpace(q.Prompt) == "" {
			return nil, &SchemaError{Code: EmptyPrompt, Index: i}
		}
		if !q.Kind.Valid() {
			return nil, &SchemaError{Code: UnknownKind, Index: i, Prompt: q.Prompt, Kind: q.Kind}
		}
		if q.Kind.RequiresOptions() && len(q.Options) == 0 {
			return nil, &SchemaError{Code: MissingOptions, Index: i, Prompt: q.Prompt, Kind: q.Kind}
		}
	}
	out := make(Schema, len(questions))
	copy(out, questions)
	return out, nil
}
