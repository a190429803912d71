package forms

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// emailPattern matches the conventional local@domain.tld shape.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateSubmission checks an answer set against a schema and returns the
// first violation as a *SubmissionError, or nil when every answer is
// acceptable. Questions are evaluated in schema order, short-circuiting on
// the first failure.
//
// Answers are resolved per question by the string form of its 0-based
// position first, then by its exact prompt text. The positional key wins when
// both are present; the prompt-text fallback exists for older callers that
// key by question text.
//
// Validation never mutates its inputs. Sanitization of free-text answers is
// the caller's job and runs after validation, so the validator always sees
// the respondent's literal input.
func ValidateSubmission(schema Schema, answers map[string]any) error {
	for i, q := range schema {
		answer, ok := answers[strconv.Itoa(i)]
		if !ok {
			answer, ok = answers[q.Prompt]
		}

		if !ok || isBlank(answer) {
			if q.Required {
				return &SubmissionError{Code: RequiredFieldMissing, Prompt: promptLabel(q, i)}
			}
			// An optional unanswered question is always valid.
			continue
		}

		if err := checkAnswer(q, promptLabel(q, i), answer); err != nil {
			return err
		}
	}
	return nil
}

// checkAnswer runs the type-specific checks for one resolved, non-blank answer.
func checkAnswer(q QuestionDefinition, prompt string, answer any) error {
	switch q.Kind {
	case KindEmail:
		if !emailPattern.MatchString(coerceString(answer)) {
			return &SubmissionError{Code: InvalidEmailFormat, Prompt: prompt}
		}

	case KindPhone:
		if err := ValidatePhone(coerceString(answer)); err != nil {
			return &SubmissionError{Code: InvalidPhoneFormat, Prompt: prompt, Detail: err.Error()}
		}

	case KindNumber:
		n, err := coerceNumber(answer)
		if err != nil {
			return &SubmissionError{Code: InvalidNumberFormat, Prompt: prompt}
		}
		if q.MinValue != nil && n < *q.MinValue {
			return &SubmissionError{Code: NumberBelowMinimum, Prompt: prompt, Detail: formatNumber(*q.MinValue)}
		}
		if q.MaxValue != nil && n > *q.MaxValue {
			return &SubmissionError{Code: NumberAboveMaximum, Prompt: prompt, Detail: formatNumber(*q.MaxValue)}
		}

	case KindText, KindTextarea:
		// Length is counted on the untrimmed text.
		length := utf8.RuneCountInString(coerceString(answer))
		if q.MinLength != nil && length < *q.MinLength {
			return &SubmissionError{Code: TextTooShort, Prompt: prompt, Detail: strconv.Itoa(*q.MinLength)}
		}
		if q.MaxLength != nil && length > *q.MaxLength {
			return &SubmissionError{Code: TextTooLong, Prompt: prompt, Detail: strconv.Itoa(*q.MaxLength)}
		}

	case KindSelect, KindRadio:
		if !containsOption(q.Options, coerceString(answer)) {
			return &SubmissionError{Code: InvalidOption, Prompt: prompt}
		}

	case KindMultiSelect, KindCheckbox:
		items, ok := asList(answer)
		if !ok {
			return &SubmissionError{Code: AnswerMustBeList, Prompt: prompt}
		}
		for _, item := range items {
			if s := coerceString(item); !containsOption(q.Options, s) {
				return &SubmissionError{Code: InvalidOption, Prompt: prompt, Detail: s}
			}
		}

	case KindDate, KindDateTime:
		// Accepted as opaque text; presence was already checked.
	}
	return nil
}

// promptLabel names a question in error messages, falling back to an ordinal
// placeholder when the stored prompt is blank.
func promptLabel(q QuestionDefinition, i int) string {
	if strings.TrimSpace(q.Prompt) != "" {
		return q.Prompt
	}
	return fmt.Sprintf("Question %d", i+1)
}

// isBlank treats a nil answer or an empty/whitespace-only string as no answer.
func isBlank(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

func containsOption(options []string, s string) bool {
	for _, o := range options {
		if o == s {
			return true
		}
	}
	return false
}

// asList accepts the decoded-JSON list shape and the native string slice.
func asList(v any) ([]any, bool) {
	switch items := v.(type) {
	case []any:
		return items, true
	case []string:
		out := make([]any, len(items))
		for i, s := range items {
			out[i] = s
		}
		return out, true
	}
	return nil, false
}

// coerceString renders a scalar answer as text for comparison and length
// counting, matching the JSON representation for numbers.
func coerceString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	}
	return fmt.Sprint(v)
}

// coerceNumber parses a numeric answer from its decoded-JSON or string form.
func coerceNumber(v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case int:
		return float64(t), nil
	case json.Number:
		return t.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(t), 64)
	}
	return 0, fmt.Errorf("not a number: %T", v)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
