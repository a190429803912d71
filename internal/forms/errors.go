package forms

import (
	"errors"
	"fmt"
)

// Decode failures are distinguished so callers can tell "bad stored data"
// from "bad new input".
var (
	ErrCorruptSchema  = errors.New("corrupt stored form schema")
	ErrCorruptAnswers = errors.New("corrupt stored submission answers")
)

// SchemaErrorCode identifies an authoring-time schema violation.
type SchemaErrorCode string

const (
	TooManyQuestions SchemaErrorCode = "too_many_questions"
	MissingOptions   SchemaErrorCode = "missing_options"
	EmptyPrompt      SchemaErrorCode = "empty_prompt"
	UnknownKind      SchemaErrorCode = "unknown_kind"
)

// SchemaError is the first violation found while building a form schema.
// Index is the 0-based position of the offending question, -1 for violations
// of the schema as a whole.
type SchemaError struct {
	Code   SchemaErrorCode
	Index  int
	Prompt string
	Kind   Kind
}

func (e *SchemaError) Error() string {
	switch e.Code {
	case TooManyQuestions:
		return fmt.Sprintf("contact form can have maximum %d questions", MaxQuestions)
	case MissingOptions:
		return fmt.Sprintf("type %q requires 'options' with at least one option", e.Kind)
	case EmptyPrompt:
		return fmt.Sprintf("question %d must have a non-empty text", e.Index+1)
	case UnknownKind:
		return fmt.Sprintf("unknown question type %q", e.Kind)
	}
	return "invalid form schema"
}

// SubmissionErrorCode identifies a submit-time answer violation.
type SubmissionErrorCode string

const (
	RequiredFieldMissing SubmissionErrorCode = "required_field_missing"
	InvalidEmailFormat   SubmissionErrorCode = "invalid_email_format"
	InvalidPhoneFormat   SubmissionErrorCode = "invalid_phone_format"
	InvalidNumberFormat  SubmissionErrorCode = "invalid_number_format"
	NumberBelowMinimum   SubmissionErrorCode = "number_below_minimum"
	NumberAboveMaximum   SubmissionErrorCode = "number_above_maximum"
	TextTooShort         SubmissionErrorCode = "text_too_short"
	TextTooLong          SubmissionErrorCode = "text_too_long"
	InvalidOption        SubmissionErrorCode = "invalid_option"
	AnswerMustBeList     SubmissionErrorCode = "answer_must_be_list"
)

// SubmissionError is the first violation found while validating a submission.
// Prompt names the offending question ("Question N" when the stored prompt is
// blank). Detail carries the offending item, bound, or underlying reason
// depending on the code.
type SubmissionError struct {
	Code   SubmissionErrorCode
	Prompt string
	Detail string
}

func (e *SubmissionError) Error() string {
	switch e.Code {
	case RequiredFieldMissing:
		return fmt.Sprintf("required question %q was not answered", e.Prompt)
	case InvalidEmailFormat:
		return fmt.Sprintf("invalid email format for question %q", e.Prompt)
	case InvalidPhoneFormat:
		return fmt.Sprintf("invalid phone format for question %q: %s", e.Prompt, e.Detail)
	case InvalidNumberFormat:
		return fmt.Sprintf("invalid number format for question %q", e.Prompt)
	case NumberBelowMinimum:
		return fmt.Sprintf("value for question %q must be at least %s", e.Prompt, e.Detail)
	case NumberAboveMaximum:
		return fmt.Sprintf("value for question %q must be at most %s", e.Prompt, e.Detail)
	case TextTooShort:
		return fmt.Sprintf("answer for question %q must be at least %s characters", e.Prompt, e.Detail)
	case TextTooLong:
		return fmt.Sprintf("answer for question %q must be at most %s characters", e.Prompt, e.Detail)
	case InvalidOption:
		if e.Detail != "" {
			return fmt.Sprintf("selected option %q for question %q is not valid", e.Detail, e.Prompt)
		}
		return fmt.Sprintf("selected option for question %q is not valid", e.Prompt)
	case AnswerMustBeList:
		return fmt.Sprintf("answer for question %q must be a list", e.Prompt)
	}
	return "invalid submission"
}
