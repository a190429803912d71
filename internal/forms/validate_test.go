package forms

import (
	"errors"
	"testing"
)

func submissionCode(t *testing.T, err error) SubmissionErrorCode {
	t.Helper()
	var se *SubmissionError
	if !errors.As(err, &se) {
		t.Fatalf("want *SubmissionError, got %v", err)
	}
	return se.Code
}

func TestRequiredPresence(t *testing.T) {
	schema := Schema{{Prompt: "Nome completo", Kind: KindText, Required: true}}

	for name, answers := range map[string]map[string]any{
		"absent":     {},
		"empty":      {"0": ""},
		"whitespace": {"0": "   "},
		"nil":        {"0": nil},
	} {
		err := ValidateSubmission(schema, answers)
		if code := submissionCode(t, err); code != RequiredFieldMissing {
			t.Fatalf("%s: want RequiredFieldMissing, got %v", name, err)
		}
	}

	if err := ValidateSubmission(schema, map[string]any{"0": "Maria Silva"}); err != nil {
		t.Fatalf("answered: %v", err)
	}
}

func TestOptionalBlankIsSkipped(t *testing.T) {
	schema := Schema{{Prompt: "Local do evento", Kind: KindText, MinLength: intPtr(5)}}
	for name, answers := range map[string]map[string]any{
		"absent":     {},
		"empty":      {"0": ""},
		"whitespace": {"0": " "},
	} {
		if err := ValidateSubmission(schema, answers); err != nil {
			t.Fatalf("%s: optional unanswered question must be valid, got %v", name, err)
		}
	}
}

func TestPositionalKeyWinsOverPromptKey(t *testing.T) {
	schema := Schema{{Prompt: "E-mail", Kind: KindEmail, Required: true}}
	// The prompt-keyed value is valid, the positional one is not; positional
	// must take precedence.
	err := ValidateSubmission(schema, map[string]any{
		"0":      "not-an-email",
		"E-mail": "valid@example.com",
	})
	if code := submissionCode(t, err); code != InvalidEmailFormat {
		t.Fatalf("want InvalidEmailFormat from positional key, got %v", err)
	}
}

func TestPromptKeyFallback(t *testing.T) {
	schema := Schema{{Prompt: "E-mail", Kind: KindEmail, Required: true}}
	if err := ValidateSubmission(schema, map[string]any{"E-mail": "valid@example.com"}); err != nil {
		t.Fatalf("prompt-keyed answer should resolve: %v", err)
	}
}

func TestEmailFormat(t *testing.T) {
	schema := Schema{{Prompt: "E-mail", Kind: KindEmail, Required: true}}
	for _, bad := range []string{"plain", "a@b", "a@b.", "@x.com", "a b@x.com"} {
		err := ValidateSubmission(schema, map[string]any{"0": bad})
		if code := submissionCode(t, err); code != InvalidEmailFormat {
			t.Fatalf("%q: want InvalidEmailFormat, got %v", bad, err)
		}
	}
	for _, good := range []string{"a@b.co", "first.last+tag@sub.example.com"} {
		if err := ValidateSubmission(schema, map[string]any{"0": good}); err != nil {
			t.Fatalf("%q: %v", good, err)
		}
	}
}

func TestPhoneFormat(t *testing.T) {
	schema := Schema{{Prompt: "Telefone", Kind: KindPhone, Required: true}}
	for _, good := range []string{"(11) 91234-5678", "+55 11 91234 5678", "1234567890"} {
		if err := ValidateSubmission(schema, map[string]any{"0": good}); err != nil {
			t.Fatalf("%q: %v", good, err)
		}
	}
	for _, bad := range []string{"123456789", "1234567890123456", "11 91234-5678 x9abc"} {
		err := ValidateSubmission(schema, map[string]any{"0": bad})
		if code := submissionCode(t, err); code != InvalidPhoneFormat {
			t.Fatalf("%q: want InvalidPhoneFormat, got %v", bad, err)
		}
	}
}

func TestNumberBounds(t *testing.T) {
	schema := Schema{{
		Prompt:   "Número de convidados",
		Kind:     KindNumber,
		Required: true,
		MinValue: floatPtr(1),
		MaxValue: floatPtr(10),
	}}

	cases := []struct {
		answer any
		want   SubmissionErrorCode // "" means accepted
	}{
		{float64(0), NumberBelowMinimum},
		{float64(11), NumberAboveMaximum},
		{float64(5), ""},
		{float64(1), ""},  // bounds inclusive
		{float64(10), ""}, // bounds inclusive
		{"abc", InvalidNumberFormat},
		{"7", ""},
		{"2.5", ""},
	}
	for _, c := range cases {
		err := ValidateSubmission(schema, map[string]any{"0": c.answer})
		if c.want == "" {
			if err != nil {
				t.Fatalf("answer %v: %v", c.answer, err)
			}
			continue
		}
		if code := submissionCode(t, err); code != c.want {
			t.Fatalf("answer %v: want %s, got %v", c.answer, c.want, err)
		}
	}
}

func TestTextLengthBounds(t *testing.T) {
	schema := Schema{{
		Prompt:    "Detalhes",
		Kind:      KindTextarea,
		Required:  true,
		MinLength: intPtr(3),
		MaxLength: intPtr(5),
	}}

	if err := ValidateSubmission(schema, map[string]any{"0": "ab"}); submissionCode(t, err) != TextTooShort {
		t.Fatalf("want TextTooShort, got %v", err)
	}
	if err := ValidateSubmission(schema, map[string]any{"0": "abcdef"}); submissionCode(t, err) != TextTooLong {
		t.Fatalf("want TextTooLong, got %v", err)
	}
	if err := ValidateSubmission(schema, map[string]any{"0": "abcd"}); err != nil {
		t.Fatalf("in-range text: %v", err)
	}
	// Length counts characters, not bytes.
	if err := ValidateSubmission(schema, map[string]any{"0": "ação"}); err != nil {
		t.Fatalf("accented 4-rune text: %v", err)
	}
}

func TestSingleChoiceMustMatchOption(t *testing.T) {
	for _, kind := range []Kind{KindSelect, KindRadio} {
		schema := Schema{{Prompt: "Tipo", Kind: kind, Required: true, Options: []string{"A", "B"}}}
		if err := ValidateSubmission(schema, map[string]any{"0": "A"}); err != nil {
			t.Fatalf("%s valid option: %v", kind, err)
		}
		err := ValidateSubmission(schema, map[string]any{"0": "C"})
		if code := submissionCode(t, err); code != InvalidOption {
			t.Fatalf("%s: want InvalidOption, got %v", kind, err)
		}
	}
}

func TestMultiChoice(t *testing.T) {
	for _, kind := range []Kind{KindMultiSelect, KindCheckbox} {
		schema := Schema{{Prompt: "Serviços", Kind: kind, Required: true, Options: []string{"A", "B"}}}

		err := ValidateSubmission(schema, map[string]any{"0": "A"})
		if code := submissionCode(t, err); code != AnswerMustBeList {
			t.Fatalf("%s scalar answer: want AnswerMustBeList, got %v", kind, err)
		}

		err = ValidateSubmission(schema, map[string]any{"0": []any{"A", "C"}})
		var se *SubmissionError
		if !errors.As(err, &se) || se.Code != InvalidOption || se.Detail != "C" {
			t.Fatalf("%s: want InvalidOption naming C, got %v", kind, err)
		}

		if err := ValidateSubmission(schema, map[string]any{"0": []any{"A", "B"}}); err != nil {
			t.Fatalf("%s valid list: %v", kind, err)
		}
		if err := ValidateSubmission(schema, map[string]any{"0": []string{"B"}}); err != nil {
			t.Fatalf("%s native string slice: %v", kind, err)
		}
	}
}

func TestDateKindsAreOpaque(t *testing.T) {
	schema := Schema{
		{Prompt: "Data", Kind: KindDate, Required: true},
		{Prompt: "Horário", Kind: KindDateTime, Required: true},
	}
	answers := map[string]any{"0": "whenever works", "1": "2026-10-01T18:00"}
	if err := ValidateSubmission(schema, answers); err != nil {
		t.Fatalf("date answers are opaque text: %v", err)
	}
}

func TestFailFastReportsFirstViolationInSchemaOrder(t *testing.T) {
	schema := Schema{
		{Prompt: "Nome", Kind: KindText, Required: true},
		{Prompt: "E-mail", Kind: KindEmail, Required: true},
	}
	// Both questions are violated; only the first is reported.
	err := ValidateSubmission(schema, map[string]any{"1": "bad-email"})
	var se *SubmissionError
	if !errors.As(err, &se) {
		t.Fatalf("want *SubmissionError, got %v", err)
	}
	if se.Code != RequiredFieldMissing || se.Prompt != "Nome" {
		t.Fatalf("want RequiredFieldMissing for Nome, got code=%s prompt=%q", se.Code, se.Prompt)
	}
}

// Presence is checked before the type check even on required questions.
func TestPresencePrecedesTypeCheck(t *testing.T) {
	schema := Schema{{Prompt: "E-mail", Kind: KindEmail, Required: true}}
	err := ValidateSubmission(schema, map[string]any{"0": "  "})
	if code := submissionCode(t, err); code != RequiredFieldMissing {
		t.Fatalf("want RequiredFieldMissing before InvalidEmailFormat, got %v", err)
	}
}

func TestOrdinalPlaceholderWhenPromptBlank(t *testing.T) {
	// Legacy rows can hold questions with blank prompts; Build rejects them
	// but the validator must still name them in errors.
	schema := Schema{{Prompt: "", Kind: KindText, Required: true}}
	err := ValidateSubmission(schema, map[string]any{})
	var se *SubmissionError
	if !errors.As(err, &se) {
		t.Fatalf("want *SubmissionError, got %v", err)
	}
	if se.Prompt != "Question 1" {
		t.Fatalf("want ordinal placeholder, got %q", se.Prompt)
	}
}

func TestDefaultTemplateEndToEnd(t *testing.T) {
	tmpl := DefaultTemplate()

	answers := map[string]any{
		"0": "Maria Silva",
		"1": "maria@example.com",
		"2": "(11) 91234-5678",
		"3": "2026-10-01",
		"4": float64(120),
		"5": "São Paulo, SP",
		"6": "Casamento",
		"7": "R$ 10.000 - R$ 20.000",
		"8": "Cerimônia ao ar livre.",
	}
	if err := ValidateSubmission(tmpl, answers); err != nil {
		t.Fatalf("complete submission: %v", err)
	}

	delete(answers, "0")
	err := ValidateSubmission(tmpl, answers)
	var se *SubmissionError
	if !errors.As(err, &se) {
		t.Fatalf("want *SubmissionError, got %v", err)
	}
	if se.Code != RequiredFieldMissing || se.Prompt != "Nome completo" {
		t.Fatalf("want RequiredFieldMissing for Nome completo, got code=%s prompt=%q", se.Code, se.Prompt)
	}
}
