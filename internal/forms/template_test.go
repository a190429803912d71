package forms

import "testing"

func TestDefaultTemplateShape(t *testing.T) {
	tmpl := DefaultTemplate()
	if len(tmpl) != 9 {
		t.Fatalf("default template has %d questions, want 9", len(tmpl))
	}

	eventType := tmpl[6]
	if eventType.Prompt != "Tipo de evento" {
		t.Fatalf("question 7 prompt = %q", eventType.Prompt)
	}
	if eventType.Kind != KindRadio || !eventType.Required {
		t.Fatalf("question 7 should be a required radio, got kind=%s required=%v", eventType.Kind, eventType.Required)
	}
	if len(eventType.Options) != 6 {
		t.Fatalf("question 7 has %d options, want 6", len(eventType.Options))
	}

	guests := tmpl[4]
	if guests.Kind != KindNumber || guests.MinValue == nil || *guests.MinValue != 1 {
		t.Fatalf("guest count should be a number with min_value 1, got %+v", guests)
	}

	details := tmpl[8]
	if details.Kind != KindTextarea || details.MaxLength == nil || *details.MaxLength != 1000 {
		t.Fatalf("details should be a textarea with max_length 1000, got %+v", details)
	}
}

// The template is never exempt from the builder's own rules.
func TestDefaultTemplatePassesBuild(t *testing.T) {
	if _, err := Build(DefaultTemplate()); err != nil {
		t.Fatalf("default template failed Build: %v", err)
	}
}

func TestDefaultTemplateIsFreshPerCall(t *testing.T) {
	a := DefaultTemplate()
	a[0].Prompt = "mutated"
	b := DefaultTemplate()
	if b[0].Prompt != "Nome completo" {
		t.Fatal("DefaultTemplate shares state between calls")
	}
}
