package contactforms

import (
	"encoding/json"
	"testing"

	"github.com/festeja/backend/internal/forms"
)

func TestBuildOrDefaultFallsBackToTemplate(t *testing.T) {
	// An omitted questions field unmarshals to a nil slice.
	var req FormRequest
	if err := json.Unmarshal([]byte(`{}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	schema, err := buildOrDefault(req.Questions)
	if err != nil {
		t.Fatalf("buildOrDefault(nil) error: %v", err)
	}
	want := forms.DefaultTemplate()
	if len(schema) != len(want) {
		t.Fatalf("got %d questions, want %d", len(schema), len(want))
	}
	if schema[0].Prompt != want[0].Prompt {
		t.Errorf("first prompt = %q, want %q", schema[0].Prompt, want[0].Prompt)
	}

	// An explicit empty list gets the same treatment.
	schema, err = buildOrDefault([]forms.QuestionDefinition{})
	if err != nil || len(schema) != len(want) {
		t.Fatalf("empty list: got %d questions (err %v), want %d", len(schema), err, len(want))
	}
}

func TestBuildOrDefaultKeepsExplicitQuestions(t *testing.T) {
	schema, err := buildOrDefault([]forms.QuestionDefinition{
		{Prompt: "Como nos conheceu?", Kind: forms.KindText},
	})
	if err != nil {
		t.Fatalf("buildOrDefault error: %v", err)
	}
	if len(schema) != 1 || schema[0].Prompt != "Como nos conheceu?" {
		t.Fatalf("schema = %+v, want the single submitted question", schema)
	}
}

func TestBuildOrDefaultRejectsInvalidQuestions(t *testing.T) {
	if _, err := buildOrDefault([]forms.QuestionDefinition{
		{Prompt: "Cor favorita", Kind: "rainbow"},
	}); err == nil {
		t.Fatal("unknown kind accepted")
	}
}

func TestContactInfoExplicitFieldsWin(t *testing.T) {
	schema := forms.DefaultTemplate()
	name, email, phone := "Ana Costa", "ana@example.com", "(21) 91234-5678"
	req := &SubmitRequest{
		SubmitterName:  &name,
		SubmitterEmail: &email,
		SubmitterPhone: &phone,
	}
	answers := map[string]any{
		"0": "Maria Silva",
		"1": "maria@example.com",
		"2": "(11) 98765-4321",
	}

	gotName, gotEmail, gotPhone := contactInfo(req, schema, answers)
	if gotName == nil || *gotName != "Ana Costa" {
		t.Errorf("name = %v, want Ana Costa", gotName)
	}
	if gotEmail == nil || *gotEmail != "ana@example.com" {
		t.Errorf("email = %v, want ana@example.com", gotEmail)
	}
	if gotPhone == nil || *gotPhone != "(21) 91234-5678" {
		t.Errorf("phone = %v, want (21) 91234-5678", gotPhone)
	}
}

func TestContactInfoDerivesWhenAbsent(t *testing.T) {
	schema := forms.DefaultTemplate()
	answers := map[string]any{
		"0": "Maria Silva",
		"1": "maria@example.com",
		"2": "(11) 98765-4321",
	}

	name, email, phone := contactInfo(&SubmitRequest{}, schema, answers)
	if name == nil || *name != "Maria Silva" {
		t.Errorf("name = %v, want Maria Silva", name)
	}
	if email == nil || *email != "maria@example.com" {
		t.Errorf("email = %v, want maria@example.com", email)
	}
	if phone == nil || *phone != "(11) 98765-4321" {
		t.Errorf("phone = %v, want (11) 98765-4321", phone)
	}
}

func TestContactInfoBlankExplicitFallsBack(t *testing.T) {
	schema := forms.DefaultTemplate()
	blank := "   "
	answers := map[string]any{"0": "Maria Silva"}

	name, _, _ := contactInfo(&SubmitRequest{SubmitterName: &blank}, schema, answers)
	if name == nil || *name != "Maria Silva" {
		t.Errorf("name = %v, want the derived Maria Silva", name)
	}
}

func TestContactInfoSanitizesExplicitFields(t *testing.T) {
	tagged := "<b>Ana</b>"
	name, _, _ := contactInfo(&SubmitRequest{SubmitterName: &tagged}, forms.Schema{}, nil)
	if name == nil || *name != "Ana" {
		t.Errorf("name = %v, want markup stripped to Ana", name)
	}
}

func TestExtractContactFromDefaultTemplate(t *testing.T) {
	schema := forms.DefaultTemplate()
	answers := map[string]any{
		"0": "Maria Silva",
		"1": "maria@example.com",
		"2": "(11) 98765-4321",
		"3": "2026-10-12",
		"4": 80.0,
	}

	name, email, phone := extractContact(schema, answers)
	if name == nil || *name != "Maria Silva" {
		t.Errorf("name = %v, want Maria Silva", name)
	}
	if email == nil || *email != "maria@example.com" {
		t.Errorf("email = %v, want maria@example.com", email)
	}
	if phone == nil || *phone != "(11) 98765-4321" {
		t.Errorf("phone = %v, want (11) 98765-4321", phone)
	}
}

func TestExtractContactPromptKeys(t *testing.T) {
	schema := forms.DefaultTemplate()
	answers := map[string]any{
		"Nome completo":     "João",
		"E-mail":            "joao@example.com",
		"Telefone/WhatsApp": "11987654321",
	}

	name, email, phone := extractContact(schema, answers)
	if name == nil || *name != "João" {
		t.Errorf("name = %v, want João", name)
	}
	if email == nil || *email != "joao@example.com" {
		t.Errorf("email = %v, want joao@example.com", email)
	}
	if phone == nil || *phone != "11987654321" {
		t.Errorf("phone = %v, want 11987654321", phone)
	}
}

func TestExtractContactMissingAndBlank(t *testing.T) {
	schema := forms.DefaultTemplate()

	name, email, phone := extractContact(schema, map[string]any{})
	if name != nil || email != nil || phone != nil {
		t.Fatalf("empty answers: got %v %v %v, want all nil", name, email, phone)
	}

	name, email, phone = extractContact(schema, map[string]any{
		"0": "   ",
		"1": 42.0, // wrong type, ignored
	})
	if name != nil {
		t.Errorf("blank name extracted: %v", name)
	}
	if email != nil {
		t.Errorf("non-string email extracted: %v", email)
	}
	if phone != nil {
		t.Errorf("phone extracted from nothing: %v", phone)
	}
}

func TestExtractContactSchemaWithoutContactQuestions(t *testing.T) {
	schema := forms.Schema{
		{Prompt: "Comentários", Kind: forms.KindTextarea},
	}
	name, email, phone := extractContact(schema, map[string]any{"0": "oi"})
	if name != nil || email != nil || phone != nil {
		t.Fatalf("got %v %v %v, want all nil", name, email, phone)
	}
}
