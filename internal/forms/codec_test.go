package forms

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestSchemaRoundTrip(t *testing.T) {
	schemas := map[string]Schema{
		"default template": DefaultTemplate(),
		"single question":  {textQuestion("only one")},
		"empty":            {},
		"all constraints": {
			{
				Prompt:      "Quantidade",
				Kind:        KindNumber,
				Required:    true,
				Placeholder: "Ex: 10",
				MinValue:    floatPtr(0.5),
				MaxValue:    floatPtr(99.25),
			},
			{
				Prompt:    "Observações",
				Kind:      KindTextarea,
				MinLength: intPtr(10),
				MaxLength: intPtr(500),
			},
			{
				Prompt:   "Serviços",
				Kind:     KindCheckbox,
				Required: true,
				Options:  []string{"Buffet", "Decoração", "Som"},
			},
		},
	}
	for name, schema := range schemas {
		encoded, err := EncodeSchema(schema)
		if err != nil {
			t.Fatalf("%s: encode: %v", name, err)
		}
		decoded, err := DecodeSchema(encoded)
		if err != nil {
			t.Fatalf("%s: decode: %v", name, err)
		}
		if diff := cmp.Diff(schema, decoded, cmpopts.EquateEmpty()); diff != "" {
			t.Fatalf("%s: round trip changed schema (-want +got):\n%s", name, diff)
		}
	}
}

func TestAnswersRoundTrip(t *testing.T) {
	answerSets := map[string]map[string]any{
		"flat": {
			"0": "Maria",
			"1": float64(120),
			"2": true,
		},
		"nested": {
			"0": []any{"A", "B"},
			"1": map[string]any{"street": "Rua X", "tags": []any{"a", "b"}},
			"2": nil,
		},
		"empty": {},
	}
	for name, answers := range answerSets {
		encoded, err := EncodeAnswers(answers)
		if err != nil {
			t.Fatalf("%s: encode: %v", name, err)
		}
		decoded, err := DecodeAnswers(encoded)
		if err != nil {
			t.Fatalf("%s: decode: %v", name, err)
		}
		if diff := cmp.Diff(answers, decoded, cmpopts.EquateEmpty()); diff != "" {
			t.Fatalf("%s: round trip changed answers (-want +got):\n%s", name, diff)
		}
	}
}

func TestDecodeSchemaAcceptsLegacyBareArray(t *testing.T) {
	legacy := `[{"question":"Nome completo","type":"text","required":true}]`
	schema, err := DecodeSchema(legacy)
	if err != nil {
		t.Fatalf("legacy decode: %v", err)
	}
	if len(schema) != 1 || schema[0].Prompt != "Nome completo" || schema[0].Kind != KindText {
		t.Fatalf("unexpected legacy schema: %+v", schema)
	}
}

func TestDecodeAnswersAcceptsLegacyBareObject(t *testing.T) {
	legacy := `{"0":"Maria","1":["A","B"]}`
	answers, err := DecodeAnswers(legacy)
	if err != nil {
		t.Fatalf("legacy decode: %v", err)
	}
	if answers["0"] != "Maria" {
		t.Fatalf("unexpected legacy answers: %+v", answers)
	}
}

func TestEncodedSchemaCarriesVersionTag(t *testing.T) {
	encoded, err := EncodeSchema(DefaultTemplate())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(encoded, `"v":1`) {
		t.Fatalf("encoded schema missing version tag: %s", encoded)
	}
}

func TestDecodeCorruptText(t *testing.T) {
	for _, text := range []string{"", "not json", "{", `{"v":1}`, "[{]"} {
		if _, err := DecodeSchema(text); !errors.Is(err, ErrCorruptSchema) {
			t.Fatalf("DecodeSchema(%q): want ErrCorruptSchema, got %v", text, err)
		}
	}
	for _, text := range []string{"", "not json", "[1,2]", "null"} {
		if _, err := DecodeAnswers(text); !errors.Is(err, ErrCorruptAnswers) {
			t.Fatalf("DecodeAnswers(%q): want ErrCorruptAnswers, got %v", text, err)
		}
	}
}
