package forms

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func textQuestion(prompt string) QuestionDefinition {
	return QuestionDefinition{Prompt: prompt, Kind: KindText}
}

func TestBuildPreservesOrder(t *testing.T) {
	in := []QuestionDefinition{
		textQuestion("first"),
		{Prompt: "second", Kind: KindSelect, Options: []string{"A", "B"}},
		{Prompt: "third", Kind: KindNumber, Required: true},
	}
	schema, err := Build(in)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if diff := cmp.Diff(Schema(in), schema); diff != "" {
		t.Fatalf("schema differs from input (-want +got):\n%s", diff)
	}
}

func TestBuildQuestionLimitBoundary(t *testing.T) {
	atLimit := make([]QuestionDefinition, MaxQuestions)
	for i := range atLimit {
		atLimit[i] = textQuestion(fmt.Sprintf("question %d", i))
	}
	if _, err := Build(atLimit); err != nil {
		t.Fatalf("exactly %d questions should build: %v", MaxQuestions, err)
	}

	over := append(atLimit, textQuestion("one too many"))
	_, err := Build(over)
	var se *SchemaError
	if !errors.As(err, &se) || se.Code != TooManyQuestions {
		t.Fatalf("want TooManyQuestions, got %v", err)
	}
}

func TestBuildRejectsMissingOptions(t *testing.T) {
	for _, kind := range []Kind{KindSelect, KindMultiSelect, KindRadio, KindCheckbox} {
		_, err := Build([]QuestionDefinition{{Prompt: "pick one", Kind: kind}})
		var se *SchemaError
		if !errors.As(err, &se) || se.Code != MissingOptions {
			t.Fatalf("kind %s: want MissingOptions, got %v", kind, err)
		}
		_, err = Build([]QuestionDefinition{{Prompt: "pick one", Kind: kind, Options: []string{}}})
		if !errors.As(err, &se) || se.Code != MissingOptions {
			t.Fatalf("kind %s with empty options: want MissingOptions, got %v", kind, err)
		}
		if _, err := Build([]QuestionDefinition{{Prompt: "pick one", Kind: kind, Options: []string{"A"}}}); err != nil {
			t.Fatalf("kind %s with one option: %v", kind, err)
		}
	}
}

func TestBuildRejectsBlankPrompt(t *testing.T) {
	for _, prompt := range []string{"", "   "} {
		_, err := Build([]QuestionDefinition{textQuestion(prompt)})
		var se *SchemaError
		if !errors.As(err, &se) || se.Code != EmptyPrompt {
			t.Fatalf("prompt %q: want EmptyPrompt, got %v", prompt, err)
		}
	}
}

func TestBuildRejectsUnknownKind(t *testing.T) {
	_, err := Build([]QuestionDefinition{{Prompt: "attach a file", Kind: "file"}})
	var se *SchemaError
	if !errors.As(err, &se) || se.Code != UnknownKind {
		t.Fatalf("want UnknownKind, got %v", err)
	}
}

func TestKindRegistryTraits(t *testing.T) {
	cases := []struct {
		kind            Kind
		requiresOptions bool
		numericBounds   bool
		lengthBounds    bool
		multiValued     bool
	}{
		{KindText, false, false, true, false},
		{KindTextarea, false, false, true, false},
		{KindEmail, false, false, false, false},
		{KindPhone, false, false, false, false},
		{KindNumber, false, true, false, false},
		{KindSelect, true, false, false, false},
		{KindMultiSelect, true, false, false, true},
		{KindRadio, true, false, false, false},
		{KindCheckbox, true, false, false, true},
		{KindDate, false, false, false, false},
		{KindDateTime, false, false, false, false},
	}
	if len(cases) != len(kindRegistry) {
		t.Fatalf("registry has %d kinds, test covers %d", len(kindRegistry), len(cases))
	}
	for _, c := range cases {
		if !c.kind.Valid() {
			t.Fatalf("%s should be a valid kind", c.kind)
		}
		if got := c.kind.RequiresOptions(); got != c.requiresOptions {
			t.Errorf("%s RequiresOptions=%v, want %v", c.kind, got, c.requiresOptions)
		}
		if got := c.kind.HasNumericBounds(); got != c.numericBounds {
			t.Errorf("%s HasNumericBounds=%v, want %v", c.kind, got, c.numericBounds)
		}
		if got := c.kind.HasLengthBounds(); got != c.lengthBounds {
			t.Errorf("%s HasLengthBounds=%v, want %v", c.kind, got, c.lengthBounds)
		}
		if got := c.kind.MultiValued(); got != c.multiValued {
			t.Errorf("%s MultiValued=%v, want %v", c.kind, got, c.multiValued)
		}
	}
	if Kind("file").Valid() {
		t.Fatal("file should not be a valid kind")
	}
}
