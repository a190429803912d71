package sanitize

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTextStripsMarkup(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Festa de 15 anos", "Festa de 15 anos"},
		{"empty", "", ""},
		{"script", `<script>alert("x")</script>oi`, "oi"},
		{"tags", "<b>negrito</b>", "negrito"},
		{"escapes specials", `a < b & c`, "a &lt; b &amp; c"},
		{"img onerror", `<img src=x onerror=alert(1)>texto`, "texto"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Text(tc.in); got != tc.want {
				t.Fatalf("Text(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestAnswersWalksNestedValues(t *testing.T) {
	in := map[string]any{
		"0": "<b>Maria</b>",
		"1": []any{"<i>a</i>", "b", 3.0},
		"2": map[string]any{"nested": "<script>x</script>ok"},
		"3": 42.0,
		"4": true,
		"5": nil,
	}
	want := map[string]any{
		"0": "Maria",
		"1": []any{"a", "b", 3.0},
		"2": map[string]any{"nested": "ok"},
		"3": 42.0,
		"4": true,
		"5": nil,
	}
	got := Answers(in)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Answers mismatch (-want +got):\n%s", diff)
	}
	// input must not be mutated
	if in["0"] != "<b>Maria</b>" {
		t.Fatal("Answers mutated its input")
	}
}

func TestAnswersNil(t *testing.T) {
	if got := Answers(nil); got != nil {
		t.Fatalf("Answers(nil) = %v, want nil", got)
	}
}
