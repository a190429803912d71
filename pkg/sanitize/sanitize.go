// Package sanitize neutralizes markup in respondent-supplied text before it
// is stored or rendered. It is applied after validation, never before, so
// validators always see the literal input.
package sanitize

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

// policy strips every HTML element and attribute; only text survives.
var policy = bluemonday.StrictPolicy()

// Text strips any HTML markup from s and escapes the remaining special
// characters so the result is safe to embed in HTML output.
func Text(s string) string {
	if s == "" {
		return s
	}
	// bluemonday entity-encodes what it keeps; unescape before the final
	// escape so entities are not double-encoded.
	return html.EscapeString(html.UnescapeString(policy.Sanitize(s)))
}

// Answers walks a submission answer structure and sanitizes every string
// value in place of a copy, preserving nested maps and lists.
func Answers(answers map[string]any) map[string]any {
	if answers == nil {
		return nil
	}
	out := make(map[string]any, len(answers))
	for k, v := range answers {
		out[k] = value(v)
	}
	return out
}

func value(v any) any {
	switch t := v.(type) {
	case string:
		return Text(t)
	case map[string]any:
		return Answers(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = value(item)
		}
		return out
	}
	return v
}
