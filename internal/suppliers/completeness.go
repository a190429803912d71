package suppliers

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/festeja/backend/internal/models"
)

const (
	fieldWeight       = 20
	minDescriptionLen = 50
	maxRawScore       = 7 * fieldWeight // 5 base fields + category + description
)

// CompletenessField reports one scored profile item.
type CompletenessField struct {
	Field string `json:"field"`
	Done  bool   `json:"done"`
}

// CompletenessReport is the profile completeness breakdown returned to
// suppliers so they know what to fill in next. MissingFields lists the base
// contact fields still empty; Recommendations suggests the optional items
// that would raise the score.
type CompletenessReport struct {
	Score           int                 `json:"score"` // 0..100
	Fields          []CompletenessField `json:"fields"`
	MissingFields   []string            `json:"missing_fields"`
	Recommendations []string            `json:"recommendations"`
}

const baseFieldCount = 5

// Completeness scores a supplier profile 0..100. Each base contact field is
// worth the same; a chosen category and a substantive description (at least
// 50 characters) count extra. The raw sum is normalized to a percentage.
func Completeness(s *models.Supplier) CompletenessReport {
	checks := []CompletenessField{
		{Field: "fantasy_name", Done: strings.TrimSpace(s.FantasyName) != ""},
		{Field: "phone", Done: strings.TrimSpace(s.Phone) != ""},
		{Field: "email", Done: strings.TrimSpace(s.Email) != ""},
		{Field: "city", Done: strings.TrimSpace(s.City) != ""},
		{Field: "state", Done: strings.TrimSpace(s.State) != ""},
		{Field: "category", Done: s.CategoryID != nil},
		{Field: "description", Done: utf8.RuneCountInString(strings.TrimSpace(s.Description)) >= minDescriptionLen},
	}

	raw := 0
	missing := []string{}
	for i, ch := range checks {
		if ch.Done {
			raw += fieldWeight
		} else if i < baseFieldCount {
			missing = append(missing, ch.Field)
		}
	}

	recommendations := []string{}
	if s.CategoryID == nil {
		recommendations = append(recommendations, "Adicione uma categoria para aumentar sua visibilidade")
	}
	if utf8.RuneCountInString(strings.TrimSpace(s.Description)) < minDescriptionLen {
		recommendations = append(recommendations, "Adicione uma descrição detalhada (mínimo 50 caracteres)")
	}

	score := int(math.Round(float64(raw) / maxRawScore * 100))
	return CompletenessReport{
		Score:           score,
		Fields:          checks,
		MissingFields:   missing,
		Recommendations: recommendations,
	}
}
