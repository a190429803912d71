package suppliers

import (
	"reflect"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/festeja/backend/internal/models"
)

func TestCompletenessEmptyProfile(t *testing.T) {
	report := Completeness(&models.Supplier{})
	if report.Score != 0 {
		t.Fatalf("empty profile score = %d, want 0", report.Score)
	}
	for _, f := range report.Fields {
		if f.Done {
			t.Errorf("field %s marked done on empty profile", f.Field)
		}
	}
	wantMissing := []string{"fantasy_name", "phone", "email", "city", "state"}
	if !reflect.DeepEqual(report.MissingFields, wantMissing) {
		t.Errorf("missing fields = %v, want %v", report.MissingFields, wantMissing)
	}
	if len(report.Recommendations) != 2 {
		t.Errorf("recommendations = %v, want category and description suggestions", report.Recommendations)
	}
}

func TestCompletenessFullProfile(t *testing.T) {
	catID := uuid.New()
	s := &models.Supplier{
		FantasyName: "Buffet Alegria",
		Phone:       "(11) 98765-4321",
		Email:       "contato@buffetalegria.com.br",
		City:        "São Paulo",
		State:       "SP",
		CategoryID:  &catID,
		Description: strings.Repeat("a", 50),
	}
	report := Completeness(s)
	if report.Score != 100 {
		t.Fatalf("full profile score = %d, want 100", report.Score)
	}
	if len(report.MissingFields) != 0 {
		t.Errorf("missing fields on full profile: %v", report.MissingFields)
	}
	if len(report.Recommendations) != 0 {
		t.Errorf("recommendations on full profile: %v", report.Recommendations)
	}
}

func TestCompletenessPartial(t *testing.T) {
	s := &models.Supplier{
		FantasyName: "Foto Luz",
		Phone:       "11987654321",
		Email:       "oi@fotoluz.com",
		City:        "Campinas",
		State:       "SP",
	}
	// 5 of 7 checks pass: 100/140 -> 71
	report := Completeness(s)
	if report.Score != 71 {
		t.Fatalf("partial profile score = %d, want 71", report.Score)
	}
}

func TestCompletenessDescriptionThreshold(t *testing.T) {
	short := &models.Supplier{Description: strings.Repeat("x", 49)}
	long := &models.Supplier{Description: strings.Repeat("x", 50)}
	// rune count, not bytes
	accented := &models.Supplier{Description: strings.Repeat("ç", 50)}

	if f := findField(t, Completeness(short), "description"); f.Done {
		t.Error("49-char description counted as done")
	}
	if f := findField(t, Completeness(long), "description"); !f.Done {
		t.Error("50-char description not counted")
	}
	if f := findField(t, Completeness(accented), "description"); !f.Done {
		t.Error("50-rune accented description not counted")
	}
}

func TestCompletenessWhitespaceNotCounted(t *testing.T) {
	s := &models.Supplier{FantasyName: "   ", Phone: "\t"}
	report := Completeness(s)
	if report.Score != 0 {
		t.Fatalf("whitespace-only fields scored %d, want 0", report.Score)
	}
}

func findField(t *testing.T, report CompletenessReport, name string) CompletenessField {
	t.Helper()
	for _, f := range report.Fields {
		if f.Field == name {
			return f
		}
	}
	t.Fatalf("field %s not in report", name)
	return CompletenessField{}
}
