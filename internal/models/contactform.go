package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/festeja/backend/internal/forms"
)

// ContactForm is a supplier's customizable inquiry questionnaire, 1:1 with
// the supplier. The question schema is stored as an opaque encoded blob
// (see forms.EncodeSchema) and decoded into Questions on load.
type ContactForm struct {
	ID         uuid.UUID    `json:"id"`
	SupplierID uuid.UUID    `json:"supplier_id"`
	Questions  forms.Schema `json:"questions"`
	Active     bool         `json:"active"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// Submission is one respondent's validated answer set for a contact form.
// It is captured once, after validation against the schema that existed at
// submit time, and never re-validated or edited afterwards; only the read
// flag ever changes.
type Submission struct {
	ID             uuid.UUID      `json:"id"`
	ContactFormID  uuid.UUID      `json:"contact_form_id"`
	Answers        map[string]any `json:"answers"`
	SubmitterName  *string        `json:"submitter_name"`
	SubmitterEmail *string        `json:"submitter_email"`
	SubmitterPhone *string        `json:"submitter_phone"`
	Read           bool           `json:"read"`
	CreatedAt      time.Time      `json:"created_at"`
}
