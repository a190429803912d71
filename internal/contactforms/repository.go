package contactforms

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/festeja/backend/internal/forms"
	"github.com/festeja/backend/internal/models"
)

// Repository handles contact form and submission persistence. Question
// schemas and answer sets cross the database boundary through the forms
// codec, never as raw structs.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a contactforms repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanForm(row interface{ Scan(...any) error }) (*models.ContactForm, error) {
	var f models.ContactForm
	var encoded string
	if err := row.Scan(&f.ID, &f.SupplierID, &encoded, &f.Active, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	schema, err := forms.DecodeSchema(encoded)
	if err != nil {
		return nil, fmt.Errorf("form %s: %w", f.ID, err)
	}
	f.Questions = schema
	return &f, nil
}

// Create inserts a contact form for a supplier. One per supplier.
func (r *Repository) Create(ctx context.Context, supplierID uuid.UUID, schema forms.Schema) (*models.ContactForm, error) {
	encoded, err := forms.EncodeSchema(schema)
	if err != nil {
		return nil, err
	}
	const q = `INSERT INTO contact_forms (supplier_id, questions)
		VALUES ($1, $2)
		RETURNING id, supplier_id, questions, active, created_at, updated_at`
	return scanForm(r.pool.QueryRow(ctx, q, supplierID, encoded))
}

// ProvisionDefault creates the standard questionnaire for a new supplier.
// It is a no-op if the supplier already has a form.
func (r *Repository) ProvisionDefault(ctx context.Context, supplierID uuid.UUID) error {
	encoded, err := forms.EncodeSchema(forms.DefaultTemplate())
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO contact_forms (supplier_id, questions) VALUES ($1, $2)
		 ON CONFLICT (supplier_id) DO NOTHING`,
		supplierID, encoded)
	return err
}

// GetBySupplier returns the supplier's form with its decoded schema.
func (r *Repository) GetBySupplier(ctx context.Context, supplierID uuid.UUID) (*models.ContactForm, error) {
	const q = `SELECT id, supplier_id, questions, active, created_at, updated_at
		FROM contact_forms WHERE supplier_id = $1`
	return scanForm(r.pool.QueryRow(ctx, q, supplierID))
}

// GetByID returns one form.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.ContactForm, error) {
	const q = `SELECT id, supplier_id, questions, active, created_at, updated_at
		FROM contact_forms WHERE id = $1`
	return scanForm(r.pool.QueryRow(ctx, q, id))
}

// UpdateQuestions replaces the form's schema. Existing submissions keep the
// answers they were validated against; they are never migrated.
func (r *Repository) UpdateQuestions(ctx context.Context, id uuid.UUID, schema forms.Schema) (*models.ContactForm, error) {
	encoded, err := forms.EncodeSchema(schema)
	if err != nil {
		return nil, err
	}
	const q = `UPDATE contact_forms SET questions = $2, updated_at = now() WHERE id = $1
		RETURNING id, supplier_id, questions, active, created_at, updated_at`
	return scanForm(r.pool.QueryRow(ctx, q, id, encoded))
}

// SetActive toggles whether the form accepts submissions.
func (r *Repository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE contact_forms SET active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("contact form %s not found", id)
	}
	return nil
}

// Delete removes the form and, via cascade, its submissions.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM contact_forms WHERE id = $1`, id)
	return err
}

// CreateSubmission stores a validated, sanitized answer set.
func (r *Repository) CreateSubmission(ctx context.Context, sub *models.Submission) error {
	encoded, err := forms.EncodeAnswers(sub.Answers)
	if err != nil {
		return err
	}
	const q = `INSERT INTO contact_form_submissions
		(contact_form_id, answers, submitter_name, submitter_email, submitter_phone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, read, created_at`
	return r.pool.QueryRow(ctx, q, sub.ContactFormID, encoded,
		sub.SubmitterName, sub.SubmitterEmail, sub.SubmitterPhone).
		Scan(&sub.ID, &sub.Read, &sub.CreatedAt)
}

// GetSubmission returns one submission with decoded answers.
func (r *Repository) GetSubmission(ctx context.Context, id uuid.UUID) (*models.Submission, error) {
	const q = `SELECT id, contact_form_id, answers, submitter_name, submitter_email, submitter_phone, read, created_at
		FROM contact_form_submissions WHERE id = $1`
	return scanSubmission(r.pool.QueryRow(ctx, q, id))
}

func scanSubmission(row interface{ Scan(...any) error }) (*models.Submission, error) {
	var s models.Submission
	var encoded string
	err := row.Scan(&s.ID, &s.ContactFormID, &encoded,
		&s.SubmitterName, &s.SubmitterEmail, &s.SubmitterPhone, &s.Read, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	answers, err := forms.DecodeAnswers(encoded)
	if err != nil {
		return nil, fmt.Errorf("submission %s: %w", s.ID, err)
	}
	s.Answers = answers
	return &s, nil
}

// ListSubmissions returns a form's submissions, newest first, the total
// count and how many are unread.
func (r *Repository) ListSubmissions(ctx context.Context, formID uuid.UUID, page, pageSize int) ([]models.Submission, int, int, error) {
	var total, unread int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE NOT read)
		 FROM contact_form_submissions WHERE contact_form_id = $1`, formID).
		Scan(&total, &unread)
	if err != nil {
		return nil, 0, 0, err
	}

	const q = `SELECT id, contact_form_id, answers, submitter_name, submitter_email, submitter_phone, read, created_at
		FROM contact_form_submissions WHERE contact_form_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, q, formID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()
	var list []models.Submission
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, 0, 0, err
		}
		list = append(list, *s)
	}
	return list, total, unread, rows.Err()
}

// MarkSubmissionRead flips the read flag.
func (r *Repository) MarkSubmissionRead(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE contact_form_submissions SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("submission %s not found", id)
	}
	return nil
}
