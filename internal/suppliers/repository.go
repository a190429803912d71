package suppliers

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/festeja/backend/internal/models"
)

// supplierColumns is the select list shared by all supplier queries; the
// trailing subquery folds in the average of approved review ratings.
const supplierColumns = `s.id, s.user_id, s.supplier_type, s.fantasy_name, s.legal_name, s.cnpj,
	s.description, s.category_id, s.address, s.zip_code, s.city, s.state, s.price_range,
	s.phone, s.email, s.instagram_url, s.whatsapp_url, s.site_url, s.status,
	(SELECT ROUND(AVG(rating)::numeric, 1) FROM reviews WHERE supplier_id = s.id AND status = 'approved'),
	s.created_at`

// Repository handles supplier persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a suppliers repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanSupplier(row interface{ Scan(...any) error }) (*models.Supplier, error) {
	var s models.Supplier
	err := row.Scan(&s.ID, &s.UserID, &s.Type, &s.FantasyName, &s.LegalName, &s.CNPJ,
		&s.Description, &s.CategoryID, &s.Address, &s.ZipCode, &s.City, &s.State, &s.PriceRange,
		&s.Phone, &s.Email, &s.InstagramURL, &s.WhatsappURL, &s.SiteURL, &s.Status,
		&s.AvgRating, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a supplier profile and fills generated fields.
func (r *Repository) Create(ctx context.Context, s *models.Supplier) error {
	const q = `INSERT INTO suppliers
		(user_id, supplier_type, fantasy_name, legal_name, cnpj, description, category_id,
		 address, zip_code, city, state, price_range, phone, email,
		 instagram_url, whatsapp_url, site_url, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
		RETURNING id, created_at`
	return r.pool.QueryRow(ctx, q,
		s.UserID, string(s.Type), s.FantasyName, s.LegalName, s.CNPJ, s.Description, s.CategoryID,
		s.Address, s.ZipCode, s.City, s.State, s.PriceRange, s.Phone, s.Email,
		s.InstagramURL, s.WhatsappURL, s.SiteURL, string(s.Status)).
		Scan(&s.ID, &s.CreatedAt)
}

// GetByID returns one supplier with its average approved rating.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error) {
	q := `SELECT ` + supplierColumns + ` FROM suppliers s WHERE s.id = $1`
	return scanSupplier(r.pool.QueryRow(ctx, q, id))
}

// GetByUserID returns the supplier profile owned by a user.
func (r *Repository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Supplier, error) {
	q := `SELECT ` + supplierColumns + ` FROM suppliers s WHERE s.user_id = $1`
	return scanSupplier(r.pool.QueryRow(ctx, q, userID))
}

// ListFilter narrows the public supplier listing.
type ListFilter struct {
	City       string
	State      string
	CategoryID *uuid.UUID
	PriceRange string
	Search     string // matches fantasy name and description
	OrderBy    string // "rating" or "created_at" (default)
	Page       int
	PageSize   int
}

// List returns active suppliers matching the filter plus the total count
// before pagination.
func (r *Repository) List(ctx context.Context, f ListFilter) ([]models.Supplier, int, error) {
	conds := []string{"s.status = 'active'"}
	var args []interface{}
	add := func(cond string, val interface{}) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.City != "" {
		add("LOWER(s.city) = LOWER($%d)", f.City)
	}
	if f.State != "" {
		add("LOWER(s.state) = LOWER($%d)", f.State)
	}
	if f.CategoryID != nil {
		add("s.category_id = $%d", *f.CategoryID)
	}
	if f.PriceRange != "" {
		add("s.price_range = $%d", f.PriceRange)
	}
	if f.Search != "" {
		args = append(args, f.Search)
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(s.fantasy_name ILIKE '%%' || $%d || '%%' OR s.description ILIKE '%%' || $%d || '%%')", n, n))
	}
	where := " WHERE " + strings.Join(conds, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM suppliers s`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	order := " ORDER BY s.created_at DESC"
	if f.OrderBy == "rating" {
		order = ` ORDER BY (SELECT AVG(rating) FROM reviews WHERE supplier_id = s.id AND status = 'approved') DESC NULLS LAST`
	}
	offset := (f.Page - 1) * f.PageSize
	args = append(args, f.PageSize, offset)
	q := fmt.Sprintf(`SELECT %s FROM suppliers s%s%s LIMIT $%d OFFSET $%d`,
		supplierColumns, where, order, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var list []models.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, *s)
	}
	return list, total, rows.Err()
}

// Random returns up to n active suppliers in random order, for homepage
// discovery sections.
func (r *Repository) Random(ctx context.Context, n int) ([]models.Supplier, error) {
	q := `SELECT ` + supplierColumns + ` FROM suppliers s WHERE s.status = 'active' ORDER BY random() LIMIT $1`
	rows, err := r.pool.Query(ctx, q, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *s)
	}
	return list, rows.Err()
}

// Update rewrites the editable profile fields.
func (r *Repository) Update(ctx context.Context, s *models.Supplier) error {
	const q = `UPDATE suppliers SET
		supplier_type = $2, fantasy_name = $3, legal_name = $4, cnpj = $5, description = $6,
		category_id = $7, address = $8, zip_code = $9, city = $10, state = $11,
		price_range = $12, phone = $13, email = $14,
		instagram_url = $15, whatsapp_url = $16, site_url = $17
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, q,
		s.ID, string(s.Type), s.FantasyName, s.LegalName, s.CNPJ, s.Description,
		s.CategoryID, s.Address, s.ZipCode, s.City, s.State,
		s.PriceRange, s.Phone, s.Email,
		s.InstagramURL, s.WhatsappURL, s.SiteURL)
	return err
}

// SetStatus changes a supplier's visibility (admin moderation).
func (r *Repository) SetStatus(ctx context.Context, id uuid.UUID, status models.SupplierStatus) error {
	tag, err := r.pool.Exec(ctx, `UPDATE suppliers SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("supplier %s not found", id)
	}
	return nil
}

// Delete removes a supplier profile. Media rows, reviews and the contact
// form cascade.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	return err
}
