package media

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/festeja/backend/internal/models"
)

// Repository handles media item persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a media repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a media item.
func (r *Repository) Create(ctx context.Context, m *models.Media) error {
	const q = `INSERT INTO media_items (supplier_id, media_type, url, s3_key)
		VALUES ($1, $2, $3, $4)
		RETURNING id, uploaded_at`
	return r.pool.QueryRow(ctx, q, m.SupplierID, string(m.Type), m.URL, m.S3Key).
		Scan(&m.ID, &m.UploadedAt)
}

// GetByID returns one media item.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Media, error) {
	const q = `SELECT id, supplier_id, media_type, url, s3_key, uploaded_at
		FROM media_items WHERE id = $1`
	var m models.Media
	err := r.pool.QueryRow(ctx, q, id).Scan(&m.ID, &m.SupplierID, &m.Type, &m.URL, &m.S3Key, &m.UploadedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListForSupplier returns a supplier's media, newest first, optionally
// filtered by type.
func (r *Repository) ListForSupplier(ctx context.Context, supplierID uuid.UUID, mediaType string) ([]models.Media, error) {
	q := `SELECT id, supplier_id, media_type, url, s3_key, uploaded_at
		FROM media_items WHERE supplier_id = $1`
	args := []interface{}{supplierID}
	if mediaType != "" {
		q += ` AND media_type = $2`
		args = append(args, mediaType)
	}
	q += ` ORDER BY uploaded_at DESC`
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Media
	for rows.Next() {
		var m models.Media
		if err := rows.Scan(&m.ID, &m.SupplierID, &m.Type, &m.URL, &m.S3Key, &m.UploadedAt); err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// CountByType returns how many items of one type the supplier already has.
func (r *Repository) CountByType(ctx context.Context, supplierID uuid.UUID, mediaType models.MediaType) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM media_items WHERE supplier_id = $1 AND media_type = $2`,
		supplierID, string(mediaType)).Scan(&n)
	return n, err
}

// Delete removes a media item row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM media_items WHERE id = $1`, id)
	return err
}
