package reviews

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/festeja/backend/internal/models"
)

// Repository handles review persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a reviews repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a review in pending state. The unique (user, supplier)
// constraint rejects duplicates.
func (r *Repository) Create(ctx context.Context, rev *models.Review) error {
	const q = `INSERT INTO reviews (user_id, supplier_id, rating, comment, status)
		VALUES ($1, $2, $3, $4, 'pending')
		RETURNING id, status, created_at`
	return r.pool.QueryRow(ctx, q, rev.UserID, rev.SupplierID, rev.Rating, rev.Comment).
		Scan(&rev.ID, &rev.Status, &rev.CreatedAt)
}

// GetByID returns one review.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	const q = `SELECT id, user_id, supplier_id, rating, comment, status, created_at
		FROM reviews WHERE id = $1`
	var rev models.Review
	err := r.pool.QueryRow(ctx, q, id).Scan(&rev.ID, &rev.UserID, &rev.SupplierID,
		&rev.Rating, &rev.Comment, &rev.Status, &rev.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rev, nil
}

// ListApproved returns approved reviews for a supplier, newest first, with
// the reviewer's display name.
func (r *Repository) ListApproved(ctx context.Context, supplierID uuid.UUID, page, pageSize int) ([]models.ReviewWithUser, int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM reviews WHERE supplier_id = $1 AND status = 'approved'`,
		supplierID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	const q = `SELECT r.id, r.user_id, r.supplier_id, r.rating, r.comment, r.status, r.created_at, u.name
		FROM reviews r JOIN users u ON u.id = r.user_id
		WHERE r.supplier_id = $1 AND r.status = 'approved'
		ORDER BY r.created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, q, supplierID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var list []models.ReviewWithUser
	for rows.Next() {
		var rev models.ReviewWithUser
		if err := rows.Scan(&rev.ID, &rev.UserID, &rev.SupplierID, &rev.Rating,
			&rev.Comment, &rev.Status, &rev.CreatedAt, &rev.UserName); err != nil {
			return nil, 0, err
		}
		list = append(list, rev)
	}
	return list, total, rows.Err()
}

// ListPending returns reviews awaiting moderation, oldest first.
func (r *Repository) ListPending(ctx context.Context) ([]models.ReviewWithUser, error) {
	const q = `SELECT r.id, r.user_id, r.supplier_id, r.rating, r.comment, r.status, r.created_at, u.name
		FROM reviews r JOIN users u ON u.id = r.user_id
		WHERE r.status = 'pending' ORDER BY r.created_at`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.ReviewWithUser
	for rows.Next() {
		var rev models.ReviewWithUser
		if err := rows.Scan(&rev.ID, &rev.UserID, &rev.SupplierID, &rev.Rating,
			&rev.Comment, &rev.Status, &rev.CreatedAt, &rev.UserName); err != nil {
			return nil, err
		}
		list = append(list, rev)
	}
	return list, rows.Err()
}

// UpdateContent rewrites rating and comment and sends the review back to
// moderation.
func (r *Repository) UpdateContent(ctx context.Context, id uuid.UUID, rating int, comment string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE reviews SET rating = $2, comment = $3, status = 'pending' WHERE id = $1`,
		id, rating, comment)
	return err
}

// SetStatus applies a moderation decision.
func (r *Repository) SetStatus(ctx context.Context, id uuid.UUID, status models.ReviewStatus) error {
	_, err := r.pool.Exec(ctx, `UPDATE reviews SET status = $2 WHERE id = $1`, id, string(status))
	return err
}

// Delete removes a review.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	return err
}
