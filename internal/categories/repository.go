package categories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/festeja/backend/internal/models"
)

// Repository handles category persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a categories repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns categories, optionally including inactive ones.
func (r *Repository) List(ctx context.Context, includeInactive bool) ([]models.Category, error) {
	q := `SELECT id, name, origin, active FROM categories`
	if !includeInactive {
		q += ` WHERE active`
	}
	q += ` ORDER BY name`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Category
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Origin, &cat.Active); err != nil {
			return nil, err
		}
		list = append(list, cat)
	}
	return list, rows.Err()
}

// GetByID returns one category.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	const q = `SELECT id, name, origin, active FROM categories WHERE id = $1`
	var cat models.Category
	err := r.pool.QueryRow(ctx, q, id).Scan(&cat.ID, &cat.Name, &cat.Origin, &cat.Active)
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// Create inserts an admin-managed category.
func (r *Repository) Create(ctx context.Context, name string) (*models.Category, error) {
	const q = `INSERT INTO categories (name, origin) VALUES ($1, 'manual')
		RETURNING id, name, origin, active`
	var cat models.Category
	err := r.pool.QueryRow(ctx, q, name).Scan(&cat.ID, &cat.Name, &cat.Origin, &cat.Active)
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// Update renames a category and/or toggles its visibility.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, name string, active bool) (*models.Category, error) {
	const q = `UPDATE categories SET name = $2, active = $3 WHERE id = $1
		RETURNING id, name, origin, active`
	var cat models.Category
	err := r.pool.QueryRow(ctx, q, id, name, active).Scan(&cat.ID, &cat.Name, &cat.Origin, &cat.Active)
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// Delete removes a manual category. Fixed categories are refused by the handler.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	return err
}
