package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/trademart/catalog_api/internal/models"
)

// PreferenceRepository handles data access for user reactions to products.
type PreferenceRepository struct {
	db *sqlx.DB
}

// NewPreferenceRepository creates a new PreferenceRepository.
func NewPreferenceRepository(db *sqlx.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// CountByProductAndUser returns how many preference rows exist for the
// (product, user) pair. The detail view only needs existence.
func (r *PreferenceRepository) CountByProductAndUser(ctx context.Context, productID, userID int) (int, error) {
	const q = `SELECT COUNT(1) FROM preferences WHERE product_id = $1 AND user_id = $2`

	var count int
	if err := r.db.GetContext(ctx, &count, q, productID, userID); err != nil {
		return 0, err
	}
	return count, nil
}

// Create inserts a new preference row and assigns its generated id.
func (r *PreferenceRepository) Create(ctx context.Context, pref *models.Preference) error {
	const q = `
	    INSERT INTO preferences (user_id, product_id, liked)
	    VALUES ($1, $2, $3)
	    RETURNING id, created_at`

	return r.db.QueryRowxContext(ctx, q, pref.UserID, pref.ProductID, pref.Liked).
		Scan(&pref.ID, &pref.CreatedAt)
}
