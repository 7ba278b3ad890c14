package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/trademart/catalog_api/internal/models"
)

// ProductTypeRepository handles data access for the product-type reference data.
type ProductTypeRepository struct {
	db *sqlx.DB
}

// NewProductTypeRepository creates a new ProductTypeRepository.
func NewProductTypeRepository(db *sqlx.DB) *ProductTypeRepository {
	return &ProductTypeRepository{db: db}
}

// GetAll returns all product types ordered by label.
func (r *ProductTypeRepository) GetAll(ctx context.Context) ([]models.ProductType, error) {
	const q = `SELECT id, label FROM product_types ORDER BY label`

	types := []models.ProductType{}
	if err := r.db.SelectContext(ctx, &types, q); err != nil {
		return nil, err
	}
	return types, nil
}

// GetByID returns a single product type by id.
func (r *ProductTypeRepository) GetByID(ctx context.Context, id int) (*models.ProductType, error) {
	const q = `SELECT id, label FROM product_types WHERE id = $1`

	var pt models.ProductType
	if err := r.db.GetContext(ctx, &pt, q, id); err != nil {
		return nil, err
	}
	return &pt, nil
}
