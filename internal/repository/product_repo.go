package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/trademart/catalog_api/internal/models"
)

// ProductRepository handles data access for products.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// ListFilter holds the optional text predicates for product listing.
// Empty fields impose no restriction.
type ListFilter struct {
	Title string
	City  string
}

// WhereClause builds the WHERE clause and positional args for the filter.
// Predicates are appended only for non-empty fields and combined with AND.
// Returns an empty clause when no filter is set.
func (f ListFilter) WhereClause() (string, []interface{}) {
	where := ""
	args := []interface{}{}
	argIdx := 1

	appendPred := func(pred string, value interface{}) {
		if where == "" {
			where = "WHERE " + pred
		} else {
			where += " AND " + pred
		}
		args = append(args, value)
		argIdx++
	}

	if f.Title != "" {
		appendPred(fmt.Sprintf("title ILIKE '%%' || $%d || '%%'", argIdx), f.Title)
	}
	if f.City != "" {
		appendPred(fmt.Sprintf("city ILIKE '%%' || $%d || '%%'", argIdx), f.City)
	}
	return where, args
}

// List returns the products matching the filter. An empty result is valid.
func (r *ProductRepository) List(ctx context.Context, filter ListFilter) ([]models.Product, error) {
	where, args := filter.WhereClause()
	query := `SELECT id, title, description, price, quantity, city, image_path,
	                 active, date_created, user_id, product_type_id
	          FROM products ` + where + ` ORDER BY id`

	products := []models.Product{}
	if err := r.db.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, err
	}
	return products, nil
}

// GetByID returns a single product by id with its product type eager-loaded.
func (r *ProductRepository) GetByID(ctx context.Context, id int) (*models.Product, error) {
	const q = `
	    SELECT p.id, p.title, p.description, p.price, p.quantity, p.city,
	           p.image_path, p.active, p.date_created, p.user_id, p.product_type_id,
	           pt.label AS product_type_label
	    FROM products p
	    JOIN product_types pt ON pt.id = p.product_type_id
	    WHERE p.id = $1`

	var p models.Product
	if err := r.db.GetContext(ctx, &p, q, id); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new product and assigns its generated id.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	const q = `
	    INSERT INTO products (title, description, price, quantity, city, image_path,
	                          active, date_created, user_id, product_type_id)
	    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	    RETURNING id`

	return r.db.QueryRowxContext(ctx, q,
		product.Title,
		product.Description,
		product.Price,
		product.Quantity,
		product.City,
		product.ImagePath,
		product.Active,
		product.DateCreated,
		product.UserID,
		product.ProductTypeID,
	).Scan(&product.ID)
}

// Update updates an existing product.
func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	const q = `
	    UPDATE products
	    SET title = $1, description = $2, price = $3, quantity = $4, city = $5,
	        image_path = $6, active = $7, product_type_id = $8
	    WHERE id = $9`

	_, err := r.db.ExecContext(ctx, q,
		product.Title,
		product.Description,
		product.Price,
		product.Quantity,
		product.City,
		product.ImagePath,
		product.Active,
		product.ProductTypeID,
		product.ID,
	)
	return err
}

// Delete deletes a product by id.
func (r *ProductRepository) Delete(ctx context.Context, id int) error {
	const q = `DELETE FROM products WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
