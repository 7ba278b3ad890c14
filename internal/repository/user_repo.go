package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/trademart/catalog_api/internal/models"
)

// UserRepository handles data access for application users.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID returns a single user by id.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	const q = `SELECT id, email, password_hash, name, created_at FROM users WHERE id = $1`

	var u models.User
	if err := r.db.GetContext(ctx, &u, q, id); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail returns a single user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	const q = `SELECT id, email, password_hash, name, created_at FROM users WHERE email = $1`

	var u models.User
	if err := r.db.GetContext(ctx, &u, q, email); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user and assigns its generated id.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	const q = `
	    INSERT INTO users (email, password_hash, name)
	    VALUES ($1, $2, $3)
	    RETURNING id, created_at`

	return r.db.QueryRowxContext(ctx, q, user.Email, user.PasswordHash, user.Name).
		Scan(&user.ID, &user.CreatedAt)
}
