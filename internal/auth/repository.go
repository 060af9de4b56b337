package auth

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aura-scheduling/backend/internal/models"
)

// Repository handles user lookups.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an auth repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetByID returns a user by ID.
func (r *Repository) GetByID(ctx context.Context, id int) (*models.User, error) {
	const q = `SELECT id, email, password_hash, COALESCE(name,''), COALESCE(time_zone,''), created_at
		FROM users WHERE id = $1`
	var u models.User
	err := r.pool.QueryRow(ctx, q, id).Scan(&u.ID, &u.Email, &u.Password, &u.Name, &u.TimeZone, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail returns a user by email.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	const q = `SELECT id, email, password_hash, COALESCE(name,''), COALESCE(time_zone,''), created_at
		FROM users WHERE email = $1`
	var u models.User
	err := r.pool.QueryRow(ctx, q, email).Scan(&u.ID, &u.Email, &u.Password, &u.Name, &u.TimeZone, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
