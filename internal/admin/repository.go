package admin

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ipca-wpd/backend/internal/models"
)

// Repository handles admin account persistence. Accounts are created
// out-of-band by cmd/createadmin and read-only afterwards.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an admin repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetByEmail returns an admin by email, or nil when absent.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	const q = `SELECT id, email, password_hash, created_at FROM admins WHERE email = $1`
	var a models.Admin
	err := r.pool.QueryRow(ctx, q, email).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts an admin account.
func (r *Repository) Create(ctx context.Context, email, passwordHash string) (*models.Admin, error) {
	const q = `INSERT INTO admins (email, password_hash)
		VALUES ($1, $2)
		RETURNING id, email, password_hash, created_at`
	var a models.Admin
	err := r.pool.QueryRow(ctx, q, email, passwordHash).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
