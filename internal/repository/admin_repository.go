package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cache2k25/registration-backend/internal/model"
)

// AdminRepo reads and writes rows of the `admins` table.
type AdminRepo struct {
	db *sql.DB
}

// NewAdminRepo returns a new AdminRepo bound to the given database.
func NewAdminRepo(db *sql.DB) *AdminRepo { return &AdminRepo{db: db} }

// GetByEmail returns the admin with the given email or ErrNotFound.
func (r *AdminRepo) GetByEmail(ctx context.Context, email string) (*model.Admin, error) {
	const q = `SELECT id, email, password_hash, created_at FROM admins WHERE email = ?`
	var a model.Admin
	err := r.db.QueryRowContext(ctx, q, email).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Upsert inserts an admin account or replaces the password hash of an
// existing one.  Used by the adminctl provisioning tool.
func (r *AdminRepo) Upsert(ctx context.Context, email, passwordHash string) error {
	const q = `INSERT INTO admins (email, password_hash) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE password_hash = VALUES(password_hash)`
	_, err := r.db.ExecContext(ctx, q, email, passwordHash)
	return err
}
