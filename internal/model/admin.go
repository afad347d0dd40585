package model

import "time"

// Admin represents a row in the `admins` table.  Only the bcrypt hash of
// the password is stored; admins are provisioned with the adminctl tool.
type Admin struct {
	ID           uint64    // admins.id
	Email        string    // admins.email
	PasswordHash string    // admins.password_hash
	CreatedAt    time.Time // admins.created_at
}
