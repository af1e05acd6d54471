package models

import "time"

// UserRole defines the authorization role of a user.
type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

// User represents a row of the users table.
type User struct {
	UserID         string     `db:"user_id"`
	Name           string     `db:"name"`
	Email          string     `db:"email"`
	PasswordHash   string     `db:"password_hash"`
	Role           UserRole   `db:"role"`
	CreditsBalance int64      `db:"credits_balance"` // CHECK (credits_balance >= 0)
	CreatedAt      time.Time  `db:"created_at"`
	LastUpdatedAt  time.Time  `db:"last_updated_at"`
	DeletedAt      *time.Time `db:"deleted_at"` // Nullable, soft delete
}
