package domain

import "time"

// UserRole defines the authorization role of a user.
type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

// User represents a registered user of the platform in the domain.
// CreditsBalance is owned by the ledger repository; services never write it directly.
type User struct {
	UserID         string     `json:"userID"` // Primary Key (UUID)
	Name           string     `json:"name"`
	Email          string     `json:"email"` // Stored lowercased, unique
	PasswordHash   string     `json:"-"`
	Role           UserRole   `json:"role"`
	CreditsBalance int64      `json:"creditsBalance"`
	CreatedAt      time.Time  `json:"createdAt"`
	LastUpdatedAt  time.Time  `json:"lastUpdatedAt"`
	DeletedAt      *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}

// IsAdmin reports whether the user holds the administrator role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserWithRunCount is a User annotated with the number of workflow runs they
// have started. Used by the admin user listing.
type UserWithRunCount struct {
	User
	RunCount int64 `json:"runCount"`
}
