package repositories

import (
	"context"

	"github.com/comfy-credits/backend/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by their (lowercased) email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// SearchUsers retrieves users matching the optional search term on name or
	// email, newest first, annotated with their workflow run counts.
	SearchUsers(ctx context.Context, search string, limit int) ([]domain.UserWithRunCount, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
