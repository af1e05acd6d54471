package services

import (
	"context"

	"github.com/comfy-credits/backend/internal/core/domain"
	"github.com/comfy-credits/backend/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListUsers retrieves users for the admin panel, optionally filtered by a
	// search term over name and email.
	ListUsers(ctx context.Context, params dto.ListUsersParams) ([]domain.UserWithRunCount, error)
}

// UserRegistrationSvc defines account creation.
type UserRegistrationSvc interface {
	// RegisterUser creates a new user account and issues the welcome bonus.
	// A welcome-grant failure after the user row committed is logged and the
	// user is still returned; the account is never rolled back for it.
	RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)
}

// UserAuthSvc defines operations for user authentication
type UserAuthSvc interface {
	// AuthenticateUser authenticates a user with email and password.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserRegistrationSvc
	UserAuthSvc
}
