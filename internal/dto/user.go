package dto

import (
	"time"

	"github.com/comfy-credits/backend/internal/core/domain"
)

// RegisterRequest defines the payload for user registration.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// RegisterResponse is returned on successful registration.
type RegisterResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// LoginRequest defines the payload for login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the session token for an authenticated user.
type LoginResponse struct {
	Token string `json:"token"`
}

// UserResponse is the caller-facing representation of a user.
type UserResponse struct {
	UserID         string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	CreditsBalance int64     `json:"creditsBalance"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ToUserResponse converts a domain.User to a UserResponse DTO
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:         user.UserID,
		Name:           user.Name,
		Email:          user.Email,
		Role:           string(user.Role),
		CreditsBalance: user.CreditsBalance,
		CreatedAt:      user.CreatedAt,
	}
}

// ListUsersParams defines query parameters for the admin user listing.
type ListUsersParams struct {
	Search string `form:"search"`
	Limit  int    `form:"limit,default=50"`
}

// AdminUserResponse is a UserResponse annotated with the user's run count.
type AdminUserResponse struct {
	UserResponse
	RunCount int64 `json:"runCount"`
}

// ListUsersResponse wraps the admin user listing.
type ListUsersResponse struct {
	Users []AdminUserResponse `json:"users"`
}

// ToListUsersResponse converts annotated domain users to the admin listing DTO
func ToListUsersResponse(users []domain.UserWithRunCount) ListUsersResponse {
	out := make([]AdminUserResponse, len(users))
	for i := range users {
		out[i] = AdminUserResponse{
			UserResponse: ToUserResponse(&users[i].User),
			RunCount:     users[i].RunCount,
		}
	}
	return ListUsersResponse{Users: out}
}
