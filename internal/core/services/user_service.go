package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/comfy-credits/backend/internal/apperrors"
	"github.com/comfy-credits/backend/internal/core/domain"
	portsrepo "github.com/comfy-credits/backend/internal/core/ports/repositories"
	portssvc "github.com/comfy-credits/backend/internal/core/ports/services"
	"github.com/comfy-credits/backend/internal/dto"
	"github.com/comfy-credits/backend/internal/utils"
)

type userService struct {
	BaseService
	userRepo  portsrepo.UserRepositoryFacade
	creditSvc portssvc.WelcomeGrantSvc
}

// NewUserService creates the user service. The credit service is needed to
// issue the welcome bonus at registration.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, creditSvc portssvc.WelcomeGrantSvc) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo, creditSvc: creditSvc}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// RegisterUser creates an account and issues the welcome bonus. Emails are
// stored lowercased so uniqueness is case-insensitive. If the welcome grant
// fails after the user row committed, the failure is logged and the account
// stands; the grant is never a reason to lose a registration.
func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:         uuid.NewString(),
		Name:           strings.TrimSpace(req.Name),
		Email:          email,
		PasswordHash:   hash,
		Role:           domain.RoleUser,
		CreditsBalance: 0,
		CreatedAt:      now,
		LastUpdatedAt:  now,
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewAppError(409, "an account with this email already exists", apperrors.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	entry, err := s.creditSvc.GrantWelcomeBonus(ctx, user.UserID)
	if err != nil {
		s.LogError(ctx, err, "Welcome bonus grant failed after registration", "new_user_id", user.UserID)
	} else {
		user.CreditsBalance = entry.ResultingBalance
	}

	s.LogInfo(ctx, "User registered", "new_user_id", user.UserID)
	return &user, nil
}

// AuthenticateUser verifies email and password. A missing user and a wrong
// password return the same error so the response does not reveal which
// accounts exist.
func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewAppError(401, "invalid email or password", apperrors.ErrValidation)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.NewAppError(401, "invalid email or password", apperrors.ErrValidation)
	}

	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, params dto.ListUsersParams) ([]domain.UserWithRunCount, error) {
	users, err := s.userRepo.SearchUsers(ctx, strings.TrimSpace(params.Search), params.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
