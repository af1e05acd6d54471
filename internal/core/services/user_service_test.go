package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/comfy-credits/backend/internal/apperrors"
	"github.com/comfy-credits/backend/internal/core/domain"
	"github.com/comfy-credits/backend/internal/core/services"
	portssvc "github.com/comfy-credits/backend/internal/core/ports/services"
	"github.com/comfy-credits/backend/internal/dto"
	"github.com/comfy-credits/backend/internal/utils"
)

// MockUserRepository is a mock type for the UserRepositoryFacade interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SearchUsers(ctx context.Context, search string, limit int) ([]domain.UserWithRunCount, error) {
	args := m.Called(ctx, search, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserWithRunCount), args.Error(1)
}

// MockWelcomeGranter is a mock type for the WelcomeGrantSvc interface
type MockWelcomeGranter struct {
	mock.Mock
}

func (m *MockWelcomeGranter) GrantWelcomeBonus(ctx context.Context, userID string) (*domain.CreditEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditEntry), args.Error(1)
}

// --- Test Suite Setup ---

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo    *MockUserRepository
	mockGranter *MockWelcomeGranter
	service     portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.mockGranter = new(MockWelcomeGranter)
	suite.service = services.NewUserService(suite.mockRepo, suite.mockGranter)
}

// --- Registration ---

func (suite *UserServiceTestSuite) TestRegisterUser_Success() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		Name:     "Ana Torres",
		Email:    "Ana.Torres@Example.COM",
		Password: "correct-horse",
	}

	suite.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()
	suite.mockGranter.On("GrantWelcomeBonus", ctx, mock.AnythingOfType("string")).
		Return(&domain.CreditEntry{Delta: 5, ResultingBalance: 5, Kind: domain.EntryKindWelcome}, nil).Once()

	user, err := suite.service.RegisterUser(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.NotEmpty(user.UserID)
	suite.Equal("Ana Torres", user.Name)
	suite.Equal("ana.torres@example.com", user.Email)
	suite.Equal(domain.RoleUser, user.Role)
	suite.Equal(int64(5), user.CreditsBalance)
	suite.True(utils.CheckPasswordHash("correct-horse", user.PasswordHash))
	suite.WithinDuration(time.Now(), user.CreatedAt, time.Second)

	saved := suite.mockRepo.Calls[0].Arguments.Get(1).(domain.User)
	suite.Equal("ana.torres@example.com", saved.Email)
	suite.Zero(saved.CreditsBalance)

	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockGranter.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegisterUser_DuplicateEmail() {
	ctx := context.Background()
	req := dto.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "correct-horse"}

	suite.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
		Return(apperrors.ErrDuplicate).Once()

	user, err := suite.service.RegisterUser(ctx, req)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockGranter.AssertNotCalled(suite.T(), "GrantWelcomeBonus")
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegisterUser_WelcomeGrantFailureKeepsAccount() {
	ctx := context.Background()
	req := dto.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "correct-horse"}

	suite.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()
	suite.mockGranter.On("GrantWelcomeBonus", ctx, mock.AnythingOfType("string")).
		Return(nil, assert.AnError).Once()

	user, err := suite.service.RegisterUser(ctx, req)

	// The account stands even though the bonus failed.
	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.Zero(user.CreditsBalance)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockGranter.AssertExpectations(suite.T())
}

// --- Authentication ---

func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-horse")
	suite.Require().NoError(err)

	stored := &domain.User{
		UserID:       uuid.NewString(),
		Email:        "ana@example.com",
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
	suite.mockRepo.On("FindUserByEmail", ctx, "ana@example.com").Return(stored, nil).Once()

	user, err := suite.service.AuthenticateUser(ctx, "Ana@Example.com", "correct-horse")

	suite.Require().NoError(err)
	suite.Equal(stored.UserID, user.UserID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-horse")
	suite.Require().NoError(err)

	stored := &domain.User{UserID: uuid.NewString(), Email: "ana@example.com", PasswordHash: hash}
	suite.mockRepo.On("FindUserByEmail", ctx, "ana@example.com").Return(stored, nil).Once()

	user, err := suite.service.AuthenticateUser(ctx, "ana@example.com", "wrong")

	suite.Require().Error(err)
	suite.Nil(user)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_UnknownEmailSameError() {
	ctx := context.Background()
	suite.mockRepo.On("FindUserByEmail", ctx, "nobody@example.com").
		Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.AuthenticateUser(ctx, "nobody@example.com", "whatever")

	suite.Require().Error(err)
	suite.Nil(user)
	// Unknown account must not be distinguishable from a wrong password.
	suite.NotErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Admin listing ---

func (suite *UserServiceTestSuite) TestListUsers_PassesSearchAndLimit() {
	ctx := context.Background()
	expected := []domain.UserWithRunCount{
		{User: domain.User{UserID: uuid.NewString(), Name: "Ana"}, RunCount: 3},
	}
	suite.mockRepo.On("SearchUsers", ctx, "ana", 50).Return(expected, nil).Once()

	users, err := suite.service.ListUsers(ctx, dto.ListUsersParams{Search: "  ana ", Limit: 50})

	suite.Require().NoError(err)
	suite.Equal(expected, users)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
