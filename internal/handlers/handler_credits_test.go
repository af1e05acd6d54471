package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/comfy-credits/backend/internal/apperrors"
	"github.com/comfy-credits/backend/internal/core/domain"
	portssvc "github.com/comfy-credits/backend/internal/core/ports/services"
	"github.com/comfy-credits/backend/internal/dto"
	"github.com/comfy-credits/backend/internal/handlers"
	"github.com/comfy-credits/backend/internal/platform/config"
	"github.com/comfy-credits/backend/internal/utils"
)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context, params dto.ListUsersParams) ([]domain.UserWithRunCount, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserWithRunCount), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock CreditService ---
type MockCreditService struct {
	mock.Mock
}

func (m *MockCreditService) GetBalance(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCreditService) ListEntries(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.CreditEntry, *string, error) {
	args := m.Called(ctx, userID, limit, nextToken)
	var entries []domain.CreditEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.CreditEntry)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return entries, token, args.Error(2)
}

func (m *MockCreditService) AdjustBalance(ctx context.Context, userID string, delta int64, kind domain.CreditEntryKind, description string, actorID *string) (*domain.CreditEntry, error) {
	args := m.Called(ctx, userID, delta, kind, description, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditEntry), args.Error(1)
}

func (m *MockCreditService) GrantWelcomeBonus(ctx context.Context, userID string) (*domain.CreditEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditEntry), args.Error(1)
}

func (m *MockCreditService) AdminAdjustCredits(ctx context.Context, targetUserID string, amount int64, reason string, actor *domain.User) (int64, error) {
	args := m.Called(ctx, targetUserID, amount, reason, actor)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCreditService) ConsumeForWorkflowRun(ctx context.Context, userID string, workflow *domain.Workflow) (*domain.CreditEntry, error) {
	args := m.Called(ctx, userID, workflow)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditEntry), args.Error(1)
}

var _ portssvc.CreditSvcFacade = (*MockCreditService)(nil)

// --- Mock WorkflowService ---
type MockWorkflowService struct {
	mock.Mock
}

func (m *MockWorkflowService) GetWorkflowByID(ctx context.Context, workflowID string) (*domain.Workflow, error) {
	args := m.Called(ctx, workflowID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workflow), args.Error(1)
}

func (m *MockWorkflowService) ListWorkflows(ctx context.Context, includeInactive bool) ([]domain.Workflow, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Workflow), args.Error(1)
}

func (m *MockWorkflowService) CreateWorkflow(ctx context.Context, req dto.CreateWorkflowRequest) (*domain.Workflow, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workflow), args.Error(1)
}

func (m *MockWorkflowService) UpdateWorkflow(ctx context.Context, workflowID string, req dto.UpdateWorkflowRequest) (*domain.Workflow, error) {
	args := m.Called(ctx, workflowID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workflow), args.Error(1)
}

func (m *MockWorkflowService) RunWorkflow(ctx context.Context, userID string, workflowID string) (*domain.WorkflowRun, int64, error) {
	args := m.Called(ctx, userID, workflowID)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*domain.WorkflowRun), args.Get(1).(int64), args.Error(2)
}

var _ portssvc.WorkflowSvcFacade = (*MockWorkflowService)(nil)

// --- Test Suite ---

type CreditsHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockUserSvc     *MockUserService
	mockCreditSvc   *MockCreditService
	mockWorkflowSvc *MockWorkflowService
	jwtSecret       string
}

func (suite *CreditsHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockUserSvc = new(MockUserService)
	suite.mockCreditSvc = new(MockCreditService)
	suite.mockWorkflowSvc = new(MockWorkflowService)

	cfg := &config.Config{
		JWTSecret:         suite.jwtSecret,
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "credits-test",
	}
	services := &portssvc.ServiceContainer{
		User:     suite.mockUserSvc,
		Credit:   suite.mockCreditSvc,
		Workflow: suite.mockWorkflowSvc,
	}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

func (suite *CreditsHandlerTestSuite) generateTestToken(userID string) string {
	token, err := utils.GenerateJWT(userID, suite.jwtSecret, time.Hour, "credits-test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *CreditsHandlerTestSuite) expectAdmin(adminID string) *domain.User {
	admin := &domain.User{
		UserID: adminID,
		Name:   "Admin",
		Email:  "admin@example.com",
		Role:   domain.RoleAdmin,
	}
	suite.mockUserSvc.On("GetUserByID", mock.Anything, adminID).Return(admin, nil).Once()
	return admin
}

// --- Test Cases ---

func (suite *CreditsHandlerTestSuite) TestGetMyCreditHistory_Success() {
	userID := uuid.NewString()
	entries := []domain.CreditEntry{
		{EntryID: uuid.NewString(), UserID: userID, Delta: 5, ResultingBalance: 5, Kind: domain.EntryKindWelcome, Description: "Welcome bonus", CreatedAt: time.Now()},
	}

	suite.mockCreditSvc.On("GetBalance", mock.Anything, userID).Return(int64(5), nil).Once()
	suite.mockCreditSvc.On("ListEntries", mock.Anything, userID, 20, (*string)(nil)).
		Return(entries, nil, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/credits", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.CreditHistoryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(5), resp.Balance)
	suite.Len(resp.Entries, 1)
	suite.Equal("Welcome bonus", resp.Entries[0].Description)
	suite.mockCreditSvc.AssertExpectations(suite.T())
}

func (suite *CreditsHandlerTestSuite) TestGetMyCreditHistory_NoToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/credits", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockCreditSvc.AssertNotCalled(suite.T(), "GetBalance")
}

func (suite *CreditsHandlerTestSuite) TestAdjustUserCredits_Success() {
	adminID := uuid.NewString()
	targetID := uuid.NewString()
	admin := suite.expectAdmin(adminID)

	suite.mockCreditSvc.On("AdminAdjustCredits", mock.Anything, targetID, int64(25), "Recarga manual", admin).
		Return(int64(35), nil).Once()

	body, _ := json.Marshal(dto.AdminAdjustCreditsRequest{Amount: 25, Description: "Recarga manual"})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/admin/users/"+targetID+"/credits", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(adminID))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.AdminAdjustCreditsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.Equal(int64(35), resp.NewBalance)
	suite.mockCreditSvc.AssertExpectations(suite.T())
	suite.mockUserSvc.AssertExpectations(suite.T())
}

func (suite *CreditsHandlerTestSuite) TestAdjustUserCredits_NonAdminForbidden() {
	callerID := uuid.NewString()
	suite.mockUserSvc.On("GetUserByID", mock.Anything, callerID).
		Return(&domain.User{UserID: callerID, Role: domain.RoleUser}, nil).Once()

	body, _ := json.Marshal(dto.AdminAdjustCreditsRequest{Amount: 25, Description: "Recarga manual"})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/admin/users/"+uuid.NewString()+"/credits", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(callerID))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockCreditSvc.AssertNotCalled(suite.T(), "AdminAdjustCredits")
}

func (suite *CreditsHandlerTestSuite) TestAdjustUserCredits_InsufficientBalance() {
	adminID := uuid.NewString()
	targetID := uuid.NewString()
	admin := suite.expectAdmin(adminID)

	suite.mockCreditSvc.On("AdminAdjustCredits", mock.Anything, targetID, int64(-50), "correction", admin).
		Return(int64(0), apperrors.ErrInsufficientBalance).Once()

	body, _ := json.Marshal(dto.AdminAdjustCreditsRequest{Amount: -50, Description: "correction"})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/admin/users/"+targetID+"/credits", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(adminID))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "Insufficient credits")
	suite.mockCreditSvc.AssertExpectations(suite.T())
}

func (suite *CreditsHandlerTestSuite) TestAdjustUserCredits_ZeroAmountRejected() {
	adminID := uuid.NewString()
	suite.expectAdmin(adminID)

	body := []byte(`{"amount": 0, "description": "noop"}`)
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/admin/users/"+uuid.NewString()+"/credits", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(adminID))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockCreditSvc.AssertNotCalled(suite.T(), "AdminAdjustCredits")
}

func TestCreditsHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(CreditsHandlerTestSuite))
}
