package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/emanuelpaduret/alex-backend/models"
	"github.com/emanuelpaduret/alex-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockSubmissionService implements services.SubmissionServiceInterface
type MockSubmissionService struct {
	mock.Mock
}

func (m *MockSubmissionService) Create(ctx context.Context, sub *models.Submission, meta services.IngestMeta) (*models.Submission, error) {
	args := m.Called(ctx, sub, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Submission), args.Error(1)
}

func (m *MockSubmissionService) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Submission), args.Error(1)
}

func (m *MockSubmissionService) List(ctx context.Context, params models.SubmissionListParams) (*models.SubmissionList, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubmissionList), args.Error(1)
}

func (m *MockSubmissionService) Replace(ctx context.Context, id string, sub *models.Submission) (*models.Submission, error) {
	args := m.Called(ctx, id, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Submission), args.Error(1)
}

func (m *MockSubmissionService) UpdateStatus(ctx context.Context, id string, update models.StatusUpdate) (*models.Submission, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Submission), args.Error(1)
}

func (m *MockSubmissionService) Delete(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockSubmissionService) BulkUpdateStatus(ctx context.Context, req models.BulkStatusUpdateRequest) (*models.BulkUpdateResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BulkUpdateResult), args.Error(1)
}

// MockLogger is a no-op logger for handler tests
type MockLogger struct{}

func (m *MockLogger) Debug(args ...interface{})                 {}
func (m *MockLogger) Debugf(format string, args ...interface{}) {}
func (m *MockLogger) Info(args ...interface{})                  {}
func (m *MockLogger) Infof(format string, args ...interface{})  {}
func (m *MockLogger) Warn(args ...interface{})                  {}
func (m *MockLogger) Warnf(format string, args ...interface{})  {}
func (m *MockLogger) Error(args ...interface{})                 {}
func (m *MockLogger) Errorf(format string, args ...interface{}) {}
func (m *MockLogger) Fatal(args ...interface{})                 {}
func (m *MockLogger) Fatalf(format string, args ...interface{}) {}

// SubmissionControllerTestSuite defines a test suite for the submission handlers
type SubmissionControllerTestSuite struct {
	suite.Suite
	mockService *MockSubmissionService
	router      *gin.Engine
}

func (suite *SubmissionControllerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockService = &MockSubmissionService{}
	cfg := &models.Config{AppEnv: "test"}
	h := NewSubmissionController(context.Background(), suite.mockService, cfg, &MockLogger{})

	suite.router = gin.New()
	api := suite.router.Group("/api/v1")
	api.POST("/submissions", h.Create)
	api.POST("/submissions/webhook", h.CreateWebhook)
	api.GET("/submissions", h.List)
	api.PATCH("/submissions/bulk/status", h.BulkUpdateStatus)
	api.GET("/submissions/:id", h.Get)
	api.PUT("/submissions/:id", h.Replace)
	api.PATCH("/submissions/:id/status", h.UpdateStatus)
	api.DELETE("/submissions/:id", h.Delete)
}

func (suite *SubmissionControllerTestSuite) TearDownTest() {
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *SubmissionControllerTestSuite) perform(method, path string, body []byte) (*httptest.ResponseRecorder, models.APIResponse) {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var resp models.APIResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func (suite *SubmissionControllerTestSuite) TestCreateSuccess() {
	suite.mockService.On("Create", mock.Anything, mock.AnythingOfType("*models.Submission"), mock.Anything).
		Return(&models.Submission{Name: "Jane Doe"}, nil)

	w, resp := suite.perform(http.MethodPost, "/api/v1/submissions",
		[]byte(`{"name": "Jane Doe", "email": "jane@x.com"}`))

	assert.Equal(suite.T(), http.StatusCreated, w.Code)
	assert.Equal(suite.T(), "success", resp.Status)
	assert.Equal(suite.T(), "Submission created successfully", resp.Message)
	assert.NotNil(suite.T(), resp.Data)
}

func (suite *SubmissionControllerTestSuite) TestCreateMalformedJSON() {
	w, resp := suite.perform(http.MethodPost, "/api/v1/submissions", []byte(`{"name": `))

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Equal(suite.T(), "error", resp.Status)
	suite.mockService.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SubmissionControllerTestSuite) TestCreateValidationFailure() {
	suite.mockService.On("Create", mock.Anything, mock.AnythingOfType("*models.Submission"), mock.Anything).
		Return(nil, models.NewValidationError("Name is required"))

	w, resp := suite.perform(http.MethodPost, "/api/v1/submissions",
		[]byte(`{"email": "jane@x.com"}`))

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Equal(suite.T(), "Validation failed", resp.Message)
	assert.Equal(suite.T(), "ValidationError", resp.Error.Type)
	assert.Contains(suite.T(), resp.Error.Fields, "Name is required")
}

func (suite *SubmissionControllerTestSuite) TestWebhookForwardsParsedPayload() {
	suite.mockService.On("Create", mock.Anything, mock.MatchedBy(func(sub *models.Submission) bool {
		return sub.Name == "Jane" && sub.Source == services.WebhookSource
	}), mock.Anything).Return(&models.Submission{Name: "Jane"}, nil)

	w, _ := suite.perform(http.MethodPost, "/api/v1/submissions/webhook",
		[]byte(`{"fullName": "Jane", "email": "jane@x.com", "campaignId": "fb-1"}`))

	assert.Equal(suite.T(), http.StatusCreated, w.Code)
}

func (suite *SubmissionControllerTestSuite) TestListPassesQueryParams() {
	suite.mockService.On("List", mock.Anything, models.SubmissionListParams{
		Stage:  "Won",
		Search: "jane",
		Page:   2,
		Limit:  5,
	}).Return(&models.SubmissionList{
		Submissions: []*models.Submission{},
		Pagination:  models.Pagination{CurrentPage: 2, ItemsPerPage: 5},
	}, nil)

	w, resp := suite.perform(http.MethodGet, "/api/v1/submissions?stage=Won&search=jane&page=2&limit=5", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), "success", resp.Status)
}

func (suite *SubmissionControllerTestSuite) TestGetInvalidID() {
	suite.mockService.On("GetByID", mock.Anything, "not-a-hex-id").
		Return(nil, models.ErrInvalidIdentifier)

	w, resp := suite.perform(http.MethodGet, "/api/v1/submissions/not-a-hex-id", nil)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Equal(suite.T(), "Invalid submission id", resp.Message)
}

func (suite *SubmissionControllerTestSuite) TestGetNotFound() {
	suite.mockService.On("GetByID", mock.Anything, "64b000000000000000000000").
		Return(nil, models.ErrNotFound)

	w, resp := suite.perform(http.MethodGet, "/api/v1/submissions/64b000000000000000000000", nil)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
	assert.Equal(suite.T(), "Submission not found", resp.Message)
}

func (suite *SubmissionControllerTestSuite) TestUpdateStatusSuccess() {
	suite.mockService.On("UpdateStatus", mock.Anything, "64b000000000000000000000", mock.Anything).
		Return(&models.Submission{Stage: models.StageWon}, nil)

	w, resp := suite.perform(http.MethodPatch, "/api/v1/submissions/64b000000000000000000000/status",
		[]byte(`{"stage": "Won"}`))

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), "Submission updated successfully", resp.Message)
}

func (suite *SubmissionControllerTestSuite) TestDeleteEchoesID() {
	suite.mockService.On("Delete", mock.Anything, "64b000000000000000000000").
		Return("64b000000000000000000000", nil)

	w, resp := suite.perform(http.MethodDelete, "/api/v1/submissions/64b000000000000000000000", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	data, ok := resp.Data.(map[string]interface{})
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), "64b000000000000000000000", data["id"])
}

func (suite *SubmissionControllerTestSuite) TestDeleteTwiceIsNotFound() {
	suite.mockService.On("Delete", mock.Anything, "64b000000000000000000000").
		Return("", models.ErrNotFound)

	w, _ := suite.perform(http.MethodDelete, "/api/v1/submissions/64b000000000000000000000", nil)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *SubmissionControllerTestSuite) TestBulkUpdateSuccess() {
	suite.mockService.On("BulkUpdateStatus", mock.Anything, mock.Anything).
		Return(&models.BulkUpdateResult{Matched: 2, Modified: 1}, nil)

	w, resp := suite.perform(http.MethodPatch, "/api/v1/submissions/bulk/status",
		[]byte(`{"ids": ["a", "b"], "updates": {"status": "archived"}}`))

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	data, ok := resp.Data.(map[string]interface{})
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), float64(2), data["matched"])
	assert.Equal(suite.T(), float64(1), data["modified"])
}

func (suite *SubmissionControllerTestSuite) TestBulkUpdateValidationFailure() {
	suite.mockService.On("BulkUpdateStatus", mock.Anything, mock.Anything).
		Return(nil, models.NewValidationError("ids must not be empty"))

	w, resp := suite.perform(http.MethodPatch, "/api/v1/submissions/bulk/status",
		[]byte(`{"ids": [], "updates": {"status": "archived"}}`))

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Contains(suite.T(), resp.Error.Fields, "ids must not be empty")
}

func (suite *SubmissionControllerTestSuite) TestStorageErrorHidesDetailOutsideDevelopment() {
	suite.mockService.On("GetByID", mock.Anything, "64b000000000000000000000").
		Return(nil, models.ErrPersistence)

	w, resp := suite.perform(http.MethodGet, "/api/v1/submissions/64b000000000000000000000", nil)

	assert.Equal(suite.T(), http.StatusInternalServerError, w.Code)
	assert.Equal(suite.T(), "PersistenceError", resp.Error.Type)
	assert.Empty(suite.T(), resp.Error.Details)
}

func TestSubmissionControllerTestSuite(t *testing.T) {
	suite.Run(t, new(SubmissionControllerTestSuite))
}
