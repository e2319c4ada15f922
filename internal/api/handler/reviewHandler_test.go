package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/service"
)

// MockReviewService mocks the ReviewService interface
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) Create(subject *models.User, titleID int64, req dto.CreateReviewDTO) (*dto.ReviewResponse, error) {
	args := m.Called(subject, titleID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReviewResponse), args.Error(1)
}

func (m *MockReviewService) Get(titleID, reviewID int64) (*dto.ReviewResponse, error) {
	args := m.Called(titleID, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReviewResponse), args.Error(1)
}

func (m *MockReviewService) Update(subject *models.User, titleID, reviewID int64, req dto.UpdateReviewDTO) (*dto.ReviewResponse, error) {
	args := m.Called(subject, titleID, reviewID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReviewResponse), args.Error(1)
}

func (m *MockReviewService) Delete(subject *models.User, titleID, reviewID int64) error {
	args := m.Called(subject, titleID, reviewID)
	return args.Error(0)
}

func (m *MockReviewService) ListByTitle(titleID int64, page, pageSize int) (*dto.Paginated[dto.ReviewResponse], error) {
	args := m.Called(titleID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Paginated[dto.ReviewResponse]), args.Error(1)
}

// fakeAuth injects a fixed user the way the auth middleware would.
func fakeAuth(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user", user)
		c.Next()
	}
}

func TestReviewCreate_Handler(t *testing.T) {
	mockReviewService := new(MockReviewService)
	handler := NewReviewHandler(mockReviewService)
	router := setupRouter()

	user := &models.User{ID: "user-123", Username: "testuser", Role: models.RoleUser}
	router.POST("/titles/:title_id/reviews", fakeAuth(user), handler.Create)

	response := &dto.ReviewResponse{ID: 42, Author: "testuser", Text: "great", Score: 9}
	mockReviewService.On("Create", user, int64(1), dto.CreateReviewDTO{Text: "great", Score: 9}).
		Return(response, nil)

	body, _ := json.Marshal(dto.CreateReviewDTO{Text: "great", Score: 9})
	req, _ := http.NewRequest("POST", "/titles/1/reviews", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var got dto.ReviewResponse
	json.Unmarshal(w.Body.Bytes(), &got)
	assert.Equal(t, int64(42), got.ID)
	assert.Equal(t, "testuser", got.Author)
	mockReviewService.AssertExpectations(t)
}

func TestReviewCreate_ScoreOutOfRange(t *testing.T) {
	mockReviewService := new(MockReviewService)
	handler := NewReviewHandler(mockReviewService)
	router := setupRouter()

	user := &models.User{ID: "user-123", Role: models.RoleUser}
	router.POST("/titles/:title_id/reviews", fakeAuth(user), handler.Create)

	body, _ := json.Marshal(map[string]any{"text": "great", "score": 11})
	req, _ := http.NewRequest("POST", "/titles/1/reviews", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockReviewService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestReviewCreate_Duplicate(t *testing.T) {
	mockReviewService := new(MockReviewService)
	handler := NewReviewHandler(mockReviewService)
	router := setupRouter()

	user := &models.User{ID: "user-123", Role: models.RoleUser}
	router.POST("/titles/:title_id/reviews", fakeAuth(user), handler.Create)

	mockReviewService.On("Create", user, int64(1), dto.CreateReviewDTO{Text: "again", Score: 5}).
		Return(nil, service.ErrReviewExists)

	body, _ := json.Marshal(dto.CreateReviewDTO{Text: "again", Score: 5})
	req, _ := http.NewRequest("POST", "/titles/1/reviews", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockReviewService.AssertExpectations(t)
}

func TestReviewUpdate_ScoreZeroRejected(t *testing.T) {
	mockReviewService := new(MockReviewService)
	handler := NewReviewHandler(mockReviewService)
	router := setupRouter()

	user := &models.User{ID: "user-123", Role: models.RoleUser}
	router.PATCH("/titles/:title_id/reviews/:review_id", fakeAuth(user), handler.Update)

	// An explicit zero must fail binding, not reach the service and die on
	// the DB check constraint.
	body := []byte(`{"score": 0}`)
	req, _ := http.NewRequest("PATCH", "/titles/1/reviews/42", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockReviewService.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReviewUpdate_ScoreOmittedKeepsBinding(t *testing.T) {
	mockReviewService := new(MockReviewService)
	handler := NewReviewHandler(mockReviewService)
	router := setupRouter()

	user := &models.User{ID: "user-123", Username: "testuser", Role: models.RoleUser}
	router.PATCH("/titles/:title_id/reviews/:review_id", fakeAuth(user), handler.Update)

	newText := "updated"
	response := &dto.ReviewResponse{ID: 42, Author: "testuser", Text: "updated", Score: 9}
	mockReviewService.On("Update", user, int64(1), int64(42), dto.UpdateReviewDTO{Text: &newText}).
		Return(response, nil)

	body, _ := json.Marshal(map[string]string{"text": "updated"})
	req, _ := http.NewRequest("PATCH", "/titles/1/reviews/42", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockReviewService.AssertExpectations(t)
}

func TestReviewDelete_Forbidden(t *testing.T) {
	mockReviewService := new(MockReviewService)
	handler := NewReviewHandler(mockReviewService)
	router := setupRouter()

	user := &models.User{ID: "user-456", Role: models.RoleUser}
	router.DELETE("/titles/:title_id/reviews/:review_id", fakeAuth(user), handler.Delete)

	mockReviewService.On("Delete", user, int64(1), int64(42)).Return(service.ErrForbidden)

	req, _ := http.NewRequest("DELETE", "/titles/1/reviews/42", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockReviewService.AssertExpectations(t)
}

func TestReviewList_BadTitleID(t *testing.T) {
	mockReviewService := new(MockReviewService)
	handler := NewReviewHandler(mockReviewService)
	router := setupRouter()
	router.GET("/titles/:title_id/reviews", handler.List)

	req, _ := http.NewRequest("GET", "/titles/abc/reviews", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockReviewService.AssertNotCalled(t, "ListByTitle", mock.Anything, mock.Anything, mock.Anything)
}
