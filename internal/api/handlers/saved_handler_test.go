package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/teguhahmad/pencarikost/internal/api/handlers"
	"github.com/teguhahmad/pencarikost/internal/api/middleware"
	"github.com/teguhahmad/pencarikost/internal/models"
	"github.com/teguhahmad/pencarikost/internal/services"
)

func setupSavedRouter(catalogSvc *MockCatalogService, savedSvc *MockSavedService, user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if user != nil {
		r.Use(func(c *gin.Context) {
			c.Set(middleware.ContextKeyUser, user)
			c.Next()
		})
	}
	handler := handlers.NewSavedHandler(catalogSvc, savedSvc)
	r.POST("/v1/listings/:room_id/save", handler.ToggleSave)
	return r
}

func TestToggleSave_Success(t *testing.T) {
	mockCatalog := new(MockCatalogService)
	mockSaved := new(MockSavedService)
	user := &models.User{ID: "u1"}

	catalog := testCatalog()
	mockCatalog.On("FetchPublished", mock.Anything).Return(catalog, nil)
	mockSaved.On("ResolveSaved", mock.Anything, catalog.Listings, user).Return(catalog.Listings)
	mockSaved.On("ToggleSave", mock.Anything, mock.Anything, catalog.Listings, "", "r1", user).Return(true, nil)

	r := setupSavedRouter(mockCatalog, mockSaved, user)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/v1/listings/r1/save", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		RoomID string `json:"room_id"`
		Saved  bool   `json:"saved"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "r1", resp.RoomID)
	assert.True(t, resp.Saved)
	mockSaved.AssertExpectations(t)
}

func TestToggleSave_PropertyIDFromBody(t *testing.T) {
	mockCatalog := new(MockCatalogService)
	mockSaved := new(MockSavedService)
	user := &models.User{ID: "u1"}

	catalog := testCatalog()
	mockCatalog.On("FetchPublished", mock.Anything).Return(catalog, nil)
	mockSaved.On("ResolveSaved", mock.Anything, catalog.Listings, user).Return(catalog.Listings)
	mockSaved.On("ToggleSave", mock.Anything, mock.Anything, catalog.Listings, "p1", "r1", user).Return(false, nil)

	r := setupSavedRouter(mockCatalog, mockSaved, user)
	w := httptest.NewRecorder()
	body := strings.NewReader(`{"property_id":"p1"}`)
	req, _ := http.NewRequest(http.MethodPost, "/v1/listings/r1/save", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSaved.AssertExpectations(t)
}

func TestToggleSave_AnonymousReturns401(t *testing.T) {
	mockCatalog := new(MockCatalogService)
	mockSaved := new(MockSavedService)

	r := setupSavedRouter(mockCatalog, mockSaved, nil)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/v1/listings/r1/save", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockCatalog.AssertNotCalled(t, "FetchPublished", mock.Anything)
	mockSaved.AssertNotCalled(t, "ToggleSave", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestToggleSave_InFlightReturns409(t *testing.T) {
	mockCatalog := new(MockCatalogService)
	mockSaved := new(MockSavedService)
	user := &models.User{ID: "u1"}

	catalog := testCatalog()
	mockCatalog.On("FetchPublished", mock.Anything).Return(catalog, nil)
	mockSaved.On("ResolveSaved", mock.Anything, catalog.Listings, user).Return(catalog.Listings)
	mockSaved.On("ToggleSave", mock.Anything, mock.Anything, catalog.Listings, "", "r1", user).Return(false, services.ErrToggleInFlight)

	r := setupSavedRouter(mockCatalog, mockSaved, user)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/v1/listings/r1/save", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestToggleSave_StoreErrorReturns500(t *testing.T) {
	mockCatalog := new(MockCatalogService)
	mockSaved := new(MockSavedService)
	user := &models.User{ID: "u1"}

	catalog := testCatalog()
	mockCatalog.On("FetchPublished", mock.Anything).Return(catalog, nil)
	mockSaved.On("ResolveSaved", mock.Anything, catalog.Listings, user).Return(catalog.Listings)
	mockSaved.On("ToggleSave", mock.Anything, mock.Anything, catalog.Listings, "", "r1", user).Return(false, assert.AnError)

	r := setupSavedRouter(mockCatalog, mockSaved, user)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/v1/listings/r1/save", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestToggleSave_SameUserSharesToggleState(t *testing.T) {
	mockCatalog := new(MockCatalogService)
	mockSaved := new(MockSavedService)
	user := &models.User{ID: "u1"}

	catalog := testCatalog()
	mockCatalog.On("FetchPublished", mock.Anything).Return(catalog, nil)
	mockSaved.On("ResolveSaved", mock.Anything, catalog.Listings, user).Return(catalog.Listings)

	var states []*services.ToggleState
	mockSaved.On("ToggleSave", mock.Anything, mock.Anything, catalog.Listings, "", "r1", user).Run(func(args mock.Arguments) {
		states = append(states, args.Get(1).(*services.ToggleState))
	}).Return(true, nil)

	r := setupSavedRouter(mockCatalog, mockSaved, user)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/v1/listings/r1/save", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	// Both requests ran against the same per-user guard.
	require.Len(t, states, 2)
	assert.Same(t, states[0], states[1])
}
