package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/teguhahmad/pencarikost/internal/api/handlers"
	"github.com/teguhahmad/pencarikost/internal/api/middleware"
	"github.com/teguhahmad/pencarikost/internal/models"
)

func setupListingRouter(catalogSvc *MockCatalogService, savedSvc *MockSavedService, user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if user != nil {
		r.Use(func(c *gin.Context) {
			c.Set(middleware.ContextKeyUser, user)
			c.Next()
		})
	}
	handler := handlers.NewListingHandler(catalogSvc, savedSvc)
	r.GET("/v1/listings", handler.GetListings)
	return r
}

func testCatalog() *models.Catalog {
	return &models.Catalog{
		Listings: []*models.Listing{
			{
				Room:     models.RoomType{ID: "r1", PropertyID: "p1", Name: "Standard", Price: 1_500_000},
				Property: models.Property{ID: "p1", Name: "Kost Melati", City: "Jakarta"},
			},
			{
				Room:     models.RoomType{ID: "r2", PropertyID: "p2", Name: "Deluxe", Price: 2_500_000},
				Property: models.Property{ID: "p2", Name: "Kost Anggrek", City: "Bandung"},
			},
		},
		Cities: []string{"Bandung", "Jakarta"},
	}
}

type listingsResponse struct {
	Data []struct {
		Room struct {
			ID string `json:"id"`
		} `json:"room"`
		IsSaved bool `json:"is_saved"`
	} `json:"data"`
	Cities []string `json:"cities"`
}

func TestGetListings_Success(t *testing.T) {
	mockCatalog := new(MockCatalogService)
	mockSaved := new(MockSavedService)

	catalog := testCatalog()
	mockCatalog.On("FetchPublished", mock.Anything).Return(catalog, nil)
	mockSaved.On("ResolveSaved", mock.Anything, catalog.Listings, (*models.User)(nil)).Return(catalog.Listings)

	r := setupListingRouter(mockCatalog, mockSaved, nil)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/v1/listings", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp listingsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, []string{"Bandung", "Jakarta"}, resp.Cities)
	mockCatalog.AssertExpectations(t)
	mockSaved.AssertExpectations(t)
}

func TestGetListings_CityFilterApplied(t *testing.T) {
	mockCatalog := new(MockCatalogService)
	mockSaved := new(MockSavedService)

	catalog := testCatalog()
	mockCatalog.On("FetchPublished", mock.Anything).Return(catalog, nil)
	mockSaved.On("ResolveSaved", mock.Anything, catalog.Listings, (*models.User)(nil)).Return(catalog.Listings)

	r := setupListingRouter(mockCatalog, mockSaved, nil)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/v1/listings?city=Jakarta", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp listingsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "r1", resp.Data[0].Room.ID)
	// The city facet is derived from the full catalog, not the filtered view.
	assert.Equal(t, []string{"Bandung", "Jakarta"}, resp.Cities)
}

func TestGetListings_SortByPriceDesc(t *testing.T) {
	mockCatalog := new(MockCatalogService)
	mockSaved := new(MockSavedService)

	catalog := testCatalog()
	mockCatalog.On("FetchPublished", mock.Anything).Return(catalog, nil)
	mockSaved.On("ResolveSaved", mock.Anything, catalog.Listings, (*models.User)(nil)).Return(catalog.Listings)

	r := setupListingRouter(mockCatalog, mockSaved, nil)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/v1/listings?sort=price_desc", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp listingsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "r2", resp.Data[0].Room.ID)
	assert.Equal(t, "r1", resp.Data[1].Room.ID)
}

func TestGetListings_AuthenticatedUserGetsSavedAnnotations(t *testing.T) {
	mockCatalog := new(MockCatalogService)
	mockSaved := new(MockSavedService)
	user := &models.User{ID: "u1", Email: "u1@example.com"}

	catalog := testCatalog()
	mockCatalog.On("FetchPublished", mock.Anything).Return(catalog, nil)
	mockSaved.On("ResolveSaved", mock.Anything, catalog.Listings, user).Run(func(args mock.Arguments) {
		listings := args.Get(1).([]*models.Listing)
		listings[0].IsSaved = true
	}).Return(catalog.Listings)

	r := setupListingRouter(mockCatalog, mockSaved, user)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/v1/listings", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp listingsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.True(t, resp.Data[0].IsSaved)
	assert.False(t, resp.Data[1].IsSaved)
}

func TestGetListings_FetchErrorReturns500(t *testing.T) {
	mockCatalog := new(MockCatalogService)
	mockSaved := new(MockSavedService)

	mockCatalog.On("FetchPublished", mock.Anything).Return(nil, assert.AnError)

	r := setupListingRouter(mockCatalog, mockSaved, nil)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/v1/listings", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	mockSaved.AssertNotCalled(t, "ResolveSaved", mock.Anything, mock.Anything, mock.Anything)
}
