package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teguhahmad/pencarikost/internal/api/middleware"
	"github.com/teguhahmad/pencarikost/internal/models"
	"github.com/teguhahmad/pencarikost/internal/services"
)

// ListingHandler handles REST requests for the marketplace listing view.
type ListingHandler struct {
	catalogService services.ICatalogService
	savedService   services.ISavedService
}

// NewListingHandler creates a new ListingHandler.
func NewListingHandler(catalogService services.ICatalogService, savedService services.ISavedService) *ListingHandler {
	return &ListingHandler{
		catalogService: catalogService,
		savedService:   savedService,
	}
}

// GetListings handles GET /v1/listings. Filter criteria and sort mode come
// from the query string; unknown values fall back to their defaults rather
// than rejecting the request.
func (h *ListingHandler) GetListings(c *gin.Context) {
	criteria := models.DefaultFilterCriteria()
	if err := c.ShouldBindQuery(&criteria); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter parameters"})
		return
	}
	mode := models.ParseSortMode(c.Query("sort"))

	catalog, err := h.catalogService.FetchPublished(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch listings"})
		return
	}

	user := middleware.CurrentUser(c)
	listings := h.savedService.ResolveSaved(c.Request.Context(), catalog.Listings, user)
	listings = services.ApplyFilterSort(listings, criteria, mode)

	c.JSON(http.StatusOK, gin.H{
		"data":   listings,
		"cities": catalog.Cities,
	})
}
