package handlers

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/teguhahmad/pencarikost/internal/api/middleware"
	"github.com/teguhahmad/pencarikost/internal/services"
)

// SavedHandler handles REST requests for per-user saved listings.
type SavedHandler struct {
	catalogService services.ICatalogService
	savedService   services.ISavedService

	mu     sync.Mutex
	states map[string]*services.ToggleState
}

// NewSavedHandler creates a new SavedHandler.
func NewSavedHandler(catalogService services.ICatalogService, savedService services.ISavedService) *SavedHandler {
	return &SavedHandler{
		catalogService: catalogService,
		savedService:   savedService,
		states:         make(map[string]*services.ToggleState),
	}
}

// toggleState returns the per-user toggle guard, creating it on first use.
// The guard must be shared across a user's requests for the in-flight check
// to mean anything.
func (h *SavedHandler) toggleState(userID string) *services.ToggleState {
	h.mu.Lock()
	defer h.mu.Unlock()
	state, exists := h.states[userID]
	if !exists {
		state = services.NewToggleState()
		h.states[userID] = state
	}
	return state
}

type toggleSaveRequest struct {
	PropertyID string `json:"property_id"`
}

// ToggleSave handles POST /v1/listings/:room_id/save. The room's property is
// bookmarked if it was not, or un-bookmarked if it was; the response carries
// the resulting state.
func (h *SavedHandler) ToggleSave(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	roomID := c.Param("room_id")

	var req toggleSaveRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
	}

	catalog, err := h.catalogService.FetchPublished(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch listings"})
		return
	}
	listings := h.savedService.ResolveSaved(c.Request.Context(), catalog.Listings, user)

	saved, err := h.savedService.ToggleSave(c.Request.Context(), h.toggleState(user.ID), listings, req.PropertyID, roomID, user)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAuthRequired):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		case errors.Is(err, services.ErrToggleInFlight):
			c.JSON(http.StatusConflict, gin.H{"error": "A save for this room is already in progress"})
		default:
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update saved state"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"room_id": roomID,
		"saved":   saved,
	})
}
