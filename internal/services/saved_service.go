package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/teguhahmad/pencarikost/internal/models"
	"github.com/teguhahmad/pencarikost/internal/store"
)

var (
	// ErrAuthRequired signals that the caller must sign in before saving.
	ErrAuthRequired = errors.New("authentication required")
	// ErrToggleInFlight signals that a save toggle for the same room has not
	// resolved yet; the caller may retry once it has.
	ErrToggleInFlight = errors.New("save toggle already in flight for this room")
)

// ToggleState tracks which rooms have a save toggle in flight. It is owned
// by a single session: toggles for different rooms may overlap, but a second
// toggle for a room whose first toggle has not resolved is rejected. This
// guard is what keeps racing toggles from inserting a duplicate bookmark.
type ToggleState struct {
	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewToggleState creates an empty per-session toggle guard.
func NewToggleState() *ToggleState {
	return &ToggleState{inFlight: make(map[string]struct{})}
}

func (t *ToggleState) begin(roomID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, busy := t.inFlight[roomID]; busy {
		return false
	}
	t.inFlight[roomID] = struct{}{}
	return true
}

func (t *ToggleState) end(roomID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.inFlight, roomID)
}

// ISavedService defines the interface for per-user saved (bookmark) state.
type ISavedService interface {
	// ResolveSaved annotates each listing with whether its property is in
	// the user's saved set. Returns the same listings for chaining.
	ResolveSaved(ctx context.Context, listings []*models.Listing, user *models.User) []*models.Listing
	// ToggleSave flips the bookmark backing the given room and reconciles
	// the caller-held listings. Returns the resulting saved state.
	ToggleSave(ctx context.Context, state *ToggleState, listings []*models.Listing, propertyID, roomID string, user *models.User) (bool, error)
}

// savedService implements ISavedService.
type savedService struct {
	saved store.SavedPropertyStore
}

// NewSavedService creates a new SavedService.
func NewSavedService(saved store.SavedPropertyStore) ISavedService {
	return &savedService{saved: saved}
}

// ResolveSaved cross-references the user's saved-property set. With no user
// every listing stays unsaved. A failed lookup degrades to an empty saved
// set; listing display never depends on it.
func (s *savedService) ResolveSaved(ctx context.Context, listings []*models.Listing, user *models.User) []*models.Listing {
	savedPropertyIDs := make(map[string]struct{})
	if user != nil {
		marks, err := s.saved.FindByUserID(ctx, user.ID)
		if err != nil {
			log.Printf("WARN: failed to resolve saved properties for user %s: %v", user.ID, err)
		} else {
			for _, mark := range marks {
				savedPropertyIDs[mark.PropertyID] = struct{}{}
			}
		}
	}

	for _, listing := range listings {
		_, saved := savedPropertyIDs[listing.Property.ID]
		listing.IsSaved = saved
	}
	return listings
}

// ToggleSave inserts or deletes the bookmark for the room's property,
// depending on the listing's current saved state, then flips IsSaved on
// every listing sharing the room ID. Local state changes only after the
// store write resolves; a failed write leaves the listings untouched.
// A roomID no listing displays is a no-op.
func (s *savedService) ToggleSave(ctx context.Context, state *ToggleState, listings []*models.Listing, propertyID, roomID string, user *models.User) (bool, error) {
	if user == nil {
		return false, ErrAuthRequired
	}

	var current *models.Listing
	for _, listing := range listings {
		if listing.Room.ID == roomID {
			current = listing
			break
		}
	}
	if current == nil {
		return false, nil
	}
	if propertyID == "" {
		propertyID = current.Property.ID
	}

	if !state.begin(roomID) {
		return current.IsSaved, ErrToggleInFlight
	}
	defer state.end(roomID)

	if current.IsSaved {
		if err := s.saved.Remove(ctx, user.ID, propertyID); err != nil {
			return true, fmt.Errorf("failed to remove saved property %s: %w", propertyID, err)
		}
	} else {
		mark := models.SavedProperty{PropertyID: propertyID, UserID: user.ID}
		if err := s.saved.Add(ctx, mark); err != nil {
			return false, fmt.Errorf("failed to save property %s: %w", propertyID, err)
		}
	}

	saved := !current.IsSaved
	for _, listing := range listings {
		if listing.Room.ID == roomID {
			listing.IsSaved = saved
		}
	}
	return saved, nil
}
