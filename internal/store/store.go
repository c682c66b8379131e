package store

import (
	"context"
	"errors"

	"github.com/teguhahmad/pencarikost/internal/models"
)

// ErrDuplicateSavedProperty is returned when a bookmark insert collides with
// the unique (user_id, property_id) index.
var ErrDuplicateSavedProperty = errors.New("property already saved by this user")

// PropertyStore reads property records from the backing store.
type PropertyStore interface {
	// FindPublished returns properties that are marketplace-enabled and
	// carry published status.
	FindPublished(ctx context.Context) ([]models.Property, error)
}

// RoomTypeStore reads room records from the backing store.
type RoomTypeStore interface {
	FindByPropertyID(ctx context.Context, propertyID string) ([]models.RoomType, error)
}

// SavedPropertyStore persists per-user bookmarks keyed by (user, property).
type SavedPropertyStore interface {
	FindByUserID(ctx context.Context, userID string) ([]models.SavedProperty, error)
	Add(ctx context.Context, mark models.SavedProperty) error
	Remove(ctx context.Context, userID, propertyID string) error
}
