package models

import "time"

// SavedProperty is a bookmark: one (user, property) pair. The store enforces
// uniqueness per pair via a compound index, so a property saved twice by the
// same user is a write error, not a second row.
type SavedProperty struct {
	ID         string    `bson:"_id,omitempty" json:"id,omitempty"`
	PropertyID string    `bson:"property_id" json:"property_id"`
	UserID     string    `bson:"user_id" json:"user_id"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}
