package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/teguhahmad/pencarikost/internal/db"
	"github.com/teguhahmad/pencarikost/internal/models"
)

const savedPropertiesCollection = "saved_properties"

// mongoSavedPropertyStore implements SavedPropertyStore over MongoDB.
type mongoSavedPropertyStore struct {
	db *mongo.Database
}

// NewSavedPropertyStore creates a MongoDB-backed SavedPropertyStore.
func NewSavedPropertyStore(db *mongo.Database) SavedPropertyStore {
	return &mongoSavedPropertyStore{db: db}
}

func (s *mongoSavedPropertyStore) FindByUserID(ctx context.Context, userID string) ([]models.SavedProperty, error) {
	cursor, err := s.db.Collection(savedPropertiesCollection).Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to query saved properties for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var marks []models.SavedProperty
	if err = cursor.All(ctx, &marks); err != nil {
		return nil, fmt.Errorf("failed to decode saved properties for user %s: %w", userID, err)
	}
	return marks, nil
}

// Add inserts a bookmark. A duplicate (user, property) pair is reported as
// ErrDuplicateSavedProperty; the unique index keeps the pair from ever being
// stored twice, even when two writers race.
func (s *mongoSavedPropertyStore) Add(ctx context.Context, mark models.SavedProperty) error {
	if mark.ID == "" {
		mark.ID = uuid.NewString()
	}
	if mark.CreatedAt.IsZero() {
		mark.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Collection(savedPropertiesCollection).InsertOne(ctx, mark)
	if err != nil {
		if db.IsMongoDuplicateKeyError(err) {
			return fmt.Errorf("save property %s for user %s: %w", mark.PropertyID, mark.UserID, ErrDuplicateSavedProperty)
		}
		return fmt.Errorf("failed to insert saved property %s for user %s: %w", mark.PropertyID, mark.UserID, err)
	}
	return nil
}

// Remove deletes the bookmark for the (user, property) pair. Removing a pair
// that does not exist is not an error.
func (s *mongoSavedPropertyStore) Remove(ctx context.Context, userID, propertyID string) error {
	filter := bson.M{"user_id": userID, "property_id": propertyID}
	_, err := s.db.Collection(savedPropertiesCollection).DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete saved property %s for user %s: %w", propertyID, userID, err)
	}
	return nil
}

// EnsureIndexes creates the indexes the stores rely on. The unique compound
// index on saved_properties enforces the one-bookmark-per-pair invariant.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	_, err := database.Collection(savedPropertiesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "property_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create saved_properties index: %w", err)
	}

	_, err = database.Collection(roomTypesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "property_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create room_types index: %w", err)
	}
	return nil
}
