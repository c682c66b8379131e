package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/teguhahmad/pencarikost/internal/models"
)

const propertiesCollection = "properties"

// mongoPropertyStore implements PropertyStore over MongoDB.
type mongoPropertyStore struct {
	db *mongo.Database
}

// NewPropertyStore creates a MongoDB-backed PropertyStore.
func NewPropertyStore(db *mongo.Database) PropertyStore {
	return &mongoPropertyStore{db: db}
}

// FindPublished returns every property with marketplace_enabled = true and
// marketplace_status = "published".
func (s *mongoPropertyStore) FindPublished(ctx context.Context) ([]models.Property, error) {
	filter := bson.M{
		"marketplace_enabled": true,
		"marketplace_status":  models.MarketplaceStatusPublished,
	}

	cursor, err := s.db.Collection(propertiesCollection).Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query published properties: %w", err)
	}
	defer cursor.Close(ctx)

	var properties []models.Property
	if err = cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("failed to decode published properties: %w", err)
	}
	return properties, nil
}
