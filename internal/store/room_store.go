package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/teguhahmad/pencarikost/internal/models"
)

const roomTypesCollection = "room_types"

// mongoRoomTypeStore implements RoomTypeStore over MongoDB.
type mongoRoomTypeStore struct {
	db *mongo.Database
}

// NewRoomTypeStore creates a MongoDB-backed RoomTypeStore.
func NewRoomTypeStore(db *mongo.Database) RoomTypeStore {
	return &mongoRoomTypeStore{db: db}
}

func (s *mongoRoomTypeStore) FindByPropertyID(ctx context.Context, propertyID string) ([]models.RoomType, error) {
	cursor, err := s.db.Collection(roomTypesCollection).Find(ctx, bson.M{"property_id": propertyID})
	if err != nil {
		return nil, fmt.Errorf("failed to query rooms for property %s: %w", propertyID, err)
	}
	defer cursor.Close(ctx)

	var rooms []models.RoomType
	if err = cursor.All(ctx, &rooms); err != nil {
		return nil, fmt.Errorf("failed to decode rooms for property %s: %w", propertyID, err)
	}
	return rooms, nil
}
