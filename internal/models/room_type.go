package models

import "time"

// Renter gender constraints a room may carry.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderMixed  = "mixed"
)

// RoomType represents one rentable room category within a property.
// Price is an integer amount in the smallest currency unit (rupiah).
type RoomType struct {
	ID                string    `bson:"_id" json:"id"`
	PropertyID        string    `bson:"property_id" json:"property_id"`
	Name              string    `bson:"name" json:"name"`
	Price             int64     `bson:"price" json:"price"`
	MaxOccupancy      int       `bson:"max_occupancy" json:"max_occupancy"`
	RenterGender      string    `bson:"renter_gender" json:"renter_gender"`
	Photos            []string  `bson:"photos" json:"photos"`
	EnableDailyPrice  bool      `bson:"enable_daily_price" json:"enable_daily_price"`
	EnableWeeklyPrice bool      `bson:"enable_weekly_price" json:"enable_weekly_price"`
	EnableYearlyPrice bool      `bson:"enable_yearly_price" json:"enable_yearly_price"`
	CreatedAt         time.Time `bson:"created_at" json:"created_at"`
}
