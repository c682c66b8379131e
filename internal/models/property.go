package models

// MarketplaceStatusPublished is the publication status a property must carry
// to be visible on the marketplace.
const MarketplaceStatusPublished = "published"

// Property represents a boarding-house property record. It is owned by the
// backing store; this service only reads it.
type Property struct {
	ID                 string   `bson:"_id" json:"id"`
	Name               string   `bson:"name" json:"name"`
	Address            string   `bson:"address" json:"address"`
	City               string   `bson:"city" json:"city"`
	MarketplaceEnabled bool     `bson:"marketplace_enabled" json:"marketplace_enabled"`
	MarketplaceStatus  string   `bson:"marketplace_status" json:"marketplace_status"`
	Photos             []string `bson:"photos" json:"photos"`
}

// IsPublished reports whether the property is visible on the marketplace.
func (p Property) IsPublished() bool {
	return p.MarketplaceEnabled && p.MarketplaceStatus == MarketplaceStatusPublished
}
