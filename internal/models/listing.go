package models

// Listing is a room joined with its owning property, annotated with the
// current user's saved state. Listings are rebuilt on every fetch and never
// persisted; IsSaved is the only field mutated after construction.
// Invariant: Property.ID == Room.PropertyID.
type Listing struct {
	Room     RoomType `json:"room"`
	Property Property `json:"property"`
	IsSaved  bool     `json:"is_saved"`
}

// Catalog is the aggregated marketplace view: one listing per published
// (room, property) pair plus the distinct city facet derived from the
// published property set.
type Catalog struct {
	Listings []*Listing `json:"listings"`
	Cities   []string   `json:"cities"`
}
