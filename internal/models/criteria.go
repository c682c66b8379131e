package models

// FilterAny is the selector value that leaves a criteria dimension
// unconstrained.
const FilterAny = "any"

// FilterCriteria holds the active search filters for the marketplace view.
// All predicates are conjunctive. Zero MinPrice/MaxPrice leave the
// corresponding bound open; zero MaxOccupancy means any occupancy.
type FilterCriteria struct {
	Query        string `form:"q" json:"query"`
	City         string `form:"city" json:"city"`
	MinPrice     int64  `form:"min_price" json:"min_price"`
	MaxPrice     int64  `form:"max_price" json:"max_price"`
	MaxOccupancy int    `form:"occupancy" json:"occupancy"`
	RenterGender string `form:"gender" json:"gender"`
	RoomType     string `form:"room_type" json:"room_type"`
}

// DefaultFilterCriteria returns criteria that pass every listing through.
func DefaultFilterCriteria() FilterCriteria {
	return FilterCriteria{
		City:         FilterAny,
		RenterGender: FilterAny,
		RoomType:     FilterAny,
	}
}

// SortMode selects the ordering of the filtered listing sequence.
type SortMode string

const (
	SortPriceAsc  SortMode = "price_asc"
	SortPriceDesc SortMode = "price_desc"
	SortNewest    SortMode = "newest"
)

// ParseSortMode maps a request value to a SortMode, defaulting to newest-first.
func ParseSortMode(s string) SortMode {
	switch SortMode(s) {
	case SortPriceAsc, SortPriceDesc, SortNewest:
		return SortMode(s)
	default:
		return SortNewest
	}
}
