package services

import (
	"sort"
	"strings"

	"github.com/teguhahmad/pencarikost/internal/models"
)

// ApplyFilterSort runs the conjunctive filter predicates over the annotated
// listings and orders the survivors by the given sort mode. The result is a
// fresh slice; the input slice and its listings are never modified, and ties
// under equal sort keys keep their relative input order.
func ApplyFilterSort(listings []*models.Listing, criteria models.FilterCriteria, mode models.SortMode) []*models.Listing {
	filtered := make([]*models.Listing, 0, len(listings))
	for _, listing := range listings {
		if matchesCriteria(listing, criteria) {
			filtered = append(filtered, listing)
		}
	}
	sortListings(filtered, mode)
	return filtered
}

func matchesCriteria(l *models.Listing, c models.FilterCriteria) bool {
	if !matchesQuery(l, c.Query) {
		return false
	}
	if hasSelector(c.City) && l.Property.City != c.City {
		return false
	}
	if c.MinPrice > 0 && l.Room.Price < c.MinPrice {
		return false
	}
	if c.MaxPrice > 0 && l.Room.Price > c.MaxPrice {
		return false
	}
	if c.MaxOccupancy > 0 && l.Room.MaxOccupancy != c.MaxOccupancy {
		return false
	}
	if hasSelector(c.RenterGender) && l.Room.RenterGender != c.RenterGender {
		return false
	}
	if hasSelector(c.RoomType) && !strings.EqualFold(l.Room.Name, c.RoomType) {
		return false
	}
	return true
}

// matchesQuery does a case-insensitive substring match against the room
// name, property name, city and address. An empty query matches everything.
func matchesQuery(l *models.Listing, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, field := range []string{l.Room.Name, l.Property.Name, l.Property.City, l.Property.Address} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func hasSelector(value string) bool {
	return value != "" && value != models.FilterAny
}

func sortListings(listings []*models.Listing, mode models.SortMode) {
	switch mode {
	case models.SortPriceAsc:
		sort.SliceStable(listings, func(i, j int) bool {
			return listings[i].Room.Price < listings[j].Room.Price
		})
	case models.SortPriceDesc:
		sort.SliceStable(listings, func(i, j int) bool {
			return listings[i].Room.Price > listings[j].Room.Price
		})
	default:
		// Newest first. A zero CreatedAt compares oldest, so listings with a
		// missing timestamp sink to the end instead of failing.
		sort.SliceStable(listings, func(i, j int) bool {
			return listings[i].Room.CreatedAt.After(listings[j].Room.CreatedAt)
		})
	}
}
