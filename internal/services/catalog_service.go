package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/teguhahmad/pencarikost/internal/config"
	"github.com/teguhahmad/pencarikost/internal/models"
	"github.com/teguhahmad/pencarikost/internal/store"
)

// ICatalogService defines the interface for the aggregated marketplace view.
type ICatalogService interface {
	// FetchPublished returns every published room listing joined with its
	// property, saved state cleared, plus the distinct city facet. Any store
	// read failure aborts the whole fetch; no partial catalog is returned.
	FetchPublished(ctx context.Context) (*models.Catalog, error)
	// RefreshCache rebuilds the catalog from the store and re-primes the
	// cache, bypassing any cached copy.
	RefreshCache(ctx context.Context) error
}

const catalogCacheKey = "catalog:published"

// catalogService implements ICatalogService.
type catalogService struct {
	properties store.PropertyStore
	rooms      store.RoomTypeStore
	rdb        *redis.Client
	cfg        *config.Config
}

// NewCatalogService creates a new CatalogService. rdb may be nil, in which
// case every fetch builds the catalog directly from the store.
func NewCatalogService(properties store.PropertyStore, rooms store.RoomTypeStore, rdb *redis.Client, cfg *config.Config) ICatalogService {
	return &catalogService{properties: properties, rooms: rooms, rdb: rdb, cfg: cfg}
}

func (s *catalogService) FetchPublished(ctx context.Context) (*models.Catalog, error) {
	if catalog := s.cachedCatalog(ctx); catalog != nil {
		return catalog, nil
	}

	catalog, err := s.buildCatalog(ctx)
	if err != nil {
		return nil, err
	}
	s.storeCatalog(ctx, catalog)
	return catalog, nil
}

func (s *catalogService) RefreshCache(ctx context.Context) error {
	catalog, err := s.buildCatalog(ctx)
	if err != nil {
		return fmt.Errorf("failed to rebuild catalog: %w", err)
	}
	s.storeCatalog(ctx, catalog)
	return nil
}

// buildCatalog fetches the published properties and their rooms, then joins
// them. Room fetches are independent per property and issued concurrently;
// the first error wins and discards the whole build.
func (s *catalogService) buildCatalog(ctx context.Context) (*models.Catalog, error) {
	properties, err := s.properties.FindPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch published properties: %w", err)
	}

	roomsByProperty := make(map[string][]models.RoomType, len(properties))
	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		fetchErr error
	)
	for i := range properties {
		property := properties[i]
		wg.Add(1)
		go func() {
			defer wg.Done()
			rooms, err := s.rooms.FindByPropertyID(ctx, property.ID)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if fetchErr == nil {
					fetchErr = fmt.Errorf("failed to fetch rooms for property %s: %w", property.ID, err)
				}
				return
			}
			roomsByProperty[property.ID] = rooms
		}()
	}
	wg.Wait()
	if fetchErr != nil {
		return nil, fetchErr
	}

	return BuildCatalog(properties, roomsByProperty), nil
}

// BuildCatalog joins each room to its owning property, producing one listing
// per (room, property) pair with saved state cleared. The city facet is
// derived from the full published property set, so a published property
// without rooms still contributes its city. Pure: inputs are not modified.
func BuildCatalog(properties []models.Property, roomsByProperty map[string][]models.RoomType) *models.Catalog {
	listings := make([]*models.Listing, 0)
	cities := make([]string, 0)
	seen := make(map[string]struct{})

	for _, property := range properties {
		if property.City != "" {
			if _, ok := seen[property.City]; !ok {
				seen[property.City] = struct{}{}
				cities = append(cities, property.City)
			}
		}
		for _, room := range roomsByProperty[property.ID] {
			listings = append(listings, &models.Listing{Room: room, Property: property})
		}
	}

	sort.Strings(cities)
	return &models.Catalog{Listings: listings, Cities: cities}
}

// cachedCatalog returns the cached catalog, or nil when there is none or the
// cache is unreachable. Cache trouble never fails a fetch.
func (s *catalogService) cachedCatalog(ctx context.Context) *models.Catalog {
	if s.rdb == nil {
		return nil
	}

	data, err := s.rdb.Get(ctx, catalogCacheKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("WARN: failed to read catalog cache: %v", err)
		}
		return nil
	}

	var catalog models.Catalog
	if err := json.Unmarshal([]byte(data), &catalog); err != nil {
		log.Printf("WARN: discarding malformed catalog cache entry: %v", err)
		s.rdb.Del(ctx, catalogCacheKey)
		return nil
	}
	return &catalog
}

func (s *catalogService) storeCatalog(ctx context.Context, catalog *models.Catalog) {
	if s.rdb == nil || s.cfg == nil || s.cfg.CatalogCacheTTL <= 0 {
		return
	}

	data, err := json.Marshal(catalog)
	if err != nil {
		log.Printf("WARN: failed to marshal catalog for caching: %v", err)
		return
	}
	if err := s.rdb.Set(ctx, catalogCacheKey, data, s.cfg.CatalogCacheTTL).Err(); err != nil {
		log.Printf("WARN: failed to write catalog cache: %v", err)
	}
}
