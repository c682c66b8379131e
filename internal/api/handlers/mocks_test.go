package handlers_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/teguhahmad/pencarikost/internal/models"
	"github.com/teguhahmad/pencarikost/internal/services"
)

// --- Mocks ---

// MockCatalogService
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) FetchPublished(ctx context.Context) (*models.Catalog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Catalog), args.Error(1)
}

func (m *MockCatalogService) RefreshCache(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockSavedService
type MockSavedService struct {
	mock.Mock
}

func (m *MockSavedService) ResolveSaved(ctx context.Context, listings []*models.Listing, user *models.User) []*models.Listing {
	args := m.Called(ctx, listings, user)
	if args.Get(0) == nil {
		return listings
	}
	return args.Get(0).([]*models.Listing)
}

func (m *MockSavedService) ToggleSave(ctx context.Context, state *services.ToggleState, listings []*models.Listing, propertyID, roomID string, user *models.User) (bool, error) {
	args := m.Called(ctx, state, listings, propertyID, roomID, user)
	return args.Bool(0), args.Error(1)
}
