package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/teguhahmad/pencarikost/internal/api/handlers"
	"github.com/teguhahmad/pencarikost/internal/api/middleware"
	"github.com/teguhahmad/pencarikost/internal/config"
	"github.com/teguhahmad/pencarikost/internal/services"
	"github.com/teguhahmad/pencarikost/internal/store"
)

// SetupRouter configures and returns the main Gin engine.
func SetupRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client) *gin.Engine {
	// Initialize stores and services needed by API handlers HERE
	propertyStore := store.NewPropertyStore(db)
	roomTypeStore := store.NewRoomTypeStore(db)
	savedPropertyStore := store.NewSavedPropertyStore(db)

	catalogService := services.NewCatalogService(propertyStore, roomTypeStore, rdb, cfg)
	savedService := services.NewSavedService(savedPropertyStore)

	r := gin.Default()

	// Initialize Middleware
	rateLimiter := middleware.NewRateLimiterMiddleware(cfg)

	// Apply global middleware first (order matters)
	r.Use(middleware.CORSMiddleware())
	r.Use(rateLimiter.Limit())

	// Initialize handlers
	listingHandler := handlers.NewListingHandler(catalogService, savedService)
	savedHandler := handlers.NewSavedHandler(catalogService, savedService)

	v1 := r.Group("/v1")
	{
		// Public routes (rate limiting already applied globally). Listings are
		// public; a bearer token only adds the saved annotations.
		v1.GET("/listings", middleware.OptionalAuthMiddleware(cfg.JwtSecret), listingHandler.GetListings)

		v1.GET("/ping", func(c *gin.Context) {
			c.String(http.StatusOK, "pong")
		})

		// Authenticated routes (already have rate limiting from global middleware)
		authRequired := v1.Group("/")
		authRequired.Use(middleware.AuthMiddleware(cfg.JwtSecret))
		{
			authRequired.POST("/listings/:room_id/save", savedHandler.ToggleSave)
		}
	}

	return r
}
