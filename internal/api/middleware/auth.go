package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/teguhahmad/pencarikost/internal/auth"
	"github.com/teguhahmad/pencarikost/internal/models"
)

// ContextKeyUser holds the key for the authenticated user in Gin context.
const ContextKeyUser = "currentUser"

// AuthMiddleware creates a Gin middleware for JWT authentication. Requests
// without a valid bearer token are rejected with 401.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := userFromRequest(c, jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.Set(ContextKeyUser, user)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the user from a bearer token when one is
// present, but lets anonymous requests through. Listing browsing works either
// way; only the saved annotations depend on identity.
func OptionalAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			if user, err := userFromRequest(c, jwtSecret); err == nil {
				c.Set(ContextKeyUser, user)
			}
		}
		c.Next()
	}
}

func userFromRequest(c *gin.Context, jwtSecret string) (*models.User, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, fmt.Errorf("Authorization header required")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return nil, fmt.Errorf("Authorization header format must be Bearer {token}")
	}

	claims, err := auth.ValidateJWT(parts[1], jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("Invalid or expired token: %v", err)
	}

	return &models.User{ID: claims.UserID, Email: claims.Email}, nil
}

// CurrentUser returns the authenticated user from the Gin context, or nil for
// an anonymous request.
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(ContextKeyUser)
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}
