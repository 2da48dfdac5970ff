package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sidelines-app/sidelines/pkg/token"
)

const (
	AuthUserIDKey    = "auth_user_id"
	AuthProfileIDKey = "auth_profile_id"
)

// AuthMiddleware validates the bearer token and resolves the caller's profile.
// Handlers downstream read the acting profile id from the context; they never
// authenticate credentials themselves.
func AuthMiddleware(jwtSecret string, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || strings.ToLower(bearerToken[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization header format. Expected: Bearer <token>"})
			return
		}

		claims, err := token.ValidateJWT(bearerToken[1], jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token: " + err.Error()})
			return
		}

		var profileID uint
		row := db.Table("profiles").Select("profiles.id").
			Joins("JOIN users ON users.id = profiles.user_id").
			Where("users.id = ? AND users.deleted_at IS NULL AND profiles.deleted_at IS NULL", claims.UserID).
			Scan(&profileID)
		if row.Error != nil || profileID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found or inactive"})
			return
		}

		c.Set(AuthUserIDKey, claims.UserID)
		c.Set(AuthProfileIDKey, profileID)
		c.Next()
	}
}

// GetUserIDFromContext extracts the authenticated user id from the context.
func GetUserIDFromContext(c *gin.Context) (uint, error) {
	return idFromContext(c, AuthUserIDKey)
}

// GetProfileIDFromContext extracts the acting profile id from the context.
func GetProfileIDFromContext(c *gin.Context) (uint, error) {
	return idFromContext(c, AuthProfileIDKey)
}

func idFromContext(c *gin.Context, key string) (uint, error) {
	val, exists := c.Get(key)
	if !exists {
		return 0, errors.New(key + " not found in context")
	}
	id, ok := val.(uint)
	if !ok {
		return 0, fmt.Errorf("%s has unexpected type: %T", key, val)
	}
	return id, nil
}
