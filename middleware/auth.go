package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kurisushop/KurisuShop/config"
	"github.com/kurisushop/KurisuShop/models"
	"github.com/kurisushop/KurisuShop/utils"
)

// CurrentUser extracts the authenticated principal set by AuthMiddleware.
func CurrentUser(c *gin.Context) (models.User, bool) {
	val, exists := c.Get("user")
	if !exists {
		return models.User{}, false
	}
	user, ok := val.(models.User)
	return user, ok
}

// AuthMiddleware authenticates the request via the Bearer token, loads
// the user with its role and stores the principal in the context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.LogError("Missing Authorization header")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Please login for access"})
			c.Abort()
			return
		}

		tokenString := strings.Replace(authHeader, "Bearer ", "", 1)
		userID, err := utils.ValidateToken(tokenString)
		if err != nil {
			utils.LogError("Invalid token: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Please login for access"})
			c.Abort()
			return
		}

		var user models.User
		if err := config.DB.Preload("Rol").First(&user, userID).Error; err != nil {
			utils.LogError("User not found: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Next()
	}
}

// OptionalAuthMiddleware loads the principal when a valid Bearer token
// is present and lets the request through anonymously otherwise. Used
// on reads whose visibility depends on who is asking.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenString := strings.Replace(authHeader, "Bearer ", "", 1)
		userID, err := utils.ValidateToken(tokenString)
		if err != nil {
			c.Next()
			return
		}

		var user models.User
		if err := config.DB.Preload("Rol").First(&user, userID).Error; err == nil {
			c.Set("user", user)
		}
		c.Next()
	}
}

// SellerMiddleware gates product mutations on the seller role.
// Requires AuthMiddleware before it in the chain.
func SellerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			utils.LogError("User not found in context")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
			c.Abort()
			return
		}

		switch user.Rol.Type {
		case models.RoleSeller:
			c.Next()
		case models.RoleClient:
			utils.LogError("Non-seller user attempted seller access: %d", user.ID)
			c.JSON(http.StatusForbidden, gin.H{"error": "Seller role required"})
			c.Abort()
		default:
			utils.LogError("User %d has unknown role %q", user.ID, user.Rol.Type)
			c.JSON(http.StatusForbidden, gin.H{"error": "Seller role required"})
			c.Abort()
		}
	}
}
