package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wildpitch/spot-booking-backend/internal/auth"
)

// RequireAdmin allows only platform admins through. Must run after
// auth.AuthRequired, which stores the admin claim from the token.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth.GetUserID(c) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if !auth.IsAdmin(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}

		c.Next()
	}
}
