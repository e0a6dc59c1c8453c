package auth

import "github.com/gin-gonic/gin"

// Context keys under which AuthRequired stores the verified claims.
const (
	ctxUserID  = "auth.userID"
	ctxIsAdmin = "auth.isAdmin"
)

// GetUserID returns the authenticated user's ID, or "" on an anonymous call.
func GetUserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

// IsAdmin reports whether the request's token carried the admin claim.
func IsAdmin(c *gin.Context) bool {
	return c.GetBool(ctxIsAdmin)
}
