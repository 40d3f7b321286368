package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const userIDKey = "user_id"

// requireIdentity expects the authentication layer in front of this service
// to pass the caller's identity in X-User-ID. Session handling itself is out
// of scope here.
func requireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetHeader("X-User-ID")
		if uid == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Set(userIDKey, uid)
		c.Next()
	}
}

func currentUser(c *gin.Context) string {
	return c.GetString(userIDKey)
}
