package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminKeyHeader carries the shared admin secret.
const AdminKeyHeader = "X-Admin-Key"

// RequireAdminKey rejects requests whose admin key does not equal key. Browsers
// cannot set headers on a websocket handshake, so the admin_key query parameter
// is accepted as well. An empty key locks every admin route.
func RequireAdminKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader(AdminKeyHeader)
		if provided == "" {
			provided = c.Query("admin_key")
		}
		if key == "" || provided != key {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}
