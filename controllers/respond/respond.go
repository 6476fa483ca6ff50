// Package respond writes the storefront's JSON envelope. Failures that the
// customer can act on are reported with HTTP 200 and success=false.
package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OK writes {"success": true} merged with body.
func OK(c *gin.Context, body gin.H) {
	out := gin.H{"success": true}
	for k, v := range body {
		out[k] = v
	}
	c.JSON(http.StatusOK, out)
}

// Fail writes {"success": false, "message": message} merged with extra.
func Fail(c *gin.Context, message string, extra ...gin.H) {
	out := gin.H{"success": false, "message": message}
	for _, h := range extra {
		for k, v := range h {
			out[k] = v
		}
	}
	c.JSON(http.StatusOK, out)
}
