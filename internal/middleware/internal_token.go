package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"velvetdir/internal/pkg/response"
)

// InternalToken guards operational endpoints (the sweep trigger) with
// a shared secret delivered out of band. An empty configured token
// disables the surface entirely.
func InternalToken(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "not found")
			c.Abort()
			return
		}
		got := c.GetHeader("X-Internal-Token")
		if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid internal token")
			c.Abort()
			return
		}
		c.Next()
	}
}
