package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"velvetdir/internal/domain"
	"velvetdir/internal/pkg/response"
)

// RequireRole aborts unless the authenticated actor holds one of the
// given roles. Must run after Auth.
func RequireRole(roles ...domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
			c.Abort()
			return
		}
		for _, role := range roles {
			if actor.Role == role {
				c.Next()
				return
			}
		}
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "insufficient role")
		c.Abort()
	}
}

func AdminOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin)
}
