package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"velvetdir/internal/domain"
	"velvetdir/internal/pkg/jwt"
	"velvetdir/internal/pkg/response"
)

const actorKey = "actor"

// Auth validates the Bearer token and stores the resulting Actor on
// the request context.
func Auth(tokens *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token")
			c.Abort()
			return
		}

		claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(actorKey, domain.Actor{ID: claims.UserID, Role: domain.UserRole(claims.Role)})
		c.Next()
	}
}

// ActorFrom returns the authenticated actor placed by Auth.
func ActorFrom(c *gin.Context) (domain.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return domain.Actor{}, false
	}
	actor, ok := v.(domain.Actor)
	return actor, ok
}
