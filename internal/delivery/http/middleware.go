package http

import (
	"net/http"
	"strings"

	"lingolearn-backend/internal/domain"
	"lingolearn-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves the bearer credential into an Actor and enforces
// the role gate for the route group.
func AuthMiddleware(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid auth header format"})
			return
		}

		claims, err := utils.ValidateJWT(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}

		actor := domain.Actor{
			ID:    claims.UserID,
			Role:  domain.Role(claims.Role),
			Level: domain.Level(claims.Level),
		}

		if len(roles) > 0 {
			allowed := false
			for _, r := range roles {
				if r == actor.Role {
					allowed = true
					break
				}
			}
			if !allowed {
				c.AbortWithStatusJSON(http.StatusForbidden,
					gin.H{"message": "Access denied. " + claims.Role + " role is not authorized"})
				return
			}
		}

		c.Set("actor", actor)
		c.Next()
	}
}

func getActor(c *gin.Context) domain.Actor {
	v, _ := c.Get("actor")
	actor, _ := v.(domain.Actor)
	return actor
}
