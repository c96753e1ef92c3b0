package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/memberhq/backend/internal/auth"
	"github.com/memberhq/backend/pkg/response"
)

// JWT returns a middleware that validates the bearer token and sets user
// claims in context. A token revoked by logout is rejected like an invalid one.
func JWT(jwtService *auth.JWTService, sessions *auth.RevocationStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header")
			c.Abort()
			return
		}
		claims, err := jwtService.Validate(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}
		if sessions != nil && sessions.IsRevoked(c.Request.Context(), claims.ID) {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}
		c.Set(auth.ContextUserID, claims.UserID)
		c.Set(auth.ContextUserRole, claims.Role)
		c.Set(auth.ContextUserEmail, claims.Email)
		c.Set(auth.ContextClaims, claims)
		c.Next()
	}
}
