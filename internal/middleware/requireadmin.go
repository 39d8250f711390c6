package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"petition-backend/internal/service"
)

// RequireAdmin gates admin-only routes. A missing or invalid token is an
// authentication failure (401); a valid token without the admin capability is
// an authorization failure (403).
func RequireAdmin(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.String(http.StatusUnauthorized, "Missing auth token")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.String(http.StatusUnauthorized, "Missing auth token")
			c.Abort()
			return
		}

		claims, err := auth.Authorize(parts[1])
		if err != nil {
			if errors.Is(err, service.ErrNotAdmin) {
				c.String(http.StatusForbidden, "Admin only")
			} else {
				c.String(http.StatusUnauthorized, "Invalid auth token")
			}
			c.Abort()
			return
		}

		c.Set("admin_claims", claims)

		c.Next()
	}
}
