package middleware

import (
	"github.com/gin-gonic/gin"

	"slidedeck-backend/internal/shared/response"
)

// AdminMiddleware gates maintenance routes on the admin role. Runs after
// AuthMiddleware, which stores the role from the token claims.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		roleValue, exists := c.Get("role")
		if !exists {
			response.Forbidden(c, "Admin role required")
			c.Abort()
			return
		}

		role, ok := roleValue.(string)
		if !ok || role != "admin" {
			response.Forbidden(c, "Admin role required")
			c.Abort()
			return
		}

		c.Next()
	}
}
