package middleware

import (
	"net/http"
	"strings"

	"tictactoe_arena/internal/service"

	"github.com/gin-gonic/gin"
)

// JWT authenticates `Authorization: Bearer <token>` and stores the resolved
// identity in the request context under "user_id" and "display_name".
func JWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		if token == header || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "bearer token required"})
			return
		}

		identity, err := service.ParseJWT(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set("user_id", identity.UserID)
		c.Set("display_name", identity.DisplayName)
		c.Next()
	}
}
