package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kerem-kaynak/fabrika/internal/utils"
)

// JWTAuthMiddleware guards the API with a bearer token. The guard is a no-op
// when JWT_SECRET is not configured, tokens are minted out-of-band.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if os.Getenv("JWT_SECRET") == "" {
			c.Next()
			return
		}

		tokenString := ""
		if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
			tokenString = strings.TrimPrefix(header, "Bearer ")
		} else if cookie, err := c.Cookie("token"); err == nil {
			tokenString = cookie
		}

		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		claims, err := utils.ValidateJWT(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Set("claims", claims)
		c.Next()
	}
}
