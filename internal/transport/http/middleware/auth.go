package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/5-in-a-row/backend/pkg/auth"
	"github.com/iamasit07/5-in-a-row/backend/pkg/httputil"
)

const (
	GuestIDKey  = "guest_id"
	UsernameKey = "username"
)

// AuthMiddleware validates the guest JWT and stores its identity on the context
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := httputil.GetTokenFromRequest(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		claims, err := auth.ValidateGuestToken(jwtSecret, tokenString)
		if err != nil {
			httputil.ClearAuthCookie(c.Writer)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(GuestIDKey, claims.GuestID)
		c.Set(UsernameKey, claims.Username)
		c.Next()
	}
}

// GuestID returns the authenticated guest, or "" outside AuthMiddleware.
func GuestID(c *gin.Context) string {
	return c.GetString(GuestIDKey)
}
