package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vaxcare/vaxcare-backend/internal/auth"
)

const errUnauthorized = "Unauthorized"

// bearerToken extracts the raw token from an Authorization header,
// or "" when the header is missing or uses another scheme.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// Auth validates a Bearer access token and sets "userID" in the gin context.
// A missing header, a non-Bearer scheme, and a malformed, expired, or
// mis-signed token all produce the same 401 body.
func Auth(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		userID, err := tokens.VerifyAccessToken(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}

// OptionalAuth performs the same extraction as Auth but never aborts:
// on any failure the request simply proceeds anonymously, with no
// "userID" in the context.
func OptionalAuth(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := bearerToken(c); raw != "" {
			if userID, err := tokens.VerifyAccessToken(raw); err == nil {
				c.Set("userID", userID)
			}
		}
		c.Next()
	}
}
