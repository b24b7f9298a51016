package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/arsh246/weather-app/internal/auth"
)

type contextKey string

const userContextKey = contextKey("user")

// AuthRequired verifies the caller's bearer token on every request and stores
// the verified user id on the request context. The token is taken from the
// Authorization header; the id_token query parameter is accepted as a
// fallback because the web frontend sends it that way.
func AuthRequired(verifier auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization required"})
			return
		}

		uid, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid auth token"})
			return
		}

		ctx := context.WithValue(c.Request.Context(), userContextKey, uid)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Query("id_token")
}

// UserID returns the verified user id placed on the context by AuthRequired,
// or "" when the request never passed the auth gate.
func UserID(ctx context.Context) string {
	uid, _ := ctx.Value(userContextKey).(string)
	return uid
}
