package httpx

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const ownerKey = "owner"

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set("rid", rid)
		c.Writer.Header().Set("X-Request-ID", rid)
		c.Next()
	}
}

func Logger(logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		rid := c.GetString("rid")
		logger.Info().
			Str("request_id", rid).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request completed")
	}
}

// RequireOwner extracts the owner identity resolved by the upstream
// auth layer. Requests without it never reach the cart/order handlers.
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		owner := c.GetHeader("X-Owner-ID")
		if owner == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing owner identity"})
			return
		}
		c.Set(ownerKey, owner)
		c.Next()
	}
}

func Owner(c *gin.Context) string {
	return c.GetString(ownerKey)
}

// RequireAdmin gates administrative endpoints on the role resolved by
// the upstream auth layer.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin privileges required"})
			return
		}
		c.Next()
	}
}

func IsAdmin(c *gin.Context) bool {
	return strings.EqualFold(c.GetHeader("X-Owner-Role"), "admin")
}
