package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-backend/internal/shared/response"
)

const apiKeyHeader = "X-API-Key"

// APIKey rejects requests that do not carry the configured key in the
// X-API-Key header. The comparison is constant-time. Routes registered
// outside the guarded groups (health, root) are not affected.
func APIKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader(apiKeyHeader)

		if provided == "" {
			log.Warn().
				Str("request_id", c.GetString("request_id")).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Str("ip", c.ClientIP()).
				Msg("API key missing")
			response.ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED",
				"Please provide an API key in the X-API-Key header")
			c.Abort()
			return
		}

		if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
			log.Warn().
				Str("request_id", c.GetString("request_id")).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Str("ip", c.ClientIP()).
				Msg("Invalid API key")
			response.ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED",
				"The provided API key is not valid")
			c.Abort()
			return
		}

		c.Next()
	}
}
