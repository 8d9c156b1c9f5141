package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// adminTokenHeader carries the shared secret for destructive bulk routes.
const adminTokenHeader = "X-Admin-Token"

// RequireAdminToken returns a middleware that gates destructive routes
// (bulk deletes and per-user bulk mutations) behind a shared secret.
//
// Behavior:
//   - The client must send the secret in the X-Admin-Token header.
//   - Comparison is constant-time to avoid timing side channels.
//   - When no token is configured (empty string), every attempt is rejected
//     with 401: an operator must opt in explicitly before these routes work.
//   - A configured token with a wrong header value yields 403.
//
// Responses use the same JSON envelope as the rate limiter:
//
//	{ "request_id": "<uuid>", "code": "unauthorized", "message": "..." }
func RequireAdminToken(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.Writer.Header().Get(requestIDHeader)

		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"request_id": rid,
				"code":       "unauthorized",
				"message":    "admin operations are disabled",
			})
			return
		}

		got := c.GetHeader(adminTokenHeader)
		if got == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"request_id": rid,
				"code":       "unauthorized",
				"message":    "missing admin token",
			})
			return
		}

		if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"request_id": rid,
				"code":       "forbidden",
				"message":    "invalid admin token",
			})
			return
		}

		c.Next()
	}
}
