// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements the static bearer-token check guarding /api/*. The
// token is the shared admin password handed out by POST /api/login; there
// are no per-user credentials and no expiry (legacy contract). The check is
// constant-time so the token cannot be probed byte by byte.
package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// bearerPrefix is matched case-insensitively per RFC 7235.
const bearerPrefix = "bearer "

// BearerAuth returns a middleware that rejects requests whose Authorization
// header does not carry the expected token, with the legacy 401 body
// `{"erro":"Não autorizado"}`.
func BearerAuth(token string) gin.HandlerFunc {
	expected := []byte(token)
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if len(header) < len(bearerPrefix) ||
			!strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
			unauthorized(c)
			return
		}
		got := strings.TrimSpace(header[len(bearerPrefix):])
		if subtle.ConstantTimeCompare([]byte(got), expected) != 1 {
			unauthorized(c)
			return
		}
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"erro": "Não autorizado"})
}
