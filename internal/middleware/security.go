// SPDX-License-Identifier: AGPL-3.0-only
package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// SecurityHeadersMiddleware sets the standard hardening headers. Media may
// only come from the app itself and the Mirror server it talks to.
func SecurityHeadersMiddleware(mediaOrigin string) gin.HandlerFunc {
	csp := fmt.Sprintf("default-src 'self'; img-src 'self' %s; media-src 'self' %s; script-src 'self' 'unsafe-inline'; style-src 'self'", mediaOrigin, mediaOrigin)
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy", csp)
		c.Next()
	}
}
