package middleware

import "github.com/gin-gonic/gin"

var apiSecurityHeaders = map[string]string{
	"X-Content-Type-Options":  "nosniff",
	"X-Frame-Options":         "DENY",
	"Referrer-Policy":         "no-referrer",
	"Content-Security-Policy": "default-src 'none'; frame-ancestors 'none'",
	// Lists and items are per-user.
	"Cache-Control": "no-store",
}

// SecurityHeadersMiddleware sets response headers suited to a JSON API.
// HSTS is only sent when the service runs behind TLS in production.
func SecurityHeadersMiddleware(production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		headers := c.Writer.Header()
		for name, value := range apiSecurityHeaders {
			headers.Set(name, value)
		}
		if production {
			headers.Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains")
		}

		c.Next()
	}
}
