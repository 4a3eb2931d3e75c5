package middleware

import (
	"net/http"

	"shopping-list-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

const (
	DefaultMaxRequestSize = 1 << 20

	RequestTooLargeCode = "REQUEST_TOO_LARGE"
)

// RequestSizeLimitMiddleware rejects declared bodies above maxSize and caps
// the rest, so a chunked body that overruns fails while being decoded.
func RequestSizeLimitMiddleware(maxSize int64) gin.HandlerFunc {
	if maxSize <= 0 {
		maxSize = DefaultMaxRequestSize
	}

	return func(c *gin.Context) {
		if c.Request.Body == nil || c.Request.Body == http.NoBody {
			c.Next()
			return
		}

		if c.Request.ContentLength > maxSize {
			RespondTooLarge(c)
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}

// RespondTooLarge aborts with 413.
func RespondTooLarge(c *gin.Context) {
	utils.ErrorResponseWithCode(c, http.StatusRequestEntityTooLarge, RequestTooLargeCode, "Request body too large")
	c.Abort()
}
