package middleware

import "github.com/gin-gonic/gin"

// Error codes emitted directly by middleware. Handlers share the same
// envelope and code space.
const (
	CodeInternal          = "internal_error"
	CodeRateLimited       = "too_many_requests"
	CodeBadIdempotencyKey = "bad_idempotency_key"
)

// AbortJSON stops the chain with the uniform error envelope:
//
//	{"success": false, "requestId": "...", "code": "...", "error": "..."}
func AbortJSON(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success":   false,
		"requestId": RequestIDFrom(c),
		"code":      code,
		"error":     msg,
	})
}

// RequestIDFrom returns the correlation id set by RequestID, falling back to
// the response header.
func RequestIDFrom(c *gin.Context) string {
	if v, ok := c.Get(requestIDKey); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return c.Writer.Header().Get(requestIDHeader)
}
