package response

import "github.com/gin-gonic/gin"

// Error codes shared across handlers. Security-sensitive paths must stick to
// the generic codes so responses stay enumeration-safe.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeTokenReuse   = "TOKEN_REUSE_DETECTED"
	CodeNotFound     = "NOT_FOUND"
	CodeLocked       = "ACCOUNT_LOCKED"
	CodeRateLimited  = "RATE_LIMITED"
	CodeInternal     = "INTERNAL"
)

func Success(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// ErrorWithFields attaches per-field validation messages to the envelope.
func ErrorWithFields(c *gin.Context, statusCode int, code string, message string, fields map[string]string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"fields":  fields,
		},
	})
}

// AbortError writes the error envelope and stops the handler chain.
func AbortError(c *gin.Context, statusCode int, code string, message string) {
	c.AbortWithStatusJSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
