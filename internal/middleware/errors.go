package middleware

import "github.com/gin-gonic/gin"

// respondError writes a standardized JSON error response and aborts the
// request. Mirrors the api package's error shape so clients see one
// format regardless of which layer rejected the request.
func respondError(c *gin.Context, status int, code, message string) {
	resp := map[string]string{
		"code":    code,
		"message": message,
	}

	if rid := c.GetString(RequestIDKey); rid != "" {
		resp["request_id"] = rid
	}

	c.AbortWithStatusJSON(status, resp)
}
