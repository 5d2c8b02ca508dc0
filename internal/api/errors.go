package api

import (
	"github.com/gin-gonic/gin"

	"github.com/tasktrail/tasktrail/internal/metrics"
	"github.com/tasktrail/tasktrail/internal/middleware"
)

// Error code constants for standardized API responses.
const (
	ErrCodeInvalidRequest  = "invalid_request"
	ErrCodeNotFound        = "not_found"
	ErrCodeInternalError   = "internal_error"
	ErrCodeValidationError = "validation_error"
)

// respondError writes a standardized JSON error response, pulling the
// request ID from the Gin context (set by the request ID middleware).
func respondError(c *gin.Context, status int, code, message string) {
	metrics.ErrorsTotal.WithLabelValues(code).Inc()

	resp := map[string]string{
		"code":    code,
		"message": message,
	}

	if rid := c.GetString(middleware.RequestIDKey); rid != "" {
		resp["request_id"] = rid
	}

	c.AbortWithStatusJSON(status, resp)
}
