package respond

import (
	"github.com/gin-gonic/gin"

	"resume-roaster/internal/shared/telemetry"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Message string      `json:"message"`
	Code    string      `json:"code"`
	Kind    string      `json:"kind,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// Error sends a standardized error response.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	Abort(c, status, ErrorResponse{Code: code, Message: message, Details: details})
}

// Abort logs and writes a prepared error body.
func Abort(c *gin.Context, status int, body ErrorResponse) {
	fields := map[string]any{
		"status":     status,
		"code":       body.Code,
		"message":    body.Message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if body.Kind != "" {
		fields["kind"] = body.Kind
	}
	telemetry.Error("http.error", fields)

	c.AbortWithStatusJSON(status, body)
}
