// Package handlers provides HTTP handler implementations for the public API.
//
// Two response shapes exist. The chat contract always answers with
// {"response": "..."}, including the 400 prompt. Everything that is not part
// of that contract (storage failures, oversized bodies, unknown routes) uses
// ErrorResponse with a stable code from errors.go:
//
//	HTTP/1.1 500 Internal Server Error
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "log_failed",
//	  "message": "could not record interaction"
//	}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-support-chat/internal/http/middleware"
)

// ErrorResponse is the error envelope for non-chat failures.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"log_failed"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"could not record interaction"`
}

// fail aborts with an ErrorResponse. 5xx are logged at error level with the
// request-scoped logger; cause, when non-nil, is attached to that log line
// and never to the body.
func fail(c *gin.Context, status int, code, msg string, cause ...error) {
	if status >= http.StatusInternalServerError {
		ev := middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code)
		if len(cause) > 0 && cause[0] != nil {
			ev = ev.Err(cause[0])
		}
		ev.Msg(msg)
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
	})
}

// Fail is the exported variant of fail() for the router's fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// prompt answers 400 with the fixed chat prompt.
func prompt(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ChatResponse{Response: PromptMessage})
}

func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}
