package api

import (
	"errors"
	"net/http"

	"pizzeria/internal/apperrs"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// APIError is the uniform error response body. Errors carries per-field
// details and is present only for validation failures.
type APIError struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// ErrorResponse writes a plain error body with the given status.
func ErrorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, APIError{Message: message})
}

// Shortcut responses.

// BadRequest writes a 400 with the given message.
func BadRequest(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, message)
}

// ValidationFailed writes a 400 carrying the per-field error map.
func ValidationFailed(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusBadRequest, APIError{
		Message: "validation failed",
		Errors:  fields,
	})
}

// Unauthorized writes a 401.
func Unauthorized(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusUnauthorized, message)
}

// Forbidden writes a 403.
func Forbidden(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusForbidden, message)
}

// NotFound writes a 404.
func NotFound(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusNotFound, message)
}

// InternalError writes a 500.
func InternalError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, message)
}

// ServiceUnavailable writes a 503.
func ServiceUnavailable(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusServiceUnavailable, message)
}

// writeServiceError maps a service-layer error onto an HTTP response by
// inspecting the error kind. Unknown errors become a logged 500.
func writeServiceError(c *gin.Context, err error) {
	var appErr *apperrs.Error
	if errors.As(err, &appErr) {
		switch appErr.Kind {
		case apperrs.KindNotFound:
			NotFound(c, appErr.Message)
			return
		case apperrs.KindForbidden:
			Forbidden(c, appErr.Message)
			return
		case apperrs.KindValidation:
			if len(appErr.Fields) > 0 {
				ValidationFailed(c, appErr.Fields)
			} else {
				BadRequest(c, appErr.Message)
			}
			return
		case apperrs.KindUnavailable:
			logrus.WithError(err).Warn("upstream dependency unavailable")
			ServiceUnavailable(c, appErr.Message)
			return
		case apperrs.KindStorage:
			logrus.WithError(err).Error("datastore operation failed")
			InternalError(c, appErr.Message)
			return
		}
	}

	logrus.WithError(err).Error("unhandled service error")
	InternalError(c, "internal server error")
}
