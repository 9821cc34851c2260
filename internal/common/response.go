package common

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorInfo is the body of every error response.
type ErrorInfo struct {
	Code    string `json:"code" example:"NOT_FOUND"`
	Message string `json:"message" example:"user not found"`
}

// ErrorResponse wraps ErrorInfo under the "error" key.
type ErrorResponse struct {
	Error ErrorInfo `json:"error"`
}

// StatusFor maps an error from the service layer to an HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Abort writes an error response and stops the handler chain.
func Abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorInfo{Code: errorCode(status), Message: message},
	})
}

func errorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "CONFLICT"
	case http.StatusInternalServerError:
		return "INTERNAL_SERVER_ERROR"
	default:
		return "ERROR"
	}
}
