package httperr

import (
	"net/http"

	cr "github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
)

// HTTPError is the body of every error response.
type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

// Respond renders err from a use case: business errors by code, anything else
// as a 500 with no internal detail. The cause stays on the gin context for the
// access log.
func Respond(c *gin.Context, err error) {
	var be BusinessError
	if cr.As(err, &be) {
		Write(c, be.Status(), be.Code, be.Code)
		return
	}

	_ = c.Error(err)
	Internal(c, "internal_error", "internal server error")
}

// ------------------------------------------------------
// Shorthands for handler-level failures
// ------------------------------------------------------

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}
