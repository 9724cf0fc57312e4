// Package handlers holds the gin HTTP handlers for the structure API and
// the health endpoints.
package handlers

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/molscope/molscope/pkg/errors"
)

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondError writes a structured error response. The status comes from the
// error's code mapping; unclassified internal errors are masked.
func respondError(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		c.JSON(status, ErrorResponse{
			Code:    string(errors.CodeInternal),
			Message: "internal server error",
		})
		return
	}
	message := err.Error()
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		message = appErr.Message
	}
	c.JSON(status, ErrorResponse{
		Code:    string(errors.GetCode(err)),
		Message: message,
	})
}

// queryInt parses an integer query parameter, falling back to def when the
// parameter is absent or malformed.
func queryInt(c *gin.Context, name string, def int) int {
	v := c.Query(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
