package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error is an error that knows the HTTP status it should be served with.
// Every handler-facing failure in the API is one of these; anything else
// is treated as a 500.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New builds an Error with an explicit status code.
func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// Forbidden is a 403 denial.
func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message)
}

// Unauthorized is a 401 denial.
func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

// BadRequest is a 400 rejection.
func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

// Internal is a 500 — reserved for programming errors and collaborator
// failures the client can do nothing about.
func Internal(message string) *Error {
	return New(http.StatusInternalServerError, message)
}

// Send converts any error into the uniform {"message": ...} JSON body and
// writes it. Errors without a status are masked as a 500.
func Send(c *gin.Context, err error) {
	var httpErr *Error
	if errors.As(err, &httpErr) {
		c.JSON(httpErr.Status, gin.H{"message": httpErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
}

// Abort sends the error and stops the handler chain.
func Abort(c *gin.Context, err error) {
	Send(c, err)
	c.Abort()
}
