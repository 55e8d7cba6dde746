package apperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Kind classifies a domain error so the route layer can map it to a status.
type Kind int

const (
	// KindBadRequest means the caller input was malformed.
	KindBadRequest Kind = iota
	// KindUnauthorized means the caller is authenticated but not permitted
	// to act on this specific resource.
	KindUnauthorized
	// KindServer means a domain rule was violated or persistence failed.
	KindServer
)

// Error is the single error type crossing the service boundary.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func BadRequest(msg string) *Error {
	return &Error{Kind: KindBadRequest, Message: msg}
}

func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

func Server(msg string) *Error {
	return &Error{Kind: KindServer, Message: msg}
}

// Respond writes the error to the client with the status matching its kind.
// Errors that are not *Error are treated as unexpected server failures.
func Respond(c *gin.Context, err error) {
	if appErr, ok := err.(*Error); ok {
		switch appErr.Kind {
		case KindBadRequest:
			c.JSON(http.StatusBadRequest, gin.H{"error": appErr.Message})
		case KindUnauthorized:
			c.JSON(http.StatusForbidden, gin.H{"error": appErr.Message})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": appErr.Message})
		}
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred"})
}
