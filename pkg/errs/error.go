// Package errs defines the terminal errors service operations surface to
// their callers. Every error maps to one HTTP status; there is no local
// recovery or retry below this layer.
package errs

import (
	"errors"
	"net/http"
)

// Error is an operation error safe to show to the caller.
type Error struct {
	Code    int // HTTP status the error maps to
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	// ErrUnauthenticated is returned when no caller identity is present
	// where one is required.
	ErrUnauthenticated = &Error{http.StatusUnauthorized, "not authenticated"}
	// ErrForbidden is returned when the caller is authenticated but not
	// authorized for the target record.
	ErrForbidden = &Error{http.StatusForbidden, "not authorized for this resource"}

	ErrUserNotFound    = &Error{http.StatusNotFound, "user not found"}
	ErrPostNotFound    = &Error{http.StatusNotFound, "post not found"}
	ErrCommentNotFound = &Error{http.StatusNotFound, "comment not found"}

	// ErrHandleTaken and ErrEmailTaken are the commit-time uniqueness
	// guarantees behind the advisory availability probes.
	ErrHandleTaken = &Error{http.StatusConflict, "handle already taken"}
	ErrEmailTaken  = &Error{http.StatusConflict, "email already registered"}

	ErrEmptyPost    = &Error{http.StatusBadRequest, "post must have a caption or an image"}
	ErrEmptyComment = &Error{http.StatusBadRequest, "comment cannot be empty"}
	ErrSelfFollow   = &Error{http.StatusBadRequest, "cannot follow yourself"}
)

// HTTPStatus reports the status an error maps to, defaulting to 500 for
// anything that is not an *Error.
func HTTPStatus(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return http.StatusInternalServerError
}
