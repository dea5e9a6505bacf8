package api

import (
	"errors"
	"fmt"
)

// Common library-server API errors.
var (
	// ErrNotFound is returned when a resource does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is returned when the session token is missing or expired.
	ErrUnauthorized = errors.New("unauthorized: please sign in")
)

// Error is a non-2xx response from the library server carrying the
// server's detail message.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("server error %d", e.Status)
}

// DetailMessage returns the server's detail message for an error when one
// exists, falling back to the error's own message. Views use this to show
// mutation failures.
func DetailMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return err.Error()
}
