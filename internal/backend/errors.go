package backend

import (
	"errors"
	"fmt"
)

// ErrUnauthorized indicates the session token is missing, invalid or
// expired
var ErrUnauthorized = errors.New("backend session is invalid or expired")

// ErrRateLimited indicates the backend rate limit was exceeded
var ErrRateLimited = errors.New("backend API rate limit exceeded")

// ErrNotFound indicates the requested document does not exist
var ErrNotFound = errors.New("backend document not found")

// ServerError represents a 5xx error from the backend API
type ServerError struct {
	StatusCode int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("backend server error: HTTP %d", e.StatusCode)
}
