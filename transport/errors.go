package transport

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrInvalidUploadBody indicates an upload whose body is not a *request.FormData
	ErrInvalidUploadBody = errors.New("upload body must be *request.FormData")
)

// HTTPError represents an error response from the service
type HTTPError struct {
	StatusCode int
	Message    string
	Body       []byte
}

// Error implements the error interface
func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound checks if the error indicates a not found response
func (e *HTTPError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *HTTPError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}
