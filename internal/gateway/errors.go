package gateway

import (
	"fmt"
	"net/http"

	apperrors "github.com/medipharm/medipharm-console/internal/errors"
)

var (
	_ apperrors.HTTPFailure = (*ResponseError)(nil)
)

// ResponseError is returned for any non-2xx backend response.
type ResponseError struct {
	Method string
	URL    string
	Status int
	Body   []byte
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("Request failed with status code %d", e.Status)
}

// StatusCode implements apperrors.HTTPFailure.
func (e *ResponseError) StatusCode() int { return e.Status }

// ResponseBody implements apperrors.HTTPFailure.
func (e *ResponseError) ResponseBody() []byte { return e.Body }

// Unauthorized reports whether the backend rejected the access token.
func (e *ResponseError) Unauthorized() bool { return e.Status == http.StatusUnauthorized }

// TransportError means no response was received from the backend.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string { return e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }
