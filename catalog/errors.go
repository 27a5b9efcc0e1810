package catalog

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the service has no product with the
// requested ID.
var ErrNotFound = errors.New("product not found")

// APIError is a non-2xx response from the catalog service.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("catalog service error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("catalog service error (status %d): %s", e.StatusCode, e.Body)
}

// TransportError wraps a network-level failure: the request never produced
// an HTTP response (connection refused, DNS failure, timeout).
type TransportError struct {
	err error
}

func (e *TransportError) Error() string {
	return e.err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.err
}

// NewTransportError wraps an error as a transport failure.
func NewTransportError(err error) error {
	return &TransportError{err: err}
}

// IsTransport reports whether the error is a network-level failure rather
// than a service response.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
