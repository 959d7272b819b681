package api

import (
	"errors"
	"fmt"
)

// Common client errors
var (
	// ErrMissingID is returned when an operation that needs a document id
	// is invoked without one.
	ErrMissingID = errors.New("missing document id")

	// ErrMissingBaseURL is returned when the client is constructed without
	// a backend base URL.
	ErrMissingBaseURL = errors.New("missing backend base URL")
)

// StatusError is the client-visible form of a non-2xx backend response.
// Its message matches what the other clients of this backend show their
// users: the status code followed by the raw body.
type StatusError struct {
	StatusCode int
	Body       []byte
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, string(e.Body))
}

// RequestError wraps transport-level failures with the operation that
// issued them.
type RequestError struct {
	// Op is the operation that failed (e.g., "Login", "UploadPic").
	Op string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return fmt.Sprintf("api: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *RequestError) Unwrap() error {
	return e.Err
}

// Is implements error matching for Go 1.13+ error handling.
func (e *RequestError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// WrapRequestError wraps an error as a RequestError if it isn't already one.
func WrapRequestError(op string, err error) error {
	if err == nil {
		return nil
	}

	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return err // Already wrapped
	}

	return &RequestError{Op: op, Err: err}
}
