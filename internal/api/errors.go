package api

import (
	"context"
	"errors"
	"fmt"
)

// TransportError is a request that never produced an HTTP response
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError is a response with a non-success status code
type StatusError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *StatusError) Error() string {
	return e.Message
}

// BackendError is a successful response whose payload carries an error field
type BackendError struct {
	Message string
}

func (e *BackendError) Error() string {
	return e.Message
}

// MissingFieldError is a successful payload that lacks the expected field.
// Raw holds the compacted payload.
type MissingFieldError struct {
	Field string
	Raw   []byte
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("response has no %q field: %s", e.Field, e.Raw)
}

// ExtractionError reports an upload whose extracted text is empty or too short to use
type ExtractionError struct {
	Filename  string
	CharCount int
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("could not extract text from %q (%d characters)", e.Filename, e.CharCount)
}

// ResponseTooLargeError reports that the response body exceeded the limit
type ResponseTooLargeError struct {
	Limit int64
}

func (e *ResponseTooLargeError) Error() string {
	return fmt.Sprintf("response body exceeded limit of %d bytes", e.Limit)
}

// Reason returns the user-facing cause of err without any prefix
func Reason(err error) string {
	if err == nil {
		return ""
	}

	var missing *MissingFieldError
	var backend *BackendError
	var status *StatusError
	var transport *TransportError

	switch {
	case errors.As(err, &missing):
		return string(missing.Raw)
	case errors.As(err, &backend):
		return backend.Message
	case errors.As(err, &status):
		return status.Message
	case errors.Is(err, context.Canceled):
		return "request cancelled"
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	case errors.As(err, &transport):
		return transport.Err.Error()
	default:
		return err.Error()
	}
}

// Describe renders err as the single line shown to the user.
// Payload problems read "Error: ..." and transport failures read "Request failed: ...".
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var transport *TransportError
	if errors.As(err, &transport) {
		return "Request failed: " + Reason(err)
	}
	return "Error: " + Reason(err)
}

// IsTransport reports whether err is a network-level failure
func IsTransport(err error) bool {
	var transport *TransportError
	return errors.As(err, &transport)
}
