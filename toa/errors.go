package toa

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	// ErrInvalidArgument is wrapped by errors returned before any request is sent
	// because a caller-supplied identifier or season cannot form a valid path.
	ErrInvalidArgument = errors.New("toa: invalid argument")
	// ErrEmptyResponse is wrapped by a DeserializationError when a single-record
	// endpoint answers with an empty array.
	ErrEmptyResponse = errors.New("toa: empty response")
	// ErrUnknownSeason is returned when a season key is not one of the known seasons.
	ErrUnknownSeason = errors.New("toa: unknown season")
)

// TransportError reports that the request never produced a readable response:
// DNS failure, refused connection, timeout, cancellation or a broken body read.
type TransportError struct {
	Method   string
	URL      string
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("toa: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIStatusError reports a non-200 response from the API.
type APIStatusError struct {
	StatusCode int
	Endpoint   string
	// Body holds the leading bytes of the response body, trimmed.
	Body string
	// Message is TOA's "_message" when the body is its JSON error envelope.
	Message    string
	RetryAfter time.Duration
}

func (e *APIStatusError) Error() string {
	detail := e.Message
	if detail == "" {
		detail = e.Body
	}
	if detail == "" {
		detail = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("toa: %s: unexpected status %d: %s", e.Endpoint, e.StatusCode, detail)
}

// DeserializationError reports a 200 response whose body did not match the
// expected resource schema.
type DeserializationError struct {
	Endpoint string
	// Body holds a short excerpt of the offending payload.
	Body string
	Err  error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("toa: %s: decode response: %v", e.Endpoint, e.Err)
}

func (e *DeserializationError) Unwrap() error {
	return e.Err
}

// AsTransportError attempts to unwrap an error into a TransportError.
func AsTransportError(err error) (*TransportError, bool) {
	var tErr *TransportError
	if errors.As(err, &tErr) {
		return tErr, true
	}
	return nil, false
}

// AsAPIStatusError attempts to unwrap an error into an APIStatusError.
func AsAPIStatusError(err error) (*APIStatusError, bool) {
	var sErr *APIStatusError
	if errors.As(err, &sErr) {
		return sErr, true
	}
	return nil, false
}

// AsDeserializationError attempts to unwrap an error into a DeserializationError.
func AsDeserializationError(err error) (*DeserializationError, bool) {
	var dErr *DeserializationError
	if errors.As(err, &dErr) {
		return dErr, true
	}
	return nil, false
}

// IsNotFound reports whether err is an APIStatusError carrying 404.
func IsNotFound(err error) bool {
	sErr, ok := AsAPIStatusError(err)
	return ok && sErr.StatusCode == http.StatusNotFound
}

// IsRateLimited reports whether err is an APIStatusError carrying 429.
func IsRateLimited(err error) bool {
	sErr, ok := AsAPIStatusError(err)
	return ok && sErr.StatusCode == http.StatusTooManyRequests
}

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
