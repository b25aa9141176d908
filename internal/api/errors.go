package api

import (
	"errors"
	"fmt"
)

// Causes of spec validation failures.
var (
	ErrUnknownProperty = errors.New("unknown properties")
	ErrInvalidPath     = errors.New("path must be an array of strings")
	ErrInvalidMethod   = errors.New("method is invalid")
	ErrSendRequired    = errors.New("send required for POST or PUT")
	ErrSendNotObject   = errors.New("send must be a plain object for POST or PUT")
	ErrSendNotAllowed  = errors.New("a body (send) is not supported")
	ErrInvalidReceive  = errors.New("receive must be null or a function")
	ErrInvalidStatus   = errors.New("invalid expectStatus")
)

// Patch errors.
var (
	ErrAlreadyPatched = errors.New("already patched")
	ErrNotPatched     = errors.New("not patched yet")
)

// SpecError reports a malformed request spec. It signals a defect in the
// calling code and is never retried.
type SpecError struct {
	Field string // spec property at fault, empty for the whole spec
	Err   error
}

func (e *SpecError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid request spec: %s: %s", e.Field, e.Err)
	}
	return fmt.Sprintf("invalid request spec: %s", e.Err)
}

// Unwrap returns the underlying error.
func (e *SpecError) Unwrap() error {
	return e.Err
}

// StatusError reports a response whose status differs from the expected one.
type StatusError struct {
	Method   Method
	URL      string
	Expected int
	Actual   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: expected response code %d but received %d", e.Method, e.URL, e.Expected, e.Actual)
}

// NotFound reports whether the server answered 404.
func (e *StatusError) NotFound() bool {
	return e.Actual == 404
}

// DecodeError reports a response body that could not be turned into a
// domain value.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response from %s: %s", e.URL, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a 404 status mismatch.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.NotFound()
}
