package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// DefaultStatus is the expected status when a spec does not set one.
const DefaultStatus = http.StatusOK

// Receiver turns the "data" envelope of a response into a domain value. It
// must be pure.
type Receiver[T any] func(data json.RawMessage) (T, error)

// Spec describes one API call.
type Spec[T any] struct {
	// Path segments, joined with "/" below the client's base URL.
	Path   []string
	Method Method
	// Send is the request body for POST and PUT. It must encode to a JSON
	// object. It must be nil for GET and DELETE.
	Send any
	// Receive decodes the response. Nil ignores the body.
	Receive Receiver[T]
	// ExpectStatus defaults to 200 when zero.
	ExpectStatus int
}

// Status returns the expected response status.
func (s Spec[T]) Status() int {
	if s.ExpectStatus == 0 {
		return DefaultStatus
	}
	return s.ExpectStatus
}

// Validate checks the spec without performing any I/O.
func (s Spec[T]) Validate() error {
	_, err := s.body()
	return err
}

// body validates the spec in order and returns the encoded request body,
// if any.
func (s Spec[T]) body() ([]byte, error) {
	if s.Path == nil {
		return nil, &SpecError{Field: "path", Err: ErrInvalidPath}
	}

	var body []byte
	switch {
	case s.Method.HasBody():
		if s.Send == nil {
			return nil, &SpecError{Field: "send", Err: ErrSendRequired}
		}
		encoded, err := encodeObject(s.Send)
		if err != nil {
			return nil, &SpecError{Field: "send", Err: err}
		}
		body = encoded
	case s.Method == GET || s.Method == DELETE:
		if s.Send != nil {
			return nil, &SpecError{
				Field: "send",
				Err:   fmt.Errorf("%w with %s (got %s)", ErrSendNotAllowed, s.Method, describe(s.Send)),
			}
		}
	default:
		return nil, &SpecError{
			Field: "method",
			Err:   fmt.Errorf("%w: %q", ErrInvalidMethod, string(s.Method)),
		}
	}

	if err := validStatus(s.ExpectStatus); err != nil {
		return nil, err
	}
	return body, nil
}

func validStatus(status int) error {
	if status == 0 {
		return nil
	}
	if status < 200 || status >= 600 {
		return &SpecError{
			Field: "expectStatus",
			Err:   fmt.Errorf("%w %q", ErrInvalidStatus, fmt.Sprint(status)),
		}
	}
	return nil
}

// encodeObject marshals v and requires the result to be a JSON object.
func encodeObject(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSendNotObject, err)
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w (got %s)", ErrSendNotObject, trimmed)
	}
	return data, nil
}

func describe(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%T", v)
	}
	return string(data)
}
