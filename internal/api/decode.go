package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/nibzard/choretracker-go/internal/schema"
)

var specProperties = map[string]bool{
	"path":         true,
	"method":       true,
	"send":         true,
	"receive":      true,
	"expectStatus": true,
}

// DecodeSpec parses a declarative request spec from JSON. The document has
// the properties path, method, send, receive and expectStatus; anything else
// is rejected. Receive is null or the name of an entry in receivers.
//
// Checks run in a fixed order and the first failure is returned: unknown
// properties, path, method and send, receive, expectStatus.
func DecodeSpec(data []byte, receivers map[string]Receiver[any]) (Spec[any], error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return Spec[any]{}, &SpecError{Err: fmt.Errorf("spec must be a JSON object")}
	}

	if err := schema.ValidateJSON(schema.RequestSpec, data); err != nil {
		if unknown := unknownProperties(raw); len(unknown) > 0 {
			return Spec[any]{}, &SpecError{
				Err: fmt.Errorf("%w: %s", ErrUnknownProperty, strings.Join(unknown, ", ")),
			}
		}
		return Spec[any]{}, &SpecError{Err: err}
	}

	var spec Spec[any]

	rawPath, ok := raw["path"]
	if !ok || isNull(rawPath) {
		return Spec[any]{}, &SpecError{Field: "path", Err: fmt.Errorf("%w but got %s", ErrInvalidPath, kindOf(rawPath))}
	}
	if err := json.Unmarshal(rawPath, &spec.Path); err != nil {
		return Spec[any]{}, &SpecError{Field: "path", Err: fmt.Errorf("%w but got %s", ErrInvalidPath, kindOf(rawPath))}
	}

	var method string
	if rawMethod, ok := raw["method"]; ok {
		if err := json.Unmarshal(rawMethod, &method); err != nil {
			return Spec[any]{}, &SpecError{Field: "method", Err: fmt.Errorf("%w: %s", ErrInvalidMethod, rawMethod)}
		}
	}
	spec.Method = Method(method)

	if rawSend, ok := raw["send"]; ok {
		spec.Send = rawSend
	}

	if _, err := spec.body(); err != nil {
		return Spec[any]{}, err
	}

	if rawReceive, ok := raw["receive"]; ok && !isNull(rawReceive) {
		var name string
		if err := json.Unmarshal(rawReceive, &name); err != nil {
			return Spec[any]{}, &SpecError{Field: "receive", Err: fmt.Errorf("%w but got %s", ErrInvalidReceive, kindOf(rawReceive))}
		}
		recv, ok := receivers[name]
		if !ok {
			return Spec[any]{}, &SpecError{Field: "receive", Err: fmt.Errorf("%w but got unknown receiver %q", ErrInvalidReceive, name)}
		}
		spec.Receive = recv
	}

	if rawStatus, ok := raw["expectStatus"]; ok {
		status, err := parseStatus(rawStatus)
		if err != nil {
			return Spec[any]{}, err
		}
		spec.ExpectStatus = status
	}

	return spec, nil
}

func parseStatus(raw json.RawMessage) (int, error) {
	invalid := &SpecError{
		Field: "expectStatus",
		Err:   fmt.Errorf("%w %q", ErrInvalidStatus, string(bytes.TrimSpace(raw))),
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return 0, invalid
	}
	n, ok := v.(json.Number)
	if !ok {
		return 0, invalid
	}
	status, err := n.Int64()
	if err != nil {
		return 0, invalid
	}
	if status < 200 || status >= 600 {
		return 0, invalid
	}
	return int(status), nil
}

func unknownProperties(raw map[string]json.RawMessage) []string {
	var unknown []string
	for key := range raw {
		if !specProperties[key] {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	return unknown
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// kindOf names the JSON type of raw.
func kindOf(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "undefined"
	}
	switch trimmed[0] {
	case '"':
		return "string"
	case '{':
		return "object"
	case '[':
		return "array"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}

// AsReceiver erases the result type of r so it can be registered for
// DecodeSpec.
func AsReceiver[T any](r Receiver[T]) Receiver[any] {
	if r == nil {
		return nil
	}
	return func(data json.RawMessage) (any, error) {
		v, err := r(data)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}

// IsSpecError reports whether err is a spec validation failure.
func IsSpecError(err error) bool {
	var se *SpecError
	return errors.As(err, &se)
}
