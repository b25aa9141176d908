package schema

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// Names of the embedded schemas.
const (
	RequestSpec = "request-spec.schema.json"
	Task        = "task.schema.json"
	Tasks       = "tasks.schema.json"
	TaskInput   = "task-input.schema.json"
)

const baseURL = "mem://choretracker/"

//go:embed *.schema.json
var files embed.FS

var (
	compileOnce sync.Once
	compiled    map[string]*jsonschema.Schema
	compileErr  error
)

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // dot-notation path to the error location
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Errors is the list of failures from one validation.
type Errors []*ValidationError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, ve := range e {
		parts[i] = ve.Error()
	}
	return strings.Join(parts, "; ")
}

// Get returns the compiled schema with the given name.
func Get(name string) (*jsonschema.Schema, error) {
	compileOnce.Do(compileAll)
	if compileErr != nil {
		return nil, compileErr
	}
	s, ok := compiled[name]
	if !ok {
		return nil, fmt.Errorf("unknown schema %q", name)
	}
	return s, nil
}

func compileAll() {
	entries, err := files.ReadDir(".")
	if err != nil {
		compileErr = fmt.Errorf("read embedded schemas: %w", err)
		return
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	for _, entry := range entries {
		data, err := files.ReadFile(entry.Name())
		if err != nil {
			compileErr = fmt.Errorf("read schema %s: %w", entry.Name(), err)
			return
		}
		if err := compiler.AddResource(baseURL+entry.Name(), bytes.NewReader(data)); err != nil {
			compileErr = fmt.Errorf("add schema %s: %w", entry.Name(), err)
			return
		}
	}

	out := make(map[string]*jsonschema.Schema, len(entries))
	for _, entry := range entries {
		s, err := compiler.Compile(baseURL + entry.Name())
		if err != nil {
			compileErr = fmt.Errorf("compile schema %s: %w", entry.Name(), err)
			return
		}
		out[entry.Name()] = s
	}
	compiled = out
}

// ValidateJSON validates a raw JSON document against the named schema.
func ValidateJSON(name string, data []byte) error {
	s, err := Get(name)
	if err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return Errors{{Err: fmt.Errorf("invalid JSON: %w", err)}}
	}
	return validate(s, doc)
}

// ValidateValue validates a Go value by its JSON encoding.
func ValidateValue(name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return Errors{{Err: fmt.Errorf("failed to marshal value for validation: %w", err)}}
	}
	return ValidateJSON(name, data)
}

func validate(s *jsonschema.Schema, doc interface{}) error {
	err := s.Validate(doc)
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return Errors{{Err: err}}
	}
	var out Errors
	collect(&out, ve)
	return out
}

func collect(out *Errors, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		*out = append(*out, &ValidationError{
			Path: instancePath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}

	for _, cause := range err.Causes {
		collect(out, cause)
	}
}

// instancePath renders a JSON pointer such as "/data/2/due" as "data[2].due".
func instancePath(ptr string) string {
	ptr = strings.TrimPrefix(strings.TrimPrefix(ptr, "#"), "/")
	if ptr == "" {
		return ""
	}

	var b strings.Builder
	for _, token := range strings.Split(ptr, "/") {
		token = strings.NewReplacer("~1", "/", "~0", "~").Replace(token)
		switch {
		case token == "":
		case isIndex(token):
			b.WriteString("[" + token + "]")
		default:
			if b.Len() > 0 {
				b.WriteByte('.')
			}
			b.WriteString(token)
		}
	}
	return b.String()
}

func isIndex(token string) bool {
	for i := 0; i < len(token); i++ {
		if token[i] < '0' || token[i] > '9' {
			return false
		}
	}
	return true
}
