package schema

import (
	"errors"
	"strings"
	"testing"
)

func TestEmbeddedSchemasCompile(t *testing.T) {
	for _, name := range []string{RequestSpec, Task, Tasks, TaskInput} {
		if _, err := Get(name); err != nil {
			t.Fatalf("Get(%s) error = %v", name, err)
		}
	}
	if _, err := Get("missing.schema.json"); err == nil {
		t.Fatalf("Get(missing) expected error")
	}
}

func TestValidateJSONTask(t *testing.T) {
	valid := `{"id":1,"taskGroup":1,"name":"Clean Kitchen","description":"","due":1700000000,"created":1,"modified":1}`
	if err := ValidateJSON(Task, []byte(valid)); err != nil {
		t.Fatalf("ValidateJSON(valid) error = %v", err)
	}

	invalid := `{"id":"1","name":"x","description":"","due":1,"created":1,"modified":1}`
	err := ValidateJSON(Task, []byte(invalid))
	if err == nil {
		t.Fatalf("ValidateJSON(invalid) expected error")
	}
	var errs Errors
	if !errors.As(err, &errs) || len(errs) == 0 {
		t.Fatalf("error type = %T, want Errors", err)
	}
	if errs[0].Path != "id" {
		t.Fatalf("Path = %q, want id", errs[0].Path)
	}
}

func TestValidateJSONTaskListPath(t *testing.T) {
	doc := `[{"id":1,"name":"a","description":"","due":1,"created":1,"modified":1},{"id":2,"name":"b","description":"","due":"soon","created":1,"modified":1}]`
	err := ValidateJSON(Tasks, []byte(doc))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "[1].due") {
		t.Fatalf("error = %q, want path [1].due", err)
	}
}

func TestValidateValueTaskInput(t *testing.T) {
	tests := []struct {
		name    string
		value   map[string]any
		wantErr bool
	}{
		{name: "valid", value: map[string]any{"name": "x", "description": "", "due": 10}},
		{name: "empty name", value: map[string]any{"name": "", "due": 10}, wantErr: true},
		{name: "negative due", value: map[string]any{"name": "x", "due": -1}, wantErr: true},
		{name: "due overflow", value: map[string]any{"name": "x", "due": int64(1) << 31}, wantErr: true},
		{name: "negative group", value: map[string]any{"name": "x", "due": 1, "taskGroup": -1}, wantErr: true},
		{name: "unknown field", value: map[string]any{"name": "x", "due": 1, "created": 1}, wantErr: true},
		{name: "missing due", value: map[string]any{"name": "x"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateValue(TaskInput, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateValue() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateJSONRejectsMalformed(t *testing.T) {
	if err := ValidateJSON(Task, []byte("{")); err == nil {
		t.Fatalf("expected error for malformed JSON")
	}
}

func TestValidationErrorFormatting(t *testing.T) {
	withPath := &ValidationError{Path: "data.name", Err: errors.New("bad")}
	if withPath.Error() != "data.name: bad" {
		t.Fatalf("Error() = %q", withPath.Error())
	}
	noPath := &ValidationError{Err: errors.New("bad")}
	if noPath.Error() != "bad" {
		t.Fatalf("Error() = %q", noPath.Error())
	}
	list := Errors{withPath, noPath}
	if list.Error() != "data.name: bad; bad" {
		t.Fatalf("Errors.Error() = %q", list.Error())
	}
}

func TestInstancePath(t *testing.T) {
	tests := map[string]string{
		"":            "",
		"#":           "",
		"/path/0":     "path[0]",
		"#/send/name": "send.name",
		"/data/2/due": "data[2].due",
		"/a~1b/c~0d":  "a/b.c~d",
		"/0":          "[0]",
	}
	for in, want := range tests {
		if got := instancePath(in); got != want {
			t.Errorf("instancePath(%q) = %q, want %q", in, got, want)
		}
	}
}
