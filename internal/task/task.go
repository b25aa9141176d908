package task

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrEmptyName is returned when a task has no display name.
var ErrEmptyName = errors.New("name must not be empty")

// Task is the domain view of a task. Timestamps are unix seconds.
type Task struct {
	ID          string `json:"id"`
	TaskGroup   string `json:"taskGroup,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Due         int64  `json:"due"`
	Created     int64  `json:"created"`
	Modified    int64  `json:"modified"`
}

// Fields holds the user-editable subset of a task.
type Fields struct {
	TaskGroup   string
	Name        string
	Description string
	Due         int64
}

// Validate checks the fields a user may supply.
func (f Fields) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return ErrEmptyName
	}
	if f.TaskGroup != "" {
		if _, err := strconv.ParseInt(f.TaskGroup, 10, 64); err != nil {
			return fmt.Errorf("task group %q is not an integer", f.TaskGroup)
		}
	}
	return nil
}

// Fields returns the editable fields of t.
func (t Task) Fields() Fields {
	return Fields{
		TaskGroup:   t.TaskGroup,
		Name:        t.Name,
		Description: t.Description,
		Due:         t.Due,
	}
}

// WithFields returns a copy of t with its editable fields replaced.
func (t Task) WithFields(f Fields) Task {
	t.TaskGroup = f.TaskGroup
	t.Name = f.Name
	t.Description = f.Description
	t.Due = f.Due
	return t
}

// Paragraphs splits the description into its newline-delimited paragraphs,
// dropping blank lines.
func (t Task) Paragraphs() []string {
	var out []string
	for _, line := range strings.Split(t.Description, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}
