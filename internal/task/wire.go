package task

import (
	"fmt"
	"strconv"
)

// Wire is a task as returned by the API.
type Wire struct {
	ID          int64  `json:"id" yaml:"id"`
	TaskGroup   *int64 `json:"taskGroup,omitempty" yaml:"taskGroup,omitempty"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Due         int64  `json:"due" yaml:"due"`
	Created     int64  `json:"created" yaml:"created"`
	Modified    int64  `json:"modified" yaml:"modified"`
}

// WireInput is a task as sent to the API.
type WireInput struct {
	ID          *int64 `json:"id,omitempty" yaml:"id,omitempty"`
	TaskGroup   *int64 `json:"taskGroup,omitempty" yaml:"taskGroup,omitempty"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Due         int64  `json:"due" yaml:"due"`
}

// Serialize converts a task to its wire input shape. An empty ID or task
// group is omitted; a non-numeric one is an error. Created and modified are
// never sent.
func Serialize(t Task) (WireInput, error) {
	id, err := parseOptionalInt("id", t.ID)
	if err != nil {
		return WireInput{}, err
	}
	group, err := parseOptionalInt("taskGroup", t.TaskGroup)
	if err != nil {
		return WireInput{}, err
	}
	return WireInput{
		ID:          id,
		TaskGroup:   group,
		Name:        t.Name,
		Description: t.Description,
		Due:         t.Due,
	}, nil
}

// SerializeFields converts editable fields to the wire input shape.
func SerializeFields(f Fields) (WireInput, error) {
	return Serialize(Task{}.WithFields(f))
}

// Deserialize converts a wire task to the domain shape.
func Deserialize(w Wire) Task {
	t := Task{
		ID:          strconv.FormatInt(w.ID, 10),
		Name:        w.Name,
		Description: w.Description,
		Due:         w.Due,
		Created:     w.Created,
		Modified:    w.Modified,
	}
	if w.TaskGroup != nil {
		t.TaskGroup = strconv.FormatInt(*w.TaskGroup, 10)
	}
	return t
}

// DeserializeAll converts a list of wire tasks, preserving order.
func DeserializeAll(ws []Wire) []Task {
	out := make([]Task, 0, len(ws))
	for _, w := range ws {
		out = append(out, Deserialize(w))
	}
	return out
}

func parseOptionalInt(field, s string) (*int64, error) {
	if s == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("serialize %s %q: not an integer", field, s)
	}
	return &n, nil
}
