package api

import (
	"encoding/json"
	"net/http"

	"github.com/nibzard/choretracker-go/internal/schema"
	"github.com/nibzard/choretracker-go/internal/task"
)

// TasksResource is the path segment of the tasks collection.
const TasksResource = "tasks"

// ReceiveTask decodes one wire task.
func ReceiveTask(data json.RawMessage) (task.Task, error) {
	if err := schema.ValidateJSON(schema.Task, data); err != nil {
		return task.Task{}, err
	}
	var w task.Wire
	if err := json.Unmarshal(data, &w); err != nil {
		return task.Task{}, err
	}
	return task.Deserialize(w), nil
}

// ReceiveTasks decodes a list of wire tasks.
func ReceiveTasks(data json.RawMessage) ([]task.Task, error) {
	if err := schema.ValidateJSON(schema.Tasks, data); err != nil {
		return nil, err
	}
	var ws []task.Wire
	if err := json.Unmarshal(data, &ws); err != nil {
		return nil, err
	}
	return task.DeserializeAll(ws), nil
}

// TaskReceivers returns the task receivers by name, for DecodeSpec.
func TaskReceivers() map[string]Receiver[any] {
	return map[string]Receiver[any]{
		"task":  AsReceiver[task.Task](ReceiveTask),
		"tasks": AsReceiver[[]task.Task](ReceiveTasks),
	}
}

// AllTasks lists every task.
func AllTasks() Spec[[]task.Task] {
	return Spec[[]task.Task]{
		Path:    []string{TasksResource},
		Method:  GET,
		Receive: ReceiveTasks,
	}
}

// SingleTask fetches one task.
func SingleTask(id string) Spec[task.Task] {
	return Spec[task.Task]{
		Path:    []string{TasksResource, id},
		Method:  GET,
		Receive: ReceiveTask,
	}
}

// CreateTask creates a task from fields. It fails if the fields cannot be
// serialized.
func CreateTask(f task.Fields) (Spec[task.Task], error) {
	body, err := task.SerializeFields(f)
	if err != nil {
		return Spec[task.Task]{}, err
	}
	return Spec[task.Task]{
		Path:         []string{TasksResource},
		Method:       POST,
		Send:         body,
		ExpectStatus: http.StatusCreated,
		Receive:      ReceiveTask,
	}, nil
}

// UpdateTask replaces the editable fields of a task.
func UpdateTask(id string, f task.Fields) (Spec[task.Task], error) {
	body, err := task.SerializeFields(f)
	if err != nil {
		return Spec[task.Task]{}, err
	}
	return Spec[task.Task]{
		Path:    []string{TasksResource, id},
		Method:  PUT,
		Send:    body,
		Receive: ReceiveTask,
	}, nil
}

// RemoveTask deletes a task. The response body is ignored.
func RemoveTask(id string) Spec[struct{}] {
	return Spec[struct{}]{
		Path:   []string{TasksResource, id},
		Method: DELETE,
	}
}
