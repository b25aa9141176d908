// Package action defines the closed vocabulary of state-changing events and
// plain constructors for them.
package action

import (
	"fmt"

	"github.com/nibzard/choretracker-go/internal/transform"
)

// Type identifies an action. The set of types is closed.
type Type int

const (
	FetchAllTasksRequest Type = iota + 1
	FetchAllTasksSuccess
	FetchAllTasksFailure

	FetchTaskRequest
	FetchTaskSuccess
	FetchTaskFailure

	CreateTaskRequest
	CreateTaskSuccess
	CreateTaskFailure

	UpdateTaskRequest
	UpdateTaskSuccess
	UpdateTaskFailure

	DeleteTaskRequest
	DeleteTaskSuccess
	DeleteTaskFailure

	ShowNotification
	HideNotification

	UpdateTimeReference

	lastType
)

var typeNames = map[Type]string{
	FetchAllTasksRequest: "FETCH_ALL_TASKS_REQUEST",
	FetchAllTasksSuccess: "FETCH_ALL_TASKS_SUCCESS",
	FetchAllTasksFailure: "FETCH_ALL_TASKS_FAILURE",
	FetchTaskRequest:     "FETCH_TASK_REQUEST",
	FetchTaskSuccess:     "FETCH_TASK_SUCCESS",
	FetchTaskFailure:     "FETCH_TASK_FAILURE",
	CreateTaskRequest:    "CREATE_TASK_REQUEST",
	CreateTaskSuccess:    "CREATE_TASK_SUCCESS",
	CreateTaskFailure:    "CREATE_TASK_FAILURE",
	UpdateTaskRequest:    "UPDATE_TASK_REQUEST",
	UpdateTaskSuccess:    "UPDATE_TASK_SUCCESS",
	UpdateTaskFailure:    "UPDATE_TASK_FAILURE",
	DeleteTaskRequest:    "DELETE_TASK_REQUEST",
	DeleteTaskSuccess:    "DELETE_TASK_SUCCESS",
	DeleteTaskFailure:    "DELETE_TASK_FAILURE",
	ShowNotification:     "SHOW_NOTIFICATION",
	HideNotification:     "HIDE_NOTIFICATION",
	UpdateTimeReference:  "UPDATE_TIME_REFERENCE",
}

// String returns the canonical name of the type.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Valid reports whether t belongs to the vocabulary.
func (t Type) Valid() bool {
	return t > 0 && t < lastType
}

// Types returns every action type in declaration order.
func Types() []Type {
	out := make([]Type, 0, int(lastType)-1)
	for t := Type(1); t < lastType; t++ {
		out = append(out, t)
	}
	return out
}

// Split partitions the vocabulary into the given interesting types and the
// rest. It fails if any interesting type is not part of the vocabulary.
func Split(interesting ...Type) ([]Type, []Type, error) {
	var unknown []string
	for _, t := range interesting {
		if !t.Valid() {
			unknown = append(unknown, t.String())
		}
	}
	if len(unknown) > 0 {
		return nil, nil, fmt.Errorf("unknown action types given: %v", unknown)
	}
	rest := transform.SetDifference(Types(), interesting)
	return transform.SetDifference(interesting, nil), rest, nil
}

// ChangesTasks reports whether actions of type t modify the task collection.
func (t Type) ChangesTasks() bool {
	switch t {
	case FetchAllTasksSuccess, FetchTaskSuccess, CreateTaskSuccess, UpdateTaskSuccess, DeleteTaskSuccess:
		return true
	default:
		return false
	}
}
