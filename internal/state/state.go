// Package state holds the application state tree and the root reducer that
// owns it.
package state

import (
	"github.com/nibzard/choretracker-go/internal/notification"
	"github.com/nibzard/choretracker-go/internal/reducer"
	"github.com/nibzard/choretracker-go/internal/task"
)

// State is the root of the application state. Values are immutable
// snapshots: reducers replace maps and slices, never mutate them.
type State struct {
	TasksByID         map[string]task.Task
	TasksOrderedByDue []string
	Notifications     []notification.Notification
	// TimeReference is the "now" used for due categorization, in unix
	// seconds.
	TimeReference int64
}

// New returns an empty state with the given time reference.
func New(timeReference int64) State {
	return State{
		TasksByID:         map[string]task.Task{},
		TasksOrderedByDue: []string{},
		Notifications:     []notification.Notification{},
		TimeReference:     timeReference,
	}
}

var (
	TasksByID = reducer.NewField("tasksById",
		func(s State) map[string]task.Task { return s.TasksByID },
		func(s State, v map[string]task.Task) State { s.TasksByID = v; return s })

	TasksOrderedByDue = reducer.NewField("tasksOrderedByDue",
		func(s State) []string { return s.TasksOrderedByDue },
		func(s State, v []string) State { s.TasksOrderedByDue = v; return s })

	Notifications = reducer.NewField("notifications",
		func(s State) []notification.Notification { return s.Notifications },
		func(s State, v []notification.Notification) State { s.Notifications = v; return s })

	TimeReference = reducer.NewField("timeReference",
		func(s State) int64 { return s.TimeReference },
		func(s State, v int64) State { s.TimeReference = v; return s })
)

// Root returns the root reducer. Order matters: the due ordering is derived
// from the task map produced by the first step.
func Root(initial State) *reducer.Pipeline[State] {
	return reducer.MustCombine(initial,
		reducer.Keyed(TasksByID, ChangedTasks),
		reducer.Map(TasksByID, OrderByDue, TasksOrderedByDue),
		reducer.Keyed(Notifications, ChangedNotifications),
		reducer.Keyed(TimeReference, ChangedTimeReference),
	)
}
