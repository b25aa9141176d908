package state

import (
	"github.com/nibzard/choretracker-go/internal/due"
	"github.com/nibzard/choretracker-go/internal/task"
)

// OrderedTasks returns the tasks in due order.
func OrderedTasks(s State) []task.Task {
	out := make([]task.Task, 0, len(s.TasksOrderedByDue))
	for _, id := range s.TasksOrderedByDue {
		if t, ok := s.TasksByID[id]; ok {
			out = append(out, t)
		}
	}
	return out
}

// Task looks up a task by id.
func Task(s State, id string) (task.Task, bool) {
	t, ok := s.TasksByID[id]
	return t, ok
}

// Category returns the due category of t at the state's time reference.
func Category(s State, t task.Task) due.Category {
	return due.Categorize(t.Due, s.TimeReference)
}

// CountByCategory counts tasks per due category at the state's time
// reference.
func CountByCategory(s State) map[due.Category]int {
	dues := make([]int64, 0, len(s.TasksByID))
	for _, t := range s.TasksByID {
		dues = append(dues, t.Due)
	}
	return due.CountByCategory(dues, s.TimeReference)
}

// GroupByCategory returns the due-ordered tasks bucketed by category.
func GroupByCategory(s State) map[due.Category][]task.Task {
	out := make(map[due.Category][]task.Task)
	for _, t := range OrderedTasks(s) {
		c := Category(s, t)
		out[c] = append(out[c], t)
	}
	return out
}
