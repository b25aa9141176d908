package state

import (
	"sort"

	"github.com/nibzard/choretracker-go/internal/action"
	"github.com/nibzard/choretracker-go/internal/notification"
	"github.com/nibzard/choretracker-go/internal/task"
	"github.com/nibzard/choretracker-go/internal/transform"
	"github.com/nibzard/choretracker-go/internal/utils"
)

// ChangedTasks applies task lifecycle results to the task map. Actions that
// do not change tasks return the input map.
func ChangedTasks(tasks map[string]task.Task, a action.Action) map[string]task.Task {
	switch a.Type {
	case action.CreateTaskSuccess, action.UpdateTaskSuccess, action.FetchTaskSuccess:
		p, ok := a.Payload.(action.TaskPayload)
		if !ok {
			return tasks
		}
		return transform.Replacing(tasks, p.Task.ID, p.Task)
	case action.DeleteTaskSuccess:
		p, ok := a.Payload.(action.TaskIDPayload)
		if !ok {
			return tasks
		}
		return transform.Omitting(tasks, p.TaskID)
	case action.FetchAllTasksSuccess:
		p, ok := a.Payload.(action.TasksPayload)
		if !ok {
			return tasks
		}
		return transform.FromSlice(p.Tasks, func(t task.Task) (string, task.Task) {
			return t.ID, t
		})
	default:
		return tasks
	}
}

// OrderByDue returns the task ids sorted by ascending due time. Ties keep
// numeric-aware id order so the result does not depend on map iteration.
func OrderByDue(tasks map[string]task.Task, _ action.Action) []string {
	ids := make([]string, 0, len(tasks))
	for id := range tasks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return utils.CompareIDs(ids[i], ids[j])
	})
	sort.SliceStable(ids, func(i, j int) bool {
		return tasks[ids[i]].Due < tasks[ids[j]].Due
	})
	return ids
}

// ChangedNotifications prepends shown notifications and drops hidden ones.
func ChangedNotifications(list []notification.Notification, a action.Action) []notification.Notification {
	switch a.Type {
	case action.ShowNotification:
		p, ok := a.Payload.(action.NotificationPayload)
		if !ok {
			return list
		}
		return notification.Prepend(list, p.Notification)
	case action.HideNotification:
		p, ok := a.Payload.(action.NotificationPayload)
		if !ok {
			return list
		}
		return notification.Without(list, p.Notification.ID)
	default:
		return list
	}
}

// ChangedTimeReference replaces the time reference on UPDATE_TIME_REFERENCE.
func ChangedTimeReference(ref int64, a action.Action) int64 {
	if a.Type != action.UpdateTimeReference {
		return ref
	}
	p, ok := a.Payload.(action.TimeReferencePayload)
	if !ok {
		return ref
	}
	return p.TimeReference
}
