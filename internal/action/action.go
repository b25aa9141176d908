package action

import (
	"github.com/nibzard/choretracker-go/internal/notification"
	"github.com/nibzard/choretracker-go/internal/task"
)

// Action is a plain description of something that happened. Failure actions
// carry the cause in Err.
type Action struct {
	Type    Type
	Payload any
	Err     error
}

// TaskPayload carries a single task.
type TaskPayload struct {
	Task task.Task
}

// TasksPayload carries a list of tasks.
type TasksPayload struct {
	Tasks []task.Task
}

// TaskIDPayload names a task by id.
type TaskIDPayload struct {
	TaskID string
}

// TaskRequestPayload describes a pending create or update.
type TaskRequestPayload struct {
	TaskID string
	Fields task.Fields
}

// NotificationPayload carries a notification. Hide actions only use its ID.
type NotificationPayload struct {
	Notification notification.Notification
}

// TimeReferencePayload carries a unix-seconds time reference.
type TimeReferencePayload struct {
	TimeReference int64
}

// New returns an action of type t with the given payload.
func New(t Type, payload any) Action {
	return Action{Type: t, Payload: payload}
}

// Failure returns a failure action of type t carrying err.
func Failure(t Type, payload any, err error) Action {
	return Action{Type: t, Payload: payload, Err: err}
}

// IsFailure reports whether the action describes a failed request.
func (a Action) IsFailure() bool {
	return a.Err != nil
}

func FetchAllTasksRequested() Action {
	return New(FetchAllTasksRequest, nil)
}

func FetchAllTasksSucceeded(tasks []task.Task) Action {
	return New(FetchAllTasksSuccess, TasksPayload{Tasks: tasks})
}

func FetchAllTasksFailed(err error) Action {
	return Failure(FetchAllTasksFailure, nil, err)
}

func FetchTaskRequested(id string) Action {
	return New(FetchTaskRequest, TaskIDPayload{TaskID: id})
}

func FetchTaskSucceeded(t task.Task) Action {
	return New(FetchTaskSuccess, TaskPayload{Task: t})
}

func FetchTaskFailed(id string, err error) Action {
	return Failure(FetchTaskFailure, TaskIDPayload{TaskID: id}, err)
}

func CreateTaskRequested(f task.Fields) Action {
	return New(CreateTaskRequest, TaskRequestPayload{Fields: f})
}

func CreateTaskSucceeded(t task.Task) Action {
	return New(CreateTaskSuccess, TaskPayload{Task: t})
}

func CreateTaskFailed(f task.Fields, err error) Action {
	return Failure(CreateTaskFailure, TaskRequestPayload{Fields: f}, err)
}

func UpdateTaskRequested(id string, f task.Fields) Action {
	return New(UpdateTaskRequest, TaskRequestPayload{TaskID: id, Fields: f})
}

func UpdateTaskSucceeded(t task.Task) Action {
	return New(UpdateTaskSuccess, TaskPayload{Task: t})
}

func UpdateTaskFailed(id string, err error) Action {
	return Failure(UpdateTaskFailure, TaskIDPayload{TaskID: id}, err)
}

func DeleteTaskRequested(id string) Action {
	return New(DeleteTaskRequest, TaskIDPayload{TaskID: id})
}

func DeleteTaskSucceeded(id string) Action {
	return New(DeleteTaskSuccess, TaskIDPayload{TaskID: id})
}

func DeleteTaskFailed(id string, err error) Action {
	return Failure(DeleteTaskFailure, TaskIDPayload{TaskID: id}, err)
}

// Show returns a SHOW_NOTIFICATION action.
func Show(n notification.Notification) Action {
	return New(ShowNotification, NotificationPayload{Notification: n})
}

// Hide returns a HIDE_NOTIFICATION action for the notification with id.
func Hide(id int) Action {
	return New(HideNotification, NotificationPayload{Notification: notification.Notification{ID: id}})
}

// SetTimeReference returns an UPDATE_TIME_REFERENCE action.
func SetTimeReference(unix int64) Action {
	return New(UpdateTimeReference, TimeReferencePayload{TimeReference: unix})
}
