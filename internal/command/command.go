// Package command orchestrates request lifecycles against the store.
//
// Every task command is a thunk that dispatches its REQUEST action, performs
// the API call, then dispatches SUCCESS or FAILURE. Side effects follow the
// state change in a fixed order: the result action first, then any
// notification, then navigation. Every failure produces exactly one error
// notification and is returned to the caller.
package command

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/choretracker-go/internal/action"
	"github.com/nibzard/choretracker-go/internal/api"
	"github.com/nibzard/choretracker-go/internal/clock"
	"github.com/nibzard/choretracker-go/internal/logging"
	"github.com/nibzard/choretracker-go/internal/notification"
	"github.com/nibzard/choretracker-go/internal/state"
	"github.com/nibzard/choretracker-go/internal/store"
	"github.com/nibzard/choretracker-go/internal/task"
)

// Defaults.
const (
	DefaultExpiry       = 3 * time.Second
	DefaultTickInterval = 10 * time.Second
)

// Thunk is a command run against the application store.
type Thunk = store.Thunk[state.State]

// Dispatcher is the store capability commands receive.
type Dispatcher = store.Dispatcher[state.State]

// Commands builds thunks bound to an API client and collaborators. The zero
// values of Nav, Expiry, Logger and Clock are usable.
type Commands struct {
	API *api.Client
	Nav Navigator
	// Expiry is how long a notification stays visible.
	Expiry time.Duration
	Logger *log.Logger
	Clock  clock.Clock

	notifyMu sync.Mutex
}

func (c *Commands) expiry() time.Duration {
	if c.Expiry <= 0 {
		return DefaultExpiry
	}
	return c.Expiry
}

func (c *Commands) clock() clock.Clock {
	if c.Clock == nil {
		return clock.Real{}
	}
	return c.Clock
}

func (c *Commands) logger() *log.Logger {
	if c.Logger == nil {
		return logging.Discard()
	}
	return c.Logger
}

func (c *Commands) navigate(path string) {
	if c.Nav != nil {
		c.Nav.Navigate(path)
	}
}

// FetchAllTasks replaces the task collection with the server's.
func (c *Commands) FetchAllTasks() Thunk {
	return func(ctx context.Context, d Dispatcher) error {
		d.Dispatch(action.FetchAllTasksRequested())
		tasks, err := api.Fetch(ctx, c.API, api.AllTasks())
		if err != nil {
			d.Dispatch(action.FetchAllTasksFailed(err))
			c.show(d, fmt.Sprintf("Failed to load tasks: %v", err), notification.Error)
			return err
		}
		d.Dispatch(action.FetchAllTasksSucceeded(tasks))
		return nil
	}
}

// FetchTask loads one task into the collection.
func (c *Commands) FetchTask(id string) Thunk {
	return func(ctx context.Context, d Dispatcher) error {
		err := c.fetchTask(ctx, d, id)
		if err != nil {
			c.show(d, fmt.Sprintf("Failed to load task %s: %v", id, err), notification.Error)
		}
		return err
	}
}

func (c *Commands) fetchTask(ctx context.Context, d Dispatcher, id string) error {
	d.Dispatch(action.FetchTaskRequested(id))
	t, err := api.Fetch(ctx, c.API, api.SingleTask(id))
	if err != nil {
		d.Dispatch(action.FetchTaskFailed(id, err))
		return err
	}
	d.Dispatch(action.FetchTaskSucceeded(t))
	return nil
}

// CreateTask creates a task and navigates to it.
func (c *Commands) CreateTask(f task.Fields) Thunk {
	return func(ctx context.Context, d Dispatcher) error {
		d.Dispatch(action.CreateTaskRequested(f))
		t, err := c.create(ctx, f)
		if err != nil {
			d.Dispatch(action.CreateTaskFailed(f, err))
			c.show(d, fmt.Sprintf("Failed to create task: %v", err), notification.Error)
			return err
		}
		d.Dispatch(action.CreateTaskSucceeded(t))
		c.show(d, fmt.Sprintf("Created task %q", t.Name), notification.Info)
		c.navigate(TaskPath(t.ID))
		return nil
	}
}

func (c *Commands) create(ctx context.Context, f task.Fields) (task.Task, error) {
	spec, err := api.CreateTask(f)
	if err != nil {
		return task.Task{}, err
	}
	return api.Fetch(ctx, c.API, spec)
}

// UpdateTask replaces a task's editable fields and navigates to it.
func (c *Commands) UpdateTask(id string, f task.Fields) Thunk {
	return func(ctx context.Context, d Dispatcher) error {
		d.Dispatch(action.UpdateTaskRequested(id, f))
		t, err := c.update(ctx, id, f)
		if err != nil {
			d.Dispatch(action.UpdateTaskFailed(id, err))
			c.show(d, fmt.Sprintf("Failed to update task %s: %v", id, err), notification.Error)
			return err
		}
		d.Dispatch(action.UpdateTaskSucceeded(t))
		c.show(d, fmt.Sprintf("Updated task %q", t.Name), notification.Info)
		c.navigate(TaskPath(t.ID))
		return nil
	}
}

func (c *Commands) update(ctx context.Context, id string, f task.Fields) (task.Task, error) {
	spec, err := api.UpdateTask(id, f)
	if err != nil {
		return task.Task{}, err
	}
	return api.Fetch(ctx, c.API, spec)
}

// DeleteTask removes a task and navigates back to the list.
func (c *Commands) DeleteTask(id string) Thunk {
	return func(ctx context.Context, d Dispatcher) error {
		d.Dispatch(action.DeleteTaskRequested(id))
		if _, err := api.Fetch(ctx, c.API, api.RemoveTask(id)); err != nil {
			d.Dispatch(action.DeleteTaskFailed(id, err))
			c.show(d, fmt.Sprintf("Failed to delete task %s: %v", id, err), notification.Error)
			return err
		}
		name := id
		if t, ok := state.Task(d.State(), id); ok {
			name = fmt.Sprintf("%q", t.Name)
		}
		d.Dispatch(action.DeleteTaskSucceeded(id))
		c.show(d, fmt.Sprintf("Deleted task %s", name), notification.Info)
		c.navigate(TasksPath)
		return nil
	}
}

// RequireTask makes sure a task is loaded before its view is shown. When
// the task is neither in the store nor known to the server, it shows an
// error and navigates back to the list.
func (c *Commands) RequireTask(id string) Thunk {
	return func(ctx context.Context, d Dispatcher) error {
		if _, ok := state.Task(d.State(), id); ok {
			return nil
		}
		if err := c.fetchTask(ctx, d, id); err != nil {
			c.show(d, fmt.Sprintf("Unknown task id %s", id), notification.Error)
			c.navigate(TasksPath)
			return err
		}
		return nil
	}
}
