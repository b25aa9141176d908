// Package dummy is an in-memory stand-in for the task backend. It is used
// to develop and test against realistic request timing without a server.
package dummy

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/nibzard/choretracker-go/internal/clock"
	"github.com/nibzard/choretracker-go/internal/task"
)

var (
	ErrNotFound     = errors.New("task not found")
	ErrDuplicateID  = errors.New("duplicate task id")
	ErrInvalidInput = errors.New("invalid task input")
)

// Database holds the backend's tasks in insertion order.
type Database struct {
	mu     sync.RWMutex
	tasks  map[int64]task.Wire
	order  []int64
	nextID int64
	clock  clock.Clock
}

// NewDatabase returns an empty database. A nil clock means the system clock.
func NewDatabase(c clock.Clock) *Database {
	if c == nil {
		c = clock.Real{}
	}
	return &Database{
		tasks:  make(map[int64]task.Wire),
		nextID: 1,
		clock:  c,
	}
}

// Clone returns an independent copy of db sharing its clock.
func (db *Database) Clone() *Database {
	db.mu.RLock()
	defer db.mu.RUnlock()
	out := &Database{
		tasks:  make(map[int64]task.Wire, len(db.tasks)),
		order:  append([]int64(nil), db.order...),
		nextID: db.nextID,
		clock:  db.clock,
	}
	for id, w := range db.tasks {
		out.tasks[id] = copyWire(w)
	}
	return out
}

// Len returns the number of tasks.
func (db *Database) Len() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.order)
}

// GetAll returns copies of every task in insertion order.
func (db *Database) GetAll() []task.Wire {
	db.mu.RLock()
	defer db.mu.RUnlock()
	out := make([]task.Wire, 0, len(db.order))
	for _, id := range db.order {
		out = append(out, copyWire(db.tasks[id]))
	}
	return out
}

// Get returns a copy of the task with id.
func (db *Database) Get(id int64) (task.Wire, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	w, ok := db.tasks[id]
	if !ok {
		return task.Wire{}, fmt.Errorf("get task %d: %w", id, ErrNotFound)
	}
	return copyWire(w), nil
}

// Create stores a new task with the next id. Created and modified are set
// to the current time. Any id in the input is ignored.
func (db *Database) Create(in task.WireInput) (task.Wire, error) {
	if err := checkInput(in); err != nil {
		return task.Wire{}, err
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	id := db.nextID
	db.nextID++
	if _, exists := db.tasks[id]; exists {
		return task.Wire{}, fmt.Errorf("create task %d: %w", id, ErrDuplicateID)
	}

	now := db.clock.Now().Unix()
	w := task.Wire{
		ID:          id,
		TaskGroup:   copyInt(in.TaskGroup),
		Name:        in.Name,
		Description: in.Description,
		Due:         in.Due,
		Created:     now,
		Modified:    now,
	}
	db.tasks[id] = w
	db.order = append(db.order, id)
	return copyWire(w), nil
}

// Update replaces the editable fields of a task and refreshes modified.
func (db *Database) Update(id int64, in task.WireInput) (task.Wire, error) {
	if err := checkInput(in); err != nil {
		return task.Wire{}, err
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	w, ok := db.tasks[id]
	if !ok {
		return task.Wire{}, fmt.Errorf("update task %d: %w", id, ErrNotFound)
	}
	w.Name = in.Name
	w.Description = in.Description
	w.Due = in.Due
	if in.TaskGroup != nil {
		w.TaskGroup = copyInt(in.TaskGroup)
	}
	w.Modified = db.clock.Now().Unix()
	db.tasks[id] = w
	return copyWire(w), nil
}

// Delete removes a task.
func (db *Database) Delete(id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.tasks[id]; !ok {
		return fmt.Errorf("delete task %d: %w", id, ErrNotFound)
	}
	delete(db.tasks, id)
	for i, existing := range db.order {
		if existing == id {
			db.order = append(db.order[:i:i], db.order[i+1:]...)
			break
		}
	}
	return nil
}

func checkInput(in task.WireInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: %v", ErrInvalidInput, task.ErrEmptyName)
	}
	if in.TaskGroup != nil && *in.TaskGroup < 0 {
		return fmt.Errorf("%w: task group must not be negative", ErrInvalidInput)
	}
	return nil
}

func copyWire(w task.Wire) task.Wire {
	w.TaskGroup = copyInt(w.TaskGroup)
	return w
}

func copyInt(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
