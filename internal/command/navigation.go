package command

import "sync"

// Navigation targets.
const TasksPath = "/tasks"

// TaskPath returns the detail view path of a task.
func TaskPath(id string) string {
	return TasksPath + "/" + id
}

// Navigator moves the user to another view.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

// Navigate calls f.
func (f NavigatorFunc) Navigate(path string) {
	f(path)
}

// History is a Navigator that remembers every target.
type History struct {
	mu    sync.Mutex
	paths []string
}

// Navigate records path.
func (h *History) Navigate(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.paths = append(h.paths, path)
}

// Paths returns every recorded target in order.
func (h *History) Paths() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.paths...)
}

// Current returns the latest target, or "" if there is none.
func (h *History) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.paths) == 0 {
		return ""
	}
	return h.paths[len(h.paths)-1]
}
