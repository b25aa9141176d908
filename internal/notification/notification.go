// Package notification defines transient user-facing notifications.
package notification

// Level is the severity of a notification.
type Level int

const (
	Info Level = iota
	Error
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case Info:
		return "INFO"
	case Error:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Notification is an immutable notification record. IDs are unique within a
// session and never reused while the notification is shown.
type Notification struct {
	ID      int    `json:"id"`
	Message string `json:"message"`
	Level   Level  `json:"level"`
}

// NextID returns one more than the largest ID in list, or 1 for an empty
// list.
func NextID(list []Notification) int {
	maxID := 0
	for _, n := range list {
		if n.ID > maxID {
			maxID = n.ID
		}
	}
	return maxID + 1
}

// Prepend returns a new list with n first.
func Prepend(list []Notification, n Notification) []Notification {
	out := make([]Notification, 0, len(list)+1)
	out = append(out, n)
	return append(out, list...)
}

// Without returns list without the notification with the given id. If no
// notification has that id, list itself is returned.
func Without(list []Notification, id int) []Notification {
	idx := -1
	for i, n := range list {
		if n.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return list
	}
	out := make([]Notification, 0, len(list)-1)
	for _, n := range list {
		if n.ID != id {
			out = append(out, n)
		}
	}
	return out
}
