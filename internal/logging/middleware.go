package logging

import (
	"github.com/charmbracelet/log"

	"github.com/nibzard/choretracker-go/internal/action"
	"github.com/nibzard/choretracker-go/internal/state"
	"github.com/nibzard/choretracker-go/internal/store"
)

// ActionLogger logs every dispatched action and a summary of the state it
// produced, at debug level. Failure actions are logged at warn level.
func ActionLogger(logger *log.Logger) store.Middleware[state.State] {
	return func(d store.Dispatcher[state.State], next store.DispatchFunc) store.DispatchFunc {
		return func(a action.Action) {
			if a.IsFailure() {
				logger.Warn("action", "type", a.Type.String(), "err", a.Err)
			} else {
				logger.Debug("action", "type", a.Type.String())
			}
			next(a)
			s := d.State()
			logger.Debug("state",
				"tasks", len(s.TasksByID),
				"notifications", len(s.Notifications),
				"time_reference", s.TimeReference,
			)
		}
	}
}
