package command

import (
	"context"
	"time"

	"github.com/nibzard/choretracker-go/internal/action"
	"github.com/nibzard/choretracker-go/internal/notification"
)

// ShowInfo shows an informational notification.
func (c *Commands) ShowInfo(message string) Thunk {
	return func(ctx context.Context, d Dispatcher) error {
		c.show(d, message, notification.Info)
		return nil
	}
}

// ShowError shows an error notification.
func (c *Commands) ShowError(message string) Thunk {
	return func(ctx context.Context, d Dispatcher) error {
		c.show(d, message, notification.Error)
		return nil
	}
}

// Dismiss hides a notification before it expires.
func (c *Commands) Dismiss(id int) Thunk {
	return func(ctx context.Context, d Dispatcher) error {
		d.Dispatch(action.Hide(id))
		return nil
	}
}

// show dispatches a notification with the next free id and schedules its
// removal. The hide is matched by id, so it is a no-op if the notification
// is already gone.
func (c *Commands) show(d Dispatcher, message string, level notification.Level) int {
	c.notifyMu.Lock()
	id := notification.NextID(d.State().Notifications)
	if level == notification.Error {
		c.logger().Error("notification", "id", id, "message", message)
	}
	d.Dispatch(action.Show(notification.Notification{ID: id, Message: message, Level: level}))
	c.notifyMu.Unlock()

	c.clock().AfterFunc(c.expiry(), func() {
		d.Dispatch(action.Hide(id))
	})
	return id
}

// TickTimeReference dispatches UPDATE_TIME_REFERENCE every interval until
// ctx is done. A non-positive interval means DefaultTickInterval.
func (c *Commands) TickTimeReference(interval time.Duration) Thunk {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return func(ctx context.Context, d Dispatcher) error {
		t := &ticker{clk: c.clock(), interval: interval, fire: func(now time.Time) {
			d.Dispatch(action.SetTimeReference(now.Unix()))
		}}
		t.schedule()
		<-ctx.Done()
		t.stop()
		return nil
	}
}
