package command

import (
	"sync"
	"time"

	"github.com/nibzard/choretracker-go/internal/clock"
)

// ticker re-arms a one-shot timer after every tick so a fake clock can
// drive it.
type ticker struct {
	clk      clock.Clock
	interval time.Duration
	fire     func(now time.Time)

	mu      sync.Mutex
	timer   clock.Timer
	stopped bool
}

func (t *ticker) schedule() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.timer = t.clk.AfterFunc(t.interval, t.tick)
}

func (t *ticker) tick() {
	t.mu.Lock()
	stopped := t.stopped
	t.mu.Unlock()
	if stopped {
		return
	}
	t.fire(t.clk.Now())
	t.schedule()
}

func (t *ticker) stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
	}
}
