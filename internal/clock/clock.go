// Package clock abstracts wall time so timed behavior can be tested
// deterministically.
package clock

import (
	"sort"
	"sync"
	"time"
)

// Clock reports the current time and schedules callbacks.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a scheduled callback.
type Timer interface {
	// Stop cancels the callback. It reports whether the call stopped it
	// before it fired.
	Stop() bool
}

// Real is the system clock.
type Real struct{}

func (Real) Now() time.Time { return time.Now() }

func (Real) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Fake is deterministic and test-friendly. Scheduled callbacks fire
// synchronously from Advance or Set once their deadline is reached.
type Fake struct {
	mu     sync.Mutex
	t      time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	clock    *Fake
	deadline time.Time
	f        func()
	done     bool
}

// NewFake returns a fake clock starting at start.
func NewFake(start time.Time) *Fake {
	return &Fake{t: start}
}

func (c *Fake) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *Fake) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, deadline: c.t.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

// Set moves the clock to t and fires due callbacks.
func (c *Fake) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	due := c.collect()
	c.mu.Unlock()
	for _, timer := range due {
		timer.f()
	}
}

// Advance moves the clock forward by d and fires due callbacks.
func (c *Fake) Advance(d time.Duration) {
	c.Set(c.Now().Add(d))
}

// Pending returns the number of callbacks that have not fired or been
// stopped.
func (c *Fake) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

// collect removes and returns due timers in deadline order. Callers hold mu.
func (c *Fake) collect() []*fakeTimer {
	var due, rest []*fakeTimer
	for _, t := range c.timers {
		if !t.deadline.After(c.t) {
			t.done = true
			due = append(due, t)
		} else {
			rest = append(rest, t)
		}
	}
	c.timers = rest
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].deadline.Before(due[j].deadline)
	})
	return due
}

func (t *fakeTimer) Stop() bool {
	c := t.clock
	c.mu.Lock()
	defer c.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	for i, other := range c.timers {
		if other == t {
			c.timers = append(c.timers[:i:i], c.timers[i+1:]...)
			break
		}
	}
	return true
}
