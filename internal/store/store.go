// Package store is the single entry point for state changes. It owns the
// current state, reduces dispatched actions through a pipeline, and notifies
// subscribers of each new snapshot.
package store

import (
	"context"
	"sync"

	"github.com/nibzard/choretracker-go/internal/action"
	"github.com/nibzard/choretracker-go/internal/reducer"
)

// Dispatcher is what commands receive: dispatch plus read access to the
// current state.
type Dispatcher[S any] interface {
	Dispatch(a action.Action)
	State() S
}

// Thunk is a unit of asynchronous work that dispatches actions as it
// progresses.
type Thunk[S any] func(ctx context.Context, d Dispatcher[S]) error

// DispatchFunc hands an action to the next stage of the dispatch chain.
type DispatchFunc func(a action.Action)

// Middleware wraps dispatch. It may observe state through d and must call
// next to let the action reach the reducer.
type Middleware[S any] func(d Dispatcher[S], next DispatchFunc) DispatchFunc

// Option configures a Store.
type Option[S any] func(*Store[S])

// WithMiddleware appends middleware. The first middleware given is the
// outermost.
func WithMiddleware[S any](mw ...Middleware[S]) Option[S] {
	return func(s *Store[S]) {
		s.middleware = append(s.middleware, mw...)
	}
}

type subscription[S any] struct {
	id int
	fn func(S)
}

// Store holds state of type S.
type Store[S any] struct {
	reduce     reducer.Reducer[S]
	middleware []Middleware[S]
	dispatch   DispatchFunc

	mu       sync.Mutex
	state    S
	pending  []S
	draining bool

	subMu  sync.Mutex
	subs   []subscription[S]
	nextID int
}

// New creates a store seeded with the pipeline's initial state.
func New[S any](p *reducer.Pipeline[S], opts ...Option[S]) *Store[S] {
	s := &Store[S]{
		reduce: p.Reducer(),
		state:  p.Initial(),
	}
	for _, opt := range opts {
		opt(s)
	}

	dispatch := DispatchFunc(s.apply)
	for i := len(s.middleware) - 1; i >= 0; i-- {
		dispatch = s.middleware[i](s, dispatch)
	}
	s.dispatch = dispatch
	return s
}

// State returns the current snapshot.
func (s *Store[S]) State() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch runs a through the middleware chain and the reducer.
func (s *Store[S]) Dispatch(a action.Action) {
	s.dispatch(a)
}

// Run executes a thunk against the store.
func (s *Store[S]) Run(ctx context.Context, t Thunk[S]) error {
	return t(ctx, s)
}

// Subscribe registers fn to be called with every new snapshot. The returned
// function removes the subscription.
func (s *Store[S]) Subscribe(fn func(S)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription[S]{id: id, fn: fn})

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// apply reduces one action to completion before any other may start and
// queues the new snapshot. Snapshots reach subscribers in reduction order:
// whichever dispatch finds the queue idle delivers every queued snapshot,
// outside the lock so subscribers may dispatch.
func (s *Store[S]) apply(a action.Action) {
	s.mu.Lock()
	s.state = s.reduce(s.state, a)
	s.pending = append(s.pending, s.state)
	if s.draining {
		s.mu.Unlock()
		return
	}
	s.draining = true
	s.mu.Unlock()

	s.drain()
}

func (s *Store[S]) drain() {
	defer func() {
		if r := recover(); r != nil {
			s.mu.Lock()
			s.pending = nil
			s.draining = false
			s.mu.Unlock()
			panic(r)
		}
	}()

	for {
		s.mu.Lock()
		if len(s.pending) == 0 {
			s.pending = nil
			s.draining = false
			s.mu.Unlock()
			return
		}
		next := s.pending[0]
		s.pending = s.pending[1:]
		s.mu.Unlock()

		for _, sub := range s.subscribers() {
			sub.fn(next)
		}
	}
}

func (s *Store[S]) subscribers() []subscription[S] {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	subs := make([]subscription[S], len(s.subs))
	copy(subs, s.subs)
	return subs
}
