package store

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo-client/core"
)

type (
	DispatchFunc func(Action)
	GetStateFunc func() State

	// Thunk is a deferred action creator: it may read the state and dispatch any number of actions.
	Thunk func(ctx context.Context, dispatch DispatchFunc, getState GetStateFunc) error

	// Middleware wraps the dispatch of the store. It runs while the dispatch lock is held,
	// so it must not call Store.Dispatch itself; it calls next instead.
	Middleware func(getState GetStateFunc, next DispatchFunc) DispatchFunc
)

// Store holds the client state tree. Every update goes through Dispatch; dispatches are
// applied one at a time, in the order they acquire the lock.
type Store struct {
	dispatchMu sync.Mutex
	stateMu    sync.RWMutex
	state      State
	reducer    Reducer
	dispatch   DispatchFunc
	log        core.Logger

	listenersMu sync.Mutex
	listeners   map[int]func(State)
	nextID      int

	// seq numbers dispatches; notifyMu guards the delivery of their states.
	seq       uint64
	notifyMu  sync.Mutex
	pending   *State
	pendingAt uint64
	notifying bool
}

type Option func(*Store)

func WithMiddleware(mw ...Middleware) Option {
	return func(s *Store) {
		// first middleware is the outermost
		for i := len(mw) - 1; i >= 0; i-- {
			s.dispatch = mw[i](s.State, s.dispatch)
		}
	}
}

// WithLogger sets where subscriber panics are reported.
func WithLogger(log core.Logger) Option {
	return func(s *Store) { s.log = log }
}

func WithInitialState(state State) Option {
	return func(s *Store) { s.state = state }
}

func New(opts ...Option) *Store {
	s := &Store{
		state:     InitialState(),
		reducer:   Reduce,
		log:       core.NopLogger{},
		listeners: make(map[int]func(State)),
	}
	s.dispatch = s.reduce
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) reduce(a Action) {
	s.stateMu.Lock()
	s.state = s.reducer(s.state, a)
	s.stateMu.Unlock()
}

// State returns the current state tree.
func (s *Store) State() State {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.state
}

// Dispatch applies a through the middleware chain and the root reducer, then notifies subscribers.
// Subscribers see states in dispatch order. When dispatches race, a state superseded before
// it could be delivered is skipped.
func (s *Store) Dispatch(a Action) {
	if a == nil {
		return
	}
	s.dispatchMu.Lock()
	s.dispatch(a)
	state := s.State()
	s.seq++
	seq := s.seq
	s.dispatchMu.Unlock()

	s.notify(seq, state)
}

// Run executes a thunk against the store.
func (s *Store) Run(ctx context.Context, thunk Thunk) error {
	return thunk(ctx, s.Dispatch, s.State)
}

// Subscribe registers fn to be called with the new state after every dispatch.
// The returned func removes the subscription.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.listenersMu.Lock()
			delete(s.listeners, id)
			s.listenersMu.Unlock()
		})
	}
}

// notify queues state for delivery. Only one goroutine delivers at a time; it keeps
// draining until no newer state is pending, so a subscriber calling Dispatch gets its
// state delivered once the current round returns.
func (s *Store) notify(seq uint64, state State) {
	s.notifyMu.Lock()
	if seq > s.pendingAt {
		s.pending, s.pendingAt = &state, seq
	}
	if s.notifying {
		s.notifyMu.Unlock()
		return
	}
	s.notifying = true
	for s.pending != nil {
		next := *s.pending
		s.pending = nil
		s.notifyMu.Unlock()

		s.deliver(next)

		s.notifyMu.Lock()
	}
	s.notifying = false
	s.notifyMu.Unlock()
}

func (s *Store) deliver(state State) {
	s.listenersMu.Lock()
	fns := make([]func(State), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.listenersMu.Unlock()

	for _, fn := range fns {
		s.call(fn, state)
	}
}

// call runs a subscriber, logging instead of propagating its panic.
func (s *Store) call(fn func(State), state State) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("subscriber panicked", errors.Errorf("%v", r))
		}
	}()
	fn(state)
}
