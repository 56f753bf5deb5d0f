package dedux

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Reducer computes the next state from the current state and an action. It
// must be pure. Called with the zero state and a nil action it returns the
// initial state; the store does this exactly once, in New.
type Reducer[S any] func(state S, action *Action) S

// Observer is notified with the new state after every accepted action.
type Observer[S any] func(state S)

// DispatchFunc handles one action. It is both the store's entry point and
// the "next" handler given to each interceptor.
type DispatchFunc func(ctx context.Context, action *Action) error

type subscription[S any] struct {
	fn Observer[S]
}

// Store holds a single state value and advances it only through its reducer.
// It is safe for concurrent use: reducer calls are serialised, and observers
// run outside the lock so they may dispatch re-entrantly.
type Store[S any] struct {
	id      string
	reducer Reducer[S]
	logger  *slog.Logger

	mu          sync.RWMutex
	state       S
	subscribers []*subscription[S]
	dispatch    DispatchFunc
	chained     bool
}

// New creates a Store and computes its initial state by calling reducer with
// the zero state and a nil action.
func New[S any](reducer Reducer[S], opts ...Option) (*Store[S], error) {
	if reducer == nil {
		return nil, &ConfigurationError{Reason: "no reducer provided"}
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}

	var zero S
	s := &Store[S]{
		id:      uuid.NewString(),
		reducer: reducer,
		state:   reducer(zero, nil),
	}
	s.logger = o.logger.With(slog.String("store", s.id))
	s.dispatch = s.rawDispatch
	return s, nil
}

// ID returns the identifier assigned to the store at creation.
func (s *Store[S]) ID() string {
	return s.id
}

// State returns the current state.
func (s *Store[S]) State() S {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch sends action through the interceptor chain, if one is applied,
// and on to the reducer. Every observer has been notified by the time an
// accepted action's Dispatch returns.
func (s *Store[S]) Dispatch(ctx context.Context, action *Action) error {
	s.mu.RLock()
	dispatch := s.dispatch
	s.mu.RUnlock()
	return dispatch(ctx, action)
}

// Subscribe registers fn to receive every new state. The returned function
// removes this registration; calling it again does nothing.
func (s *Store[S]) Subscribe(fn Observer[S]) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	sub := &subscription[S]{fn: fn}
	s.mu.Lock()
	s.subscribers = append(s.subscribers, sub)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, other := range s.subscribers {
			if other == sub {
				s.subscribers = append(s.subscribers[:i:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

// rawDispatch is the innermost handler: validate, reduce, notify.
func (s *Store[S]) rawDispatch(ctx context.Context, action *Action) error {
	if err := validateAction(action); err != nil {
		return err
	}

	next, subs := s.transition(action)
	s.logger.DebugContext(ctx, "action reduced",
		slog.String("type", action.Type),
		slog.Int("observers", len(subs)),
	)

	// Observers registered or removed from here on only see later dispatches.
	for _, sub := range subs {
		sub.fn(next)
	}
	return nil
}

// transition applies the reducer under the lock and returns the new state
// together with the observers registered at that moment.
func (s *Store[S]) transition(action *Action) (S, []*subscription[S]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = s.reducer(s.state, action)
	subs := make([]*subscription[S], len(s.subscribers))
	copy(subs, s.subscribers)
	return s.state, subs
}
