package dedux

import (
	"fmt"
	"log/slog"
)

// Interceptor wraps the dispatch entry point. It is bound to the store,
// then to the rest of the chain, and returns the handler for one action.
//
// An interceptor may call next zero, one, or several times, and may pass it a
// different action than the one it received. Not calling next drops the
// action without error.
type Interceptor[S any] func(s *Store[S]) func(next DispatchFunc) DispatchFunc

// ApplyChain replaces the store's entry point with the given interceptors
// wrapped around the raw dispatch. The first interceptor is the outermost and
// sees each action first.
//
// A store accepts exactly one chain; a second call returns ErrChainApplied
// and leaves the existing chain in place.
func ApplyChain[S any](s *Store[S], interceptors ...Interceptor[S]) error {
	if s == nil {
		return &ConfigurationError{Reason: "nil store"}
	}
	for i, ic := range interceptors {
		if ic == nil {
			return &ConfigurationError{Reason: fmt.Sprintf("interceptor %d is nil", i)}
		}
	}

	s.mu.RLock()
	chained := s.chained
	s.mu.RUnlock()
	if chained {
		return ErrChainApplied
	}

	// Interceptors are bound without the lock held; a factory may read State.
	handler := DispatchFunc(s.rawDispatch)
	for i := len(interceptors) - 1; i >= 0; i-- {
		handler = interceptors[i](s)(handler)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.chained {
		return ErrChainApplied
	}
	s.dispatch = handler
	s.chained = true

	s.logger.Debug("interceptor chain applied", slog.Int("interceptors", len(interceptors)))
	return nil
}
