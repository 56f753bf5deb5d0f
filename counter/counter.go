// Package counter is a small consumer of dedux: an integer counter that can
// be incremented, decremented, and reset, and whose value is mirrored to a
// key-value backend between runs.
package counter

import (
	"context"
	"fmt"

	"github.com/ryhazerus/dedux"
	"github.com/ryhazerus/dedux/intercept"
	"github.com/ryhazerus/dedux/persist"
)

// Action types.
const (
	IncrementType = "app/counter/INCREMENT"
	DecrementType = "app/counter/DECREMENT"
	ResetType     = "app/counter/RESET"
)

// StorageKey is the key the counter value is mirrored under.
const StorageKey = "count"

// Increment returns an action that adds one to the counter.
func Increment() *dedux.Action { return dedux.NewAction(IncrementType, nil) }

// Decrement returns an action that subtracts one from the counter.
func Decrement() *dedux.Action { return dedux.NewAction(DecrementType, nil) }

// Reset returns an action that sets the counter back to zero.
func Reset() *dedux.Action { return dedux.NewAction(ResetType, nil) }

// Reducer returns the counter reducer. initial is the state produced when
// the store is created, usually a previously persisted value.
func Reducer(initial int) dedux.Reducer[int] {
	return func(state int, action *dedux.Action) int {
		if action == nil {
			return initial
		}
		switch action.Type {
		case IncrementType:
			return state + 1
		case DecrementType:
			return state - 1
		case ResetType:
			return 0
		default:
			return state
		}
	}
}

// Open builds a counter store whose initial value is read from m and whose
// every accepted state is written back to it. Extra interceptors run before
// the persistence mirror.
//
// A missing or undecodable saved value starts the counter at zero. Any other
// backend error is returned so the saved value is never overwritten.
func Open(ctx context.Context, m *persist.Mirror[int], opts []dedux.Option, interceptors ...dedux.Interceptor[int]) (*dedux.Store[int], error) {
	initial, err := m.LoadOr(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("counter: load initial value: %w", err)
	}

	s, err := dedux.New(Reducer(initial), opts...)
	if err != nil {
		return nil, err
	}

	chain := append(interceptors[:len(interceptors):len(interceptors)], intercept.Persist(m))
	if err := dedux.ApplyChain(s, chain...); err != nil {
		return nil, err
	}
	return s, nil
}
