// Package intercept provides ready-made interceptors for a dedux.Store.
package intercept

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ryhazerus/dedux"
	"github.com/ryhazerus/dedux/persist"
)

// Logging logs each action before handing it on, and the outcome after the
// rest of the chain returns.
func Logging[S any](logger *slog.Logger) dedux.Interceptor[S] {
	return func(s *dedux.Store[S]) func(dedux.DispatchFunc) dedux.DispatchFunc {
		log := logger.With(slog.String("store", s.ID()))
		return func(next dedux.DispatchFunc) dedux.DispatchFunc {
			return func(ctx context.Context, a *dedux.Action) error {
				if a == nil {
					log.WarnContext(ctx, "nil action dispatched")
					return next(ctx, a)
				}

				log.DebugContext(ctx, "dispatching action",
					slog.String("type", a.Type),
					slog.Any("payload", a.Payload),
				)
				start := time.Now()
				err := next(ctx, a)
				if err != nil {
					log.ErrorContext(ctx, "action failed",
						slog.String("type", a.Type),
						slog.Duration("elapsed", time.Since(start)),
						slog.Any("error", err),
					)
					return err
				}
				log.InfoContext(ctx, "action dispatched",
					slog.String("type", a.Type),
					slog.Duration("elapsed", time.Since(start)),
					slog.Any("state", s.State()),
				)
				return nil
			}
		}
	}
}

// Filter drops every action for which allow returns false. Dropped actions
// are not an error.
func Filter[S any](allow func(*dedux.Action) bool) dedux.Interceptor[S] {
	return func(*dedux.Store[S]) func(dedux.DispatchFunc) dedux.DispatchFunc {
		return func(next dedux.DispatchFunc) dedux.DispatchFunc {
			return func(ctx context.Context, a *dedux.Action) error {
				if a != nil && !allow(a) {
					return nil
				}
				return next(ctx, a)
			}
		}
	}
}

// Rewrite passes fn(action) downstream in place of the original. A nil
// result drops the action.
func Rewrite[S any](fn func(*dedux.Action) *dedux.Action) dedux.Interceptor[S] {
	return func(*dedux.Store[S]) func(dedux.DispatchFunc) dedux.DispatchFunc {
		return func(next dedux.DispatchFunc) dedux.DispatchFunc {
			return func(ctx context.Context, a *dedux.Action) error {
				if a == nil {
					return next(ctx, a)
				}
				rewritten := fn(a)
				if rewritten == nil {
					return nil
				}
				return next(ctx, rewritten)
			}
		}
	}
}

// Persist saves the store's state to m after every action the rest of the
// chain accepts. A failed save is returned from Dispatch; the in-memory
// transition has already happened by then.
//
// Reading the state and saving it happen under one lock, so with concurrent
// dispatches the last save always carries the latest state.
func Persist[S any](m *persist.Mirror[S]) dedux.Interceptor[S] {
	return func(s *dedux.Store[S]) func(dedux.DispatchFunc) dedux.DispatchFunc {
		var mu sync.Mutex
		return func(next dedux.DispatchFunc) dedux.DispatchFunc {
			return func(ctx context.Context, a *dedux.Action) error {
				if err := next(ctx, a); err != nil {
					return err
				}
				mu.Lock()
				defer mu.Unlock()
				return m.Save(ctx, s.State())
			}
		}
	}
}
