// Package dedux provides a small, synchronous state container with an
// interceptor pipeline. A [Store] holds one value, advances it only through a
// pure [Reducer], and notifies its observers after every accepted [Action].
//
// # Key Concepts
//
//   - [Store] owns the current state, the reducer, and the observer list.
//   - [Action] is a typed transition request. Its Type must be non-empty.
//   - [Observer] receives the new state, in registration order, before
//     Dispatch returns.
//   - [Interceptor] wraps the dispatch entry point. [ApplyChain] installs an
//     ordered list of them once per store; the first is the outermost.
//
// # Quick Start
//
//	s, err := dedux.New(func(n int, a *dedux.Action) int {
//		if a != nil && a.Type == "INC" {
//			return n + 1
//		}
//		return n
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	unsubscribe := s.Subscribe(func(n int) { fmt.Println(n) })
//	defer unsubscribe()
//
//	s.Dispatch(ctx, dedux.NewAction("INC", nil))
//
// # Limitations
//
// A panicking observer or interceptor propagates out of Dispatch and stops
// delivery to the remaining observers for that action. Reducers must not
// call Dispatch; observers and interceptors may.
package dedux
