package dedux

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned when a Store or chain cannot be built
	// from the arguments given.
	ErrConfiguration = errors.New("dedux: invalid configuration")

	// ErrInvalidAction is returned by Dispatch for a nil action or one
	// without a non-empty string type.
	ErrInvalidAction = errors.New("dedux: invalid action")

	// ErrChainApplied is returned by ApplyChain when the store already has
	// an interceptor chain.
	ErrChainApplied = errors.New("dedux: interceptor chain already applied")
)

// ConfigurationError describes what was wrong with a construction request.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("dedux: invalid configuration: %s", e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

// InvalidActionError describes why an action was rejected.
type InvalidActionError struct {
	Reason string
}

func (e *InvalidActionError) Error() string {
	return fmt.Sprintf("dedux: invalid action: %s", e.Reason)
}

func (e *InvalidActionError) Unwrap() error {
	return ErrInvalidAction
}
