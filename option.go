package dedux

import "log/slog"

type options struct {
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*options)

// WithLogger sets the logger used for debug output about dispatches and
// chain application. By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
