package worker

import (
	"github.com/okian/liveupdates/pkg/logger"
)

// Option applies a configuration option to the Dispatcher.
type Option func(*Dispatcher)

// WithName sets the dispatcher name used in logs.
func WithName(name string) Option {
	return func(w *Dispatcher) {
		if name != "" {
			w.name = name
		}
	}
}

// WithLogger sets a custom logger for the dispatcher.
func WithLogger(l logger.Logger) Option {
	return func(w *Dispatcher) {
		if l != nil {
			w.logger = l
		}
	}
}
