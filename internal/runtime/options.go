package runtime

import (
	"log/slog"

	"github.com/rota-robotics/rota/pkg/domain"
)

// Option defines a functional option for configuring the Scheduler.
type Option func(*Scheduler)

// WithLogger sets a structured logger for the scheduler.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Scheduler) {
		s.hooks = hooks
	}
}
