package rota

import (
	"io"
	"log/slog"

	"github.com/rota-robotics/rota/internal/runtime"
	"github.com/rota-robotics/rota/pkg/domain"
	"github.com/rota-robotics/rota/pkg/trigger"
)

// Scheduler is the high-level entry point for the Rota library. It wraps
// the internal runtime and provides the registration and per-cycle API the
// embedding robot program uses.
//
// The scheduler is cooperative and single-threaded: the embedding
// application calls Run once per control period from one goroutine. Period
// length and timing source belong to the caller.
type Scheduler struct {
	runtime *runtime.Scheduler
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	name    string
}

// Option defines a functional option for configuring the Scheduler.
type Option func(*Scheduler)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Scheduler) {
		s.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the scheduler.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// WithName labels the scheduler in log output, useful when several
// instances coexist.
func WithName(name string) Option {
	return func(s *Scheduler) {
		s.name = name
	}
}

// New initializes a scheduler. Instances are independent; tests can run as
// many as they like side by side.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if s.name != "" {
		s.logger = s.logger.With("scheduler", s.name)
	}

	s.runtime = runtime.New(
		runtime.WithLogger(s.logger),
		runtime.WithLifecycleHooks(s.hooks),
	)
	return s
}

// RegisterSubsystem registers a subsystem with an optional default command
// that runs whenever nothing else owns the subsystem. defaultCmd may be
// nil.
func (s *Scheduler) RegisterSubsystem(sub *domain.Subsystem, defaultCmd domain.Command) error {
	return s.runtime.RegisterSubsystem(sub, defaultCmd)
}

// When creates a trigger around the sampling function and registers it for
// polling. Bindings chain off the returned trigger:
//
//	sched.When(pad.ButtonA).OnTrue(shoot)
func (s *Scheduler) When(source func() bool) *trigger.Trigger {
	t := trigger.New(source)
	s.runtime.AddTrigger(t)
	return t
}

// AddTrigger registers an existing trigger (e.g. one built with
// combinators) for per-cycle polling.
func (s *Scheduler) AddTrigger(t *trigger.Trigger) {
	s.runtime.AddTrigger(t)
}

// Schedule activates a command immediately, bypassing triggers. It returns
// domain.ErrScheduleRejected (wrapped) when a required subsystem is held by
// a non-interruptible command; rejection leaves the scheduler unchanged.
func (s *Scheduler) Schedule(cmd domain.Command) error {
	return s.runtime.Schedule(cmd)
}

// Cancel ends an active command with interrupted=true. No-op when the
// command is not active.
func (s *Scheduler) Cancel(cmd domain.Command) {
	s.runtime.Cancel(cmd)
}

// CancelAll cancels every active command.
func (s *Scheduler) CancelAll() {
	s.runtime.CancelAll()
}

// Run executes one scheduler cycle: trigger poll, request processing,
// default commands, then active command execution and retirement.
func (s *Scheduler) Run() {
	s.runtime.Run()
}

// IsScheduled reports whether cmd is currently active.
func (s *Scheduler) IsScheduled(cmd domain.Command) bool {
	return s.runtime.IsScheduled(cmd)
}

// ActiveCommands returns the active commands in stable FIFO order.
func (s *Scheduler) ActiveCommands() []domain.Command {
	return s.runtime.ActiveCommands()
}

// OwnerOf returns the command currently owning the subsystem, or nil.
func (s *Scheduler) OwnerOf(sub *domain.Subsystem) domain.Command {
	return s.runtime.OwnerOf(sub)
}

// Cycle returns the number of cycles run so far.
func (s *Scheduler) Cycle() uint64 {
	return s.runtime.Cycle()
}

// Snapshot returns a read-only view of scheduler state for telemetry and
// dashboards. Take it between cycles and hand the result to consumers; it
// shares no state with the scheduler.
func (s *Scheduler) Snapshot() *domain.Snapshot {
	return s.runtime.Snapshot()
}
