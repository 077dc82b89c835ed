// Package runtime implements the core command scheduler engine.
//
// The scheduler is single-threaded and cycle-driven: the embedding
// application calls Run once per control period. Within a cycle the order
// is fixed: trigger polling, request processing, default commands for idle
// subsystems, then execution and retirement of active commands in stable
// FIFO order.
package runtime

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/rota-robotics/rota/internal/logging"
	"github.com/rota-robotics/rota/pkg/domain"
	"github.com/rota-robotics/rota/pkg/trigger"
)

// entry tracks one active command.
type entry struct {
	command domain.Command
	state   domain.LifecycleState
}

// Scheduler is the central registry and per-cycle driver. It owns the
// subsystem ownership map; nothing else may run commands or reassign
// subsystems.
type Scheduler struct {
	logger *slog.Logger
	hooks  domain.LifecycleHooks

	active     []*entry // FIFO by scheduling time
	index      map[domain.Command]*entry
	owners     map[*domain.Subsystem]domain.Command
	defaults   map[*domain.Subsystem]domain.Command
	subsystems []*domain.Subsystem // registration order
	triggers   []*trigger.Trigger
	cycle      uint64
}

// New creates a scheduler. Multiple independent instances may coexist;
// there is no process-wide singleton.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		logger:   logging.NewNop(),
		index:    make(map[domain.Command]*entry),
		owners:   make(map[*domain.Subsystem]domain.Command),
		defaults: make(map[*domain.Subsystem]domain.Command),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterSubsystem registers a subsystem and its optional default command.
// A default command must itself require the subsystem it defaults for.
// Registering the same subsystem again replaces its default.
func (s *Scheduler) RegisterSubsystem(sub *domain.Subsystem, defaultCmd domain.Command) error {
	if defaultCmd != nil && !requires(defaultCmd, sub) {
		return fmt.Errorf("default command %q does not require subsystem %q", defaultCmd.Name(), sub.Name())
	}
	if _, known := s.defaults[sub]; !known {
		s.subsystems = append(s.subsystems, sub)
	}
	s.defaults[sub] = defaultCmd
	return nil
}

// AddTrigger registers a trigger to be polled every cycle, in registration
// order.
func (s *Scheduler) AddTrigger(t *trigger.Trigger) {
	s.triggers = append(s.triggers, t)
}

// Schedule activates a command immediately, bypassing triggers.
//
// Scheduling an already-active command is a no-op. If any required
// subsystem is held by a non-interruptible command the whole request is
// rejected with domain.ErrScheduleRejected and nothing changes; otherwise
// every interruptible incumbent is ended with interrupted=true and the
// command takes ownership of all its requirements.
func (s *Scheduler) Schedule(cmd domain.Command) error {
	if _, active := s.index[cmd]; active {
		return nil
	}

	// Conflict scan first: rejection must leave every incumbent untouched,
	// so no incumbent is interrupted until the whole request is admissible.
	var conflicts []*entry
	seen := make(map[*entry]bool)
	for _, sub := range cmd.Requirements() {
		owner, owned := s.owners[sub]
		if !owned {
			continue
		}
		if !owner.Interruptible() {
			s.emitRejected(cmd, owner, sub)
			s.logger.Warn("schedule rejected",
				"command", cmd.Name(),
				"subsystem", sub.Name(),
				"holder", owner.Name(),
				"cycle", s.cycle,
			)
			return fmt.Errorf("%q needs subsystem %q held by %q: %w",
				cmd.Name(), sub.Name(), owner.Name(), domain.ErrScheduleRejected)
		}
		e := s.index[owner]
		if !seen[e] {
			seen[e] = true
			conflicts = append(conflicts, e)
		}
	}

	for _, e := range conflicts {
		s.interrupt(e)
	}

	e := &entry{command: cmd, state: domain.StateInitialized}
	cmd.Initialize()
	s.active = append(s.active, e)
	s.index[cmd] = e
	for _, sub := range cmd.Requirements() {
		s.owners[sub] = cmd
	}

	s.emitCommand(s.hooks.OnCommandScheduled, domain.EventCommandScheduled, cmd)
	s.logger.Debug("command scheduled", "command", cmd.Name(), "cycle", s.cycle)
	return nil
}

// Cancel ends an active command with interrupted=true and releases its
// subsystems within the same cycle. Cancelling an inactive command is a
// no-op.
func (s *Scheduler) Cancel(cmd domain.Command) {
	if e, active := s.index[cmd]; active {
		s.interrupt(e)
	}
}

// CancelAll cancels every active command in FIFO order.
func (s *Scheduler) CancelAll() {
	for _, e := range append([]*entry(nil), s.active...) {
		s.interrupt(e)
	}
}

// Run executes one scheduler cycle.
func (s *Scheduler) Run() {
	s.cycle++

	// 1. Poll every trigger, collecting requests before acting on any of
	// them so scheduling effects never leak into later samples.
	var requests []trigger.Request
	for _, t := range s.triggers {
		requests = append(requests, t.Poll()...)
	}

	// 2. Process requests. Rejections are non-fatal: already surfaced via
	// hook and log, the cycle continues.
	for _, req := range requests {
		switch req.Kind {
		case trigger.RequestSchedule:
			_ = s.Schedule(req.Command)
		case trigger.RequestCancel:
			s.Cancel(req.Command)
		case trigger.RequestToggle:
			if s.IsScheduled(req.Command) {
				s.Cancel(req.Command)
			} else {
				_ = s.Schedule(req.Command)
			}
		}
	}

	// 3. Default commands for subsystems nobody owns.
	for _, sub := range s.subsystems {
		if _, owned := s.owners[sub]; owned {
			continue
		}
		def := s.defaults[sub]
		if def == nil {
			continue
		}
		if _, active := s.index[def]; active {
			// A default spanning several subsystems may already be up.
			continue
		}
		_ = s.Schedule(def)
	}

	// 4. Execute active commands and retire finished ones, in stable FIFO
	// order by original scheduling time.
	for _, e := range append([]*entry(nil), s.active...) {
		if s.index[e.command] != e {
			// Cancelled earlier in this cycle; it must not execute again.
			continue
		}
		e.state = domain.StateRunning
		e.command.Execute()
		if e.command.IsFinished() {
			e.state = domain.StateEnding
			e.command.End(false)
			s.remove(e)
			s.emitCommand(s.hooks.OnCommandFinished, domain.EventCommandFinished, e.command)
			s.logger.Debug("command finished", "command", e.command.Name(), "cycle", s.cycle)
		}
	}

	if s.hooks.OnCycle != nil {
		s.hooks.OnCycle(&domain.CycleEvent{
			Timestamp: time.Now(),
			Cycle:     s.cycle,
			Active:    len(s.active),
		})
	}
}

// interrupt retires an active command with interrupted=true and releases
// every subsystem it holds.
func (s *Scheduler) interrupt(e *entry) {
	e.state = domain.StateEnding
	e.command.End(true)
	s.remove(e)
	s.emitCommand(s.hooks.OnCommandInterrupted, domain.EventCommandInterrupted, e.command)
	s.logger.Debug("command interrupted", "command", e.command.Name(), "cycle", s.cycle)
}

// remove detaches an entry from the active set and releases its ownership.
func (s *Scheduler) remove(e *entry) {
	for i, cur := range s.active {
		if cur == e {
			s.active = append(s.active[:i], s.active[i+1:]...)
			break
		}
	}
	delete(s.index, e.command)
	for _, sub := range e.command.Requirements() {
		if s.owners[sub] == e.command {
			delete(s.owners, sub)
		}
	}
	e.state = domain.StateFinished
}

func requires(cmd domain.Command, sub *domain.Subsystem) bool {
	for _, r := range cmd.Requirements() {
		if r == sub {
			return true
		}
	}
	return false
}

func (s *Scheduler) emitCommand(hook func(*domain.CommandEvent), typ domain.EventType, cmd domain.Command) {
	if hook == nil {
		return
	}
	hook(&domain.CommandEvent{
		Timestamp:  time.Now(),
		Type:       typ,
		Command:    cmd.Name(),
		Subsystems: domain.SubsystemNames(cmd.Requirements()),
		Cycle:      s.cycle,
	})
}

func (s *Scheduler) emitRejected(cmd, holder domain.Command, sub *domain.Subsystem) {
	if s.hooks.OnScheduleRejected == nil {
		return
	}
	s.hooks.OnScheduleRejected(&domain.RejectionEvent{
		Timestamp: time.Now(),
		Command:   cmd.Name(),
		Holder:    holder.Name(),
		Subsystem: sub.Name(),
		Cycle:     s.cycle,
	})
}
