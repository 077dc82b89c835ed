package trigger

import "github.com/rota-robotics/rota/pkg/domain"

// RequestKind classifies what a fired binding asks of the scheduler.
type RequestKind int

const (
	// RequestSchedule asks the scheduler to start the command.
	RequestSchedule RequestKind = iota
	// RequestCancel asks the scheduler to cancel the command if active.
	RequestCancel
	// RequestToggle schedules the command if inactive, cancels it otherwise.
	RequestToggle
)

// Request is the outcome of a fired binding, resolved by the scheduler.
type Request struct {
	Kind    RequestKind
	Command domain.Command
}

type bindingKind int

const (
	bindOnTrue bindingKind = iota
	bindOnFalse
	bindWhileTrue
	bindWhileFalse
	bindToggleOnTrue
)

type binding struct {
	kind    bindingKind
	command domain.Command
}

// Trigger is a polled boolean condition with edge-triggered command
// bindings. The source must be a side-effect-free sampling function; the
// scheduler invokes it at most once per cycle.
type Trigger struct {
	source   func() bool
	prev     bool
	sampled  bool
	bindings []binding
}

// New creates a trigger around a boolean sampling function.
func New(source func() bool) *Trigger {
	return &Trigger{source: source}
}

// OnTrue schedules cmd on the false-to-true edge.
func (t *Trigger) OnTrue(cmd domain.Command) *Trigger {
	t.bindings = append(t.bindings, binding{bindOnTrue, cmd})
	return t
}

// OnFalse schedules cmd on the true-to-false edge.
func (t *Trigger) OnFalse(cmd domain.Command) *Trigger {
	t.bindings = append(t.bindings, binding{bindOnFalse, cmd})
	return t
}

// WhileTrue schedules cmd on the rising edge and cancels it on the falling
// edge, so cmd is active exactly while the condition holds.
func (t *Trigger) WhileTrue(cmd domain.Command) *Trigger {
	t.bindings = append(t.bindings, binding{bindWhileTrue, cmd})
	return t
}

// WhileFalse schedules cmd on the falling edge and cancels it on the rising
// edge.
func (t *Trigger) WhileFalse(cmd domain.Command) *Trigger {
	t.bindings = append(t.bindings, binding{bindWhileFalse, cmd})
	return t
}

// ToggleOnTrue flips cmd between scheduled and cancelled on every rising
// edge. Falling edges are ignored.
func (t *Trigger) ToggleOnTrue(cmd domain.Command) *Trigger {
	t.bindings = append(t.bindings, binding{bindToggleOnTrue, cmd})
	return t
}

// Poll samples the source, updates edge state and returns the requests of
// every binding whose edge fired. The scheduler calls this once per cycle;
// application code normally never does.
//
// The very first poll compares against an unset previous value, so an
// initially-true condition fires OnTrue bindings on the first cycle.
func (t *Trigger) Poll() []Request {
	cur := t.source()
	changed := !t.sampled || cur != t.prev
	t.prev = cur
	t.sampled = true
	if !changed {
		return nil
	}

	var reqs []Request
	for _, b := range t.bindings {
		switch b.kind {
		case bindOnTrue:
			if cur {
				reqs = append(reqs, Request{RequestSchedule, b.command})
			}
		case bindOnFalse:
			if !cur {
				reqs = append(reqs, Request{RequestSchedule, b.command})
			}
		case bindWhileTrue:
			if cur {
				reqs = append(reqs, Request{RequestSchedule, b.command})
			} else {
				reqs = append(reqs, Request{RequestCancel, b.command})
			}
		case bindWhileFalse:
			if cur {
				reqs = append(reqs, Request{RequestCancel, b.command})
			} else {
				reqs = append(reqs, Request{RequestSchedule, b.command})
			}
		case bindToggleOnTrue:
			if cur {
				reqs = append(reqs, Request{RequestToggle, b.command})
			}
		}
	}
	return reqs
}
