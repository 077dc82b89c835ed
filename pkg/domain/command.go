package domain

// Command is the contract for a schedulable unit of robot behavior.
//
// The scheduler drives the lifecycle: Initialize is called exactly once when
// the command becomes active, Execute once per cycle while it stays active,
// IsFinished is polled after each Execute, and End is called exactly once on
// retirement. Commands must never be run by any path other than the
// scheduler (or a parent group, which the scheduler runs).
//
// None of the callbacks may block. A command that waits for external state
// simply keeps returning false from IsFinished until it is ready.
type Command interface {
	// Initialize prepares the command for a fresh run. It is called every
	// time the command is (re)scheduled, so implementations must reset any
	// per-run state here.
	Initialize()

	// Execute performs one cycle worth of behavior.
	Execute()

	// IsFinished reports whether the command has completed. It is a pure
	// query, polled once per cycle after Execute.
	IsFinished() bool

	// End is called exactly once when the command retires. interrupted is
	// true when the command was cancelled or preempted by a conflicting
	// request rather than finishing on its own.
	End(interrupted bool)

	// Requirements lists the subsystems the command needs exclusive access
	// to while active. Commands with no requirements never conflict.
	Requirements() []*Subsystem

	// Interruptible reports whether the scheduler may forcibly end this
	// command to satisfy a conflicting request.
	Interruptible() bool

	// Name identifies the command in logs and telemetry. It does not need
	// to be unique; command identity is the instance itself.
	Name() string
}
