package domain

// LifecycleState is the scheduler-visible phase of a command.
type LifecycleState string

const (
	// StateIdle means the command is not owned by a scheduler.
	StateIdle LifecycleState = "idle"
	// StateInitialized means Initialize ran but Execute has not yet.
	StateInitialized LifecycleState = "initialized"
	// StateRunning means the command is being executed each cycle.
	StateRunning LifecycleState = "running"
	// StateEnding means retirement was decided and End is about to run.
	StateEnding LifecycleState = "ending"
	// StateFinished means End has run; the command is back to rest and may
	// be scheduled again.
	StateFinished LifecycleState = "finished"
)

// Active reports whether a command in this state occupies the scheduler's
// active set and holds its subsystem requirements.
func (s LifecycleState) Active() bool {
	switch s {
	case StateInitialized, StateRunning, StateEnding:
		return true
	default:
		return false
	}
}
