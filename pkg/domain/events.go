package domain

import "time"

// EventType defines the category of the event.
type EventType string

const (
	EventCommandScheduled   EventType = "command_scheduled"
	EventCommandFinished    EventType = "command_finished"
	EventCommandInterrupted EventType = "command_interrupted"
	EventScheduleRejected   EventType = "schedule_rejected"
)

// CommandEvent describes a lifecycle transition of a single command.
type CommandEvent struct {
	Timestamp  time.Time `json:"timestamp"`
	Type       EventType `json:"type"`
	Command    string    `json:"command"`
	Subsystems []string  `json:"subsystems,omitempty"`
	Cycle      uint64    `json:"cycle"`
}

// RejectionEvent describes a schedule request dropped because a required
// subsystem was held by a non-interruptible command.
type RejectionEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Command   string    `json:"command"`
	Holder    string    `json:"holder"`
	Subsystem string    `json:"subsystem"`
	Cycle     uint64    `json:"cycle"`
}

// CycleEvent is emitted once at the end of every scheduler cycle.
type CycleEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Cycle     uint64    `json:"cycle"`
	Active    int       `json:"active"`
}

// LifecycleHooks defines callbacks for scheduler observability.
//
// Hooks run synchronously inside the cycle, so they must be cheap and must
// not call back into the scheduler. A nil hook is skipped.
type LifecycleHooks struct {
	OnCommandScheduled   func(*CommandEvent)
	OnCommandFinished    func(*CommandEvent)
	OnCommandInterrupted func(*CommandEvent)
	OnScheduleRejected   func(*RejectionEvent)
	OnCycle              func(*CycleEvent)
}

// CombineHooks fans each event out to every hook set in order, so metrics
// and application hooks can coexist on one scheduler.
func CombineHooks(sets ...LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnCommandScheduled: func(e *CommandEvent) {
			for _, h := range sets {
				if h.OnCommandScheduled != nil {
					h.OnCommandScheduled(e)
				}
			}
		},
		OnCommandFinished: func(e *CommandEvent) {
			for _, h := range sets {
				if h.OnCommandFinished != nil {
					h.OnCommandFinished(e)
				}
			}
		},
		OnCommandInterrupted: func(e *CommandEvent) {
			for _, h := range sets {
				if h.OnCommandInterrupted != nil {
					h.OnCommandInterrupted(e)
				}
			}
		},
		OnScheduleRejected: func(e *RejectionEvent) {
			for _, h := range sets {
				if h.OnScheduleRejected != nil {
					h.OnScheduleRejected(e)
				}
			}
		},
		OnCycle: func(e *CycleEvent) {
			for _, h := range sets {
				if h.OnCycle != nil {
					h.OnCycle(e)
				}
			}
		},
	}
}
