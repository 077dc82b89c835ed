package domain

import "errors"

// ErrScheduleRejected is returned when a schedule request needs a subsystem
// held by a non-interruptible command. The request is dropped whole; the
// incumbent keeps running.
var ErrScheduleRejected = errors.New("schedule rejected: subsystem held by a non-interruptible command")

// ErrGroupRunning is returned when a command group is modified or recomposed
// while it is scheduled.
var ErrGroupRunning = errors.New("command group is currently scheduled")

// ErrCyclicComposition is returned when a group would contain itself,
// directly or transitively.
var ErrCyclicComposition = errors.New("cyclic command composition")

// ErrReusedChild is returned when the same command instance appears more
// than once within a composition tree.
var ErrReusedChild = errors.New("command instance reused within a composition")
