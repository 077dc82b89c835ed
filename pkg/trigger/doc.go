/*
Package trigger provides polled boolean conditions with edge-triggered
command bindings.

A Trigger samples an externally supplied boolean source once per scheduler
cycle and compares it against the previous sample to detect rising and
falling edges. Bindings (OnTrue, WhileTrue, ToggleOnTrue, ...) translate
edges into schedule or cancel requests that the scheduler applies in the
same cycle.

Combinators (And, Or, Negate, Debounce) build new Triggers without mutating
their operands. A Trigger value carries its own edge-detection state, so
each value should be registered with at most one scheduler.
*/
package trigger
