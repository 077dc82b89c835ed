/*
Package domain contains the core domain models for the Rota scheduler.

It defines the fundamental entities of the command system: Commands,
Subsystems, lifecycle states and the event types emitted through lifecycle
hooks. This package is kept pure and free of external dependencies like I/O
or transport, following Hexagonal Architecture principles.

# Key Entities

  - Command: The contract every schedulable unit of behavior satisfies.
  - Subsystem: A named physical resource with exclusive-access semantics.
  - LifecycleState: The scheduler-visible phase of an active command.
  - LifecycleHooks: Callbacks for external observability (logging, metrics).
*/
package domain
