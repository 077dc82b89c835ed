/*
Package rota is a cooperative, fixed-cycle command scheduler for robot
control programs.

It coordinates commands (units of robot behavior) competing for subsystems
(exclusive physical resources like a drivetrain), composes commands into
sequential and parallel control structures, and activates commands in
reaction to polled boolean triggers. There is no preemption: the embedding
application drives the scheduler by calling Run once per control period,
and every command callback must return promptly.

# Concept

A Command declares the Subsystems it requires. At most one command owns a
subsystem at any instant; scheduling a command whose requirements are held
by interruptible incumbents interrupts them, while a non-interruptible
incumbent rejects the whole request. Idle subsystems fall back to their
default command. Triggers sample external booleans once per cycle and
schedule or cancel commands on edges.

# Usage

	package main

	import (
		"time"

		"github.com/rota-robotics/rota"
		"github.com/rota-robotics/rota/pkg/domain"
	)

	func main() {
		drivetrain := domain.NewSubsystem("drivetrain")

		sched := rota.New()
		sched.RegisterSubsystem(drivetrain, domain.Idle("coast", drivetrain))

		drive := domain.NewFunc("teleop-drive",
			func() { // read sticks, set motor output
			},
			nil, // runs until preempted
			domain.WithRequirements(drivetrain),
		)
		sched.When(buttonPressed).OnTrue(drive)

		for range time.Tick(20 * time.Millisecond) {
			sched.Run()
		}
	}

Composite commands live in pkg/compose, trigger combinators in pkg/trigger,
Prometheus metrics hooks in pkg/observability, and a read-only telemetry
HTTP server in the rota CLI.
*/
package rota
