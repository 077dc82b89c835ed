package rota_test

import (
	"fmt"
	"log"

	"github.com/rota-robotics/rota"
	"github.com/rota-robotics/rota/pkg/compose"
	"github.com/rota-robotics/rota/pkg/domain"
)

// ExampleNew demonstrates the basic shape of an embedded scheduler: declare
// subsystems, compose a routine, schedule it and drive cycles from your own
// control loop.
func ExampleNew() {
	arm := domain.NewSubsystem("arm")

	sched := rota.New()
	if err := sched.RegisterSubsystem(arm, nil); err != nil {
		log.Fatal(err)
	}

	raise := domain.WaitCycles("raise", 2, domain.WithRequirements(arm))
	score := domain.RunOnce("score", func() { fmt.Println("scored!") })
	routine, err := compose.Sequential(raise, score)
	if err != nil {
		log.Fatal(err)
	}

	if err := sched.Schedule(routine); err != nil {
		log.Fatal(err)
	}

	// A real program runs this off a ticker at its control period.
	for sched.IsScheduled(routine) {
		sched.Run()
	}
	fmt.Println("routine done after", sched.Cycle(), "cycles")

	// Output:
	// scored!
	// routine done after 3 cycles
}

// ExampleScheduler_When binds a command to a boolean condition. The command
// starts on the rising edge and is cancelled on the falling edge.
func ExampleScheduler_When() {
	intake := domain.NewSubsystem("intake")

	sched := rota.New()
	if err := sched.RegisterSubsystem(intake, nil); err != nil {
		log.Fatal(err)
	}

	run := domain.NewFunc("run-intake",
		func() { fmt.Println("intake spinning") },
		nil,
		domain.WithRequirements(intake),
		domain.WithEnd(func(interrupted bool) { fmt.Println("intake stopped") }),
	)

	held := false
	sched.When(func() bool { return held }).WhileTrue(run)

	sched.Run() // button up, nothing happens
	held = true
	sched.Run()
	sched.Run()
	held = false
	sched.Run() // falling edge cancels before execution

	// Output:
	// intake spinning
	// intake spinning
	// intake stopped
}
