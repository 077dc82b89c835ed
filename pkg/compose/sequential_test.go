package compose_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rota-robotics/rota/internal/runtime"
	"github.com/rota-robotics/rota/internal/testutils"
	"github.com/rota-robotics/rota/pkg/compose"
	"github.com/rota-robotics/rota/pkg/domain"
)

func TestSequential_RunsChildrenInOrder(t *testing.T) {
	journal := &testutils.Journal{}
	x := testutils.NewRecorder("x", journal).FinishAfter(2)
	y := testutils.NewRecorder("y", journal).FinishAfter(1)

	group, err := compose.Sequential(x, y)
	assert.NoError(t, err)

	sched := runtime.New()
	assert.NoError(t, sched.Schedule(group))

	assert.False(t, group.IsFinished())
	sched.Run() // x exec 1
	sched.Run() // x exec 2, x ends
	assert.False(t, group.IsFinished(), "group must not finish until the last child has")
	sched.Run() // y initializes and executes (the cycle after x ended)
	assert.False(t, sched.IsScheduled(group))

	assert.Equal(t, []string{
		"init x",
		"exec x",
		"exec x", "end x interrupted=false",
		"init y", "exec y", "end y interrupted=false",
	}, journal.Entries())
}

func TestSequential_NextChildInitializesNextCycle(t *testing.T) {
	journal := &testutils.Journal{}
	x := testutils.NewRecorder("x", journal).FinishAfter(1)
	y := testutils.NewRecorder("y", journal)

	group, err := compose.Sequential(x, y)
	assert.NoError(t, err)

	group.Initialize()
	assert.Equal(t, 1, x.Inits, "first child initializes with the group")
	assert.Equal(t, 0, y.Inits)

	group.Execute() // x executes, finishes, ends; y waits for the next cycle
	assert.Equal(t, 1, x.Ends)
	assert.Equal(t, 0, y.Inits, "second child must not initialize in the cycle its predecessor ended")
	assert.Equal(t, 0, y.Execs)

	group.Execute()
	assert.Equal(t, 1, y.Inits)
	assert.Equal(t, 1, y.Execs)
}

func TestSequential_CancelEndsOnlyInFlightChild(t *testing.T) {
	x := testutils.NewRecorder("x", nil).FinishAfter(1)
	y := testutils.NewRecorder("y", nil)
	z := testutils.NewRecorder("z", nil)

	group, err := compose.Sequential(x, y, z)
	assert.NoError(t, err)

	sched := runtime.New()
	assert.NoError(t, sched.Schedule(group))
	sched.Run() // x runs to completion
	sched.Run() // y starts

	sched.Cancel(group)
	assert.Equal(t, 0, x.Interrupts, "already-finished child must not be re-ended")
	assert.Equal(t, 1, y.Interrupts, "in-flight child ends interrupted")
	assert.Equal(t, 0, z.Inits, "unstarted child receives no lifecycle calls")
	assert.Equal(t, 0, z.Ends)
}

func TestSequential_RequirementsAreUnionOfChildren(t *testing.T) {
	drive := domain.NewSubsystem("drivetrain")
	arm := domain.NewSubsystem("arm")

	x := testutils.NewRecorder("x", nil).Requires(drive)
	y := testutils.NewRecorder("y", nil).Requires(arm, drive)

	group, err := compose.Sequential(x, y)
	assert.NoError(t, err)
	assert.ElementsMatch(t, []*domain.Subsystem{drive, arm}, group.Requirements())
}

func TestSequential_GroupHoldsAllRequirementsWhileRunning(t *testing.T) {
	// Even while only the first child runs, the group owns the union, so a
	// command needing a later child's subsystem conflicts now.
	drive := domain.NewSubsystem("drivetrain")
	arm := domain.NewSubsystem("arm")

	x := testutils.NewRecorder("x", nil).Requires(drive)
	y := testutils.NewRecorder("y", nil).Requires(arm)
	group, err := compose.Sequential(x, y)
	assert.NoError(t, err)

	sched := runtime.New()
	assert.NoError(t, sched.Schedule(group))
	sched.Run()

	assert.Equal(t, group.Name(), sched.OwnerOf(arm).Name())
}

func TestSequential_Reschedulable(t *testing.T) {
	x := testutils.NewRecorder("x", nil).FinishAfter(1)
	y := testutils.NewRecorder("y", nil).FinishAfter(1)
	group, err := compose.Sequential(x, y)
	assert.NoError(t, err)

	sched := runtime.New()
	for round := 1; round <= 2; round++ {
		assert.NoError(t, sched.Schedule(group))
		sched.Run()
		sched.Run()
		assert.False(t, sched.IsScheduled(group), "round %d", round)
	}
	assert.Equal(t, 2, x.Inits)
	assert.Equal(t, 2, y.Inits)
	assert.Equal(t, 2, x.Ends)
	assert.Equal(t, 2, y.Ends)
}
