package compose_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rota-robotics/rota/internal/runtime"
	"github.com/rota-robotics/rota/internal/testutils"
	"github.com/rota-robotics/rota/pkg/compose"
	"github.com/rota-robotics/rota/pkg/domain"
)

func TestParallel_ChildrenRetireIndependently(t *testing.T) {
	fast := testutils.NewRecorder("fast", nil).FinishAfter(1)
	slow := testutils.NewRecorder("slow", nil).FinishAfter(3)

	group, err := compose.Parallel(fast, slow)
	assert.NoError(t, err)

	sched := runtime.New()
	assert.NoError(t, sched.Schedule(group))

	sched.Run()
	assert.Equal(t, 1, fast.Ends, "finished child retires immediately")
	assert.Equal(t, 0, fast.Interrupts)
	assert.True(t, sched.IsScheduled(group), "group waits for the slow child")

	sched.Run()
	assert.Equal(t, 1, fast.Execs, "retired child receives no further Execute")

	sched.Run()
	assert.False(t, sched.IsScheduled(group))
	assert.Equal(t, 3, slow.Execs)
	assert.Equal(t, 0, slow.Interrupts)
}

func TestParallel_CancelInterruptsRunningChildren(t *testing.T) {
	fast := testutils.NewRecorder("fast", nil).FinishAfter(1)
	slow := testutils.NewRecorder("slow", nil)

	group, err := compose.Parallel(fast, slow)
	assert.NoError(t, err)

	sched := runtime.New()
	assert.NoError(t, sched.Schedule(group))
	sched.Run()
	sched.Cancel(group)

	assert.Equal(t, 0, fast.Interrupts, "already-retired child is left alone")
	assert.Equal(t, 1, slow.Interrupts)
}

func TestParallel_RejectsOverlappingRequirements(t *testing.T) {
	drive := domain.NewSubsystem("drivetrain")
	a := testutils.NewRecorder("a", nil).Requires(drive)
	b := testutils.NewRecorder("b", nil).Requires(drive)

	_, err := compose.Parallel(a, b)
	assert.Error(t, err)

	var conflict *compose.RequirementConflictError
	assert.ErrorAs(t, err, &conflict)
	assert.Equal(t, "drivetrain", conflict.Subsystem)
	assert.Equal(t, "a", conflict.First)
	assert.Equal(t, "b", conflict.Second)
}

func TestRace_WinnerEndsNormallyLosersInterrupted(t *testing.T) {
	journal := &testutils.Journal{}
	winner := testutils.NewRecorder("winner", journal).FinishAfter(2)
	loser := testutils.NewRecorder("loser", journal)

	group, err := compose.Race(winner, loser)
	assert.NoError(t, err)

	sched := runtime.New()
	assert.NoError(t, sched.Schedule(group))
	sched.Run()
	assert.True(t, sched.IsScheduled(group))
	sched.Run()
	assert.False(t, sched.IsScheduled(group))

	assert.Equal(t, 1, winner.Ends)
	assert.Equal(t, 0, winner.Interrupts)
	assert.Equal(t, 1, loser.Interrupts, "loser is ended with interrupted=true")
	assert.Equal(t, 2, loser.Execs)
}

func TestRace_CancelInterruptsAllChildren(t *testing.T) {
	a := testutils.NewRecorder("a", nil)
	b := testutils.NewRecorder("b", nil)

	group, err := compose.Race(a, b)
	assert.NoError(t, err)

	sched := runtime.New()
	assert.NoError(t, sched.Schedule(group))
	sched.Run()
	sched.Cancel(group)

	assert.Equal(t, 1, a.Interrupts)
	assert.Equal(t, 1, b.Interrupts)
}

func TestDeadline_FinishesWithDeadlineChild(t *testing.T) {
	timer := testutils.NewRecorder("timer", nil).FinishAfter(2)
	work := testutils.NewRecorder("work", nil)

	group, err := compose.Deadline(timer, work)
	assert.NoError(t, err)

	sched := runtime.New()
	assert.NoError(t, sched.Schedule(group))
	sched.Run()
	sched.Run()

	assert.False(t, sched.IsScheduled(group))
	assert.Equal(t, 1, timer.Ends)
	assert.Equal(t, 0, timer.Interrupts)
	assert.Equal(t, 1, work.Interrupts, "unfinished work is cut off at the deadline")
}

func TestDeadline_EarlyFinishersRetireNormally(t *testing.T) {
	timer := testutils.NewRecorder("timer", nil).FinishAfter(3)
	quick := testutils.NewRecorder("quick", nil).FinishAfter(1)

	group, err := compose.Deadline(timer, quick)
	assert.NoError(t, err)

	sched := runtime.New()
	assert.NoError(t, sched.Schedule(group))
	sched.Run()
	assert.Equal(t, 1, quick.Ends)
	assert.Equal(t, 0, quick.Interrupts)

	sched.Run()
	sched.Run()
	assert.False(t, sched.IsScheduled(group))
	assert.Equal(t, 0, quick.Interrupts, "a child that finished early is not re-ended")
}

func TestGroup_NonInterruptibleChildPropagates(t *testing.T) {
	hard := testutils.NewRecorder("hard", nil).Uninterruptible()
	soft := testutils.NewRecorder("soft", nil)

	group, err := compose.Sequential(soft, hard)
	assert.NoError(t, err)
	assert.False(t, group.Interruptible())

	allSoft, err := compose.Sequential(
		testutils.NewRecorder("a", nil),
		testutils.NewRecorder("b", nil),
	)
	assert.NoError(t, err)
	assert.True(t, allSoft.Interruptible())
}
