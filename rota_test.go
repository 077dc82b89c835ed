package rota_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rota-robotics/rota"
	"github.com/rota-robotics/rota/internal/testutils"
	"github.com/rota-robotics/rota/pkg/compose"
	"github.com/rota-robotics/rota/pkg/domain"
	"github.com/rota-robotics/rota/pkg/trigger"
)

// TestScheduler_EndToEnd drives a small robot program through the public
// API: two subsystems, a default command, a button-triggered sequence, and
// a conflicting preemption.
func TestScheduler_EndToEnd(t *testing.T) {
	drive := domain.NewSubsystem("drivetrain")
	arm := domain.NewSubsystem("arm")

	journal := &testutils.Journal{}
	idle := testutils.NewRecorder("drive-idle", journal).Requires(drive)

	sched := rota.New(rota.WithName("robot"))
	require.NoError(t, sched.RegisterSubsystem(drive, idle))
	require.NoError(t, sched.RegisterSubsystem(arm, nil))

	// Nothing scheduled: the default command takes the drivetrain.
	sched.Run()
	assert.Equal(t, 1, idle.Execs)
	assert.Equal(t, "drive-idle", sched.OwnerOf(drive).Name())
	assert.Nil(t, sched.OwnerOf(arm))

	// A button press schedules a two-step routine over both subsystems.
	raise := testutils.NewRecorder("raise-arm", journal).Requires(arm).FinishAfter(1)
	score := testutils.NewRecorder("score", journal).Requires(drive, arm).FinishAfter(1)
	routine, err := compose.Sequential(raise, score)
	require.NoError(t, err)

	pressed := false
	sched.When(func() bool { return pressed }).OnTrue(routine)

	pressed = true
	sched.Run() // trigger fires, routine preempts the idle default
	assert.Equal(t, 1, idle.Interrupts)
	assert.Equal(t, 1, raise.Execs)

	sched.Run() // score runs and the routine completes
	assert.False(t, sched.IsScheduled(routine))
	assert.Equal(t, 1, score.Ends)

	// With the routine gone the default resumes.
	sched.Run()
	assert.Equal(t, 2, idle.Inits)
	assert.Equal(t, uint64(4), sched.Cycle())
}

func TestScheduler_ScheduleRejectionSurfacesToCaller(t *testing.T) {
	drive := domain.NewSubsystem("drivetrain")

	sched := rota.New()
	require.NoError(t, sched.RegisterSubsystem(drive, nil))

	holder := testutils.NewRecorder("holder", nil).Requires(drive).Uninterruptible()
	require.NoError(t, sched.Schedule(holder))

	challenger := testutils.NewRecorder("challenger", nil).Requires(drive)
	err := sched.Schedule(challenger)
	assert.ErrorIs(t, err, domain.ErrScheduleRejected)
	assert.True(t, sched.IsScheduled(holder))
	assert.False(t, sched.IsScheduled(challenger))
}

func TestScheduler_LifecycleHooksObserveActivity(t *testing.T) {
	var scheduled, finished []string
	sched := rota.New(rota.WithLifecycleHooks(domain.LifecycleHooks{
		OnCommandScheduled: func(ev *domain.CommandEvent) {
			scheduled = append(scheduled, ev.Command)
		},
		OnCommandFinished: func(ev *domain.CommandEvent) {
			finished = append(finished, ev.Command)
		},
	}))

	cmd := testutils.NewRecorder("blink", nil).FinishAfter(2)
	require.NoError(t, sched.Schedule(cmd))
	sched.Run()
	sched.Run()

	assert.Equal(t, []string{"blink"}, scheduled)
	assert.Equal(t, []string{"blink"}, finished)
}

func TestScheduler_AddTriggerWithCombinators(t *testing.T) {
	var a, b bool
	armed := trigger.New(func() bool { return a })
	override := trigger.New(func() bool { return b })

	fire := testutils.NewRecorder("fire", nil).FinishAfter(1)
	combined := armed.And(override)
	combined.OnTrue(fire)

	sched := rota.New()
	sched.AddTrigger(combined)

	a = true
	sched.Run()
	assert.Equal(t, 0, fire.Execs, "half the condition must not fire")

	b = true
	sched.Run()
	assert.Equal(t, 1, fire.Execs)
}

func TestScheduler_SnapshotReflectsState(t *testing.T) {
	drive := domain.NewSubsystem("drivetrain")
	sched := rota.New()
	require.NoError(t, sched.RegisterSubsystem(drive, nil))

	cmd := testutils.NewRecorder("cruise", nil).Requires(drive)
	require.NoError(t, sched.Schedule(cmd))
	sched.Run()

	snap := sched.Snapshot()
	require.Len(t, snap.Commands, 1)
	assert.Equal(t, "cruise", snap.Commands[0].Name)
	require.Len(t, snap.Subsystems, 1)
	assert.Equal(t, "cruise", snap.Subsystems[0].Owner)
	assert.Equal(t, uint64(1), snap.Cycle)
}

func TestScheduler_InstancesAreIndependent(t *testing.T) {
	a := rota.New(rota.WithName("a"))
	b := rota.New(rota.WithName("b"))

	cmd := testutils.NewRecorder("only-in-a", nil)
	require.NoError(t, a.Schedule(cmd))

	assert.True(t, a.IsScheduled(cmd))
	assert.False(t, b.IsScheduled(cmd))
}
