package compose_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rota-robotics/rota/internal/runtime"
	"github.com/rota-robotics/rota/internal/testutils"
	"github.com/rota-robotics/rota/pkg/compose"
	"github.com/rota-robotics/rota/pkg/domain"
)

func TestValidate_RejectsReusedChild(t *testing.T) {
	a := testutils.NewRecorder("a", nil)

	_, err := compose.Sequential(a, a)
	assert.ErrorIs(t, err, domain.ErrReusedChild)
}

func TestValidate_RejectsChildSharedAcrossNestedGroups(t *testing.T) {
	shared := testutils.NewRecorder("shared", nil)
	inner, err := compose.Sequential(shared, testutils.NewRecorder("b", nil))
	assert.NoError(t, err)

	_, err = compose.Parallel(inner, shared)
	assert.ErrorIs(t, err, domain.ErrReusedChild)
}

func TestValidate_AllowsDistinctNestedGroups(t *testing.T) {
	inner, err := compose.Sequential(
		testutils.NewRecorder("a", nil),
		testutils.NewRecorder("b", nil),
	)
	assert.NoError(t, err)

	outer, err := compose.Sequential(inner, testutils.NewRecorder("c", nil))
	assert.NoError(t, err)
	assert.Equal(t, "sequential(sequential(a, b), c)", outer.Name())
}

func TestNestedGroups_RunThroughScheduler(t *testing.T) {
	journal := &testutils.Journal{}
	a := testutils.NewRecorder("a", journal).FinishAfter(1)
	b := testutils.NewRecorder("b", journal).FinishAfter(1)
	c := testutils.NewRecorder("c", journal).FinishAfter(1)

	inner, err := compose.Parallel(a, b)
	assert.NoError(t, err)
	outer, err := compose.Sequential(inner, c)
	assert.NoError(t, err)

	sched := runtime.New()
	assert.NoError(t, sched.Schedule(outer))
	sched.Run()
	sched.Run()
	assert.False(t, sched.IsScheduled(outer))

	assert.Equal(t, 1, a.Ends)
	assert.Equal(t, 1, b.Ends)
	assert.Equal(t, 1, c.Ends)
	assert.Equal(t, 0, a.Interrupts)
}

func TestThen_FlattensSequentialGroups(t *testing.T) {
	a := testutils.NewRecorder("a", nil)
	b := testutils.NewRecorder("b", nil)
	c := testutils.NewRecorder("c", nil)

	ab, err := compose.Then(a, b)
	assert.NoError(t, err)
	abc, err := compose.Then(ab, c)
	assert.NoError(t, err)

	assert.Equal(t, "sequential(a, b, c)", abc.Name())
}

func TestThen_RejectsRunningGroup(t *testing.T) {
	group, err := compose.Sequential(
		testutils.NewRecorder("a", nil),
		testutils.NewRecorder("b", nil),
	)
	assert.NoError(t, err)

	sched := runtime.New()
	assert.NoError(t, sched.Schedule(group))

	_, err = compose.Then(group, testutils.NewRecorder("c", nil))
	assert.ErrorIs(t, err, domain.ErrGroupRunning)

	sched.CancelAll()
	_, err = compose.Then(group, testutils.NewRecorder("c", nil))
	assert.NoError(t, err, "extension is allowed again once the group stops")
}

func TestAlongside_FlattensParallelGroups(t *testing.T) {
	drive := domain.NewSubsystem("drivetrain")
	arm := domain.NewSubsystem("arm")
	intake := domain.NewSubsystem("intake")

	a := testutils.NewRecorder("a", nil).Requires(drive)
	b := testutils.NewRecorder("b", nil).Requires(arm)
	c := testutils.NewRecorder("c", nil).Requires(intake)

	ab, err := compose.Alongside(a, b)
	assert.NoError(t, err)
	abc, err := compose.Alongside(ab, c)
	assert.NoError(t, err)

	assert.Equal(t, "parallel(a, b, c)", abc.Name())
	assert.Len(t, abc.Requirements(), 3)
}

func TestAlongside_FlattenStillChecksDisjointness(t *testing.T) {
	drive := domain.NewSubsystem("drivetrain")

	a := testutils.NewRecorder("a", nil).Requires(drive)
	b := testutils.NewRecorder("b", nil)
	ab, err := compose.Alongside(a, b)
	assert.NoError(t, err)

	c := testutils.NewRecorder("c", nil).Requires(drive)
	_, err = compose.Alongside(ab, c)

	var conflict *compose.RequirementConflictError
	assert.ErrorAs(t, err, &conflict)
	assert.Equal(t, "drivetrain", conflict.Subsystem)
}
