package compose

import (
	"fmt"

	"github.com/rota-robotics/rota/pkg/domain"
)

// ParallelGroup runs all children together within each cycle.
//
// Children retire independently with End(false) as they finish; the group
// finishes once every child has. Cancelling the group ends every
// still-running child with interrupted=true.
type ParallelGroup struct {
	children      []domain.Command
	requirements  []*domain.Subsystem
	interruptible bool

	running []bool
	active  bool
}

// Parallel composes children into a parallel group. Sibling requirement
// sets must be disjoint.
func Parallel(children ...domain.Command) (*ParallelGroup, error) {
	if len(children) == 0 {
		return nil, fmt.Errorf("compose: parallel group needs at least one child")
	}
	if err := validateTree(children); err != nil {
		return nil, err
	}
	if err := validateDisjoint(children); err != nil {
		return nil, err
	}
	return &ParallelGroup{
		children:      children,
		requirements:  unionRequirements(children),
		interruptible: allInterruptible(children),
	}, nil
}

// Initialize implements Command. All children initialize together.
func (g *ParallelGroup) Initialize() {
	g.running = make([]bool, len(g.children))
	g.active = true
	for i, child := range g.children {
		child.Initialize()
		g.running[i] = true
	}
}

// Execute implements Command.
func (g *ParallelGroup) Execute() {
	for i, child := range g.children {
		if !g.running[i] {
			continue
		}
		child.Execute()
		if child.IsFinished() {
			child.End(false)
			g.running[i] = false
		}
	}
}

// IsFinished implements Command.
func (g *ParallelGroup) IsFinished() bool {
	for _, r := range g.running {
		if r {
			return false
		}
	}
	return true
}

// End implements Command. On a normal finish every child has already
// retired; on interruption the still-running children are ended with
// interrupted=true.
func (g *ParallelGroup) End(interrupted bool) {
	for i, child := range g.children {
		if g.running[i] {
			child.End(true)
			g.running[i] = false
		}
	}
	g.active = false
}

// Requirements implements Command.
func (g *ParallelGroup) Requirements() []*domain.Subsystem {
	return g.requirements
}

// Interruptible implements Command.
func (g *ParallelGroup) Interruptible() bool {
	return g.interruptible
}

// Name implements Command.
func (g *ParallelGroup) Name() string {
	return fmt.Sprintf("parallel(%s)", joinNames(g.children))
}

func (g *ParallelGroup) childCommands() []domain.Command { return g.children }
func (g *ParallelGroup) scheduledNow() bool              { return g.active }
