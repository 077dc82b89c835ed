package compose

import (
	"fmt"

	"github.com/rota-robotics/rota/pkg/domain"
)

// DeadlineGroup runs a distinguished deadline child alongside others and
// finishes when the deadline child does, regardless of the others' state.
// The deadline child retires normally; the others are interrupted when the
// group ends. Others that finish early retire normally on their own.
type DeadlineGroup struct {
	children      []domain.Command // children[0] is the deadline
	requirements  []*domain.Subsystem
	interruptible bool

	running      []bool
	deadlineDone bool
	active       bool
}

// Deadline composes a deadline child with others. Requirement sets across
// all children must be disjoint.
func Deadline(deadline domain.Command, others ...domain.Command) (*DeadlineGroup, error) {
	if deadline == nil {
		return nil, fmt.Errorf("compose: deadline group needs a deadline child")
	}
	children := append([]domain.Command{deadline}, others...)
	if err := validateTree(children); err != nil {
		return nil, err
	}
	if err := validateDisjoint(children); err != nil {
		return nil, err
	}
	return &DeadlineGroup{
		children:      children,
		requirements:  unionRequirements(children),
		interruptible: allInterruptible(children),
	}, nil
}

// Initialize implements Command.
func (g *DeadlineGroup) Initialize() {
	g.running = make([]bool, len(g.children))
	g.deadlineDone = false
	g.active = true
	for i, child := range g.children {
		child.Initialize()
		g.running[i] = true
	}
}

// Execute implements Command.
func (g *DeadlineGroup) Execute() {
	for i, child := range g.children {
		if !g.running[i] {
			continue
		}
		child.Execute()
		if child.IsFinished() {
			child.End(false)
			g.running[i] = false
			if i == 0 {
				g.deadlineDone = true
			}
		}
	}
}

// IsFinished implements Command.
func (g *DeadlineGroup) IsFinished() bool {
	return g.deadlineDone
}

// End implements Command.
func (g *DeadlineGroup) End(interrupted bool) {
	for i, child := range g.children {
		if g.running[i] {
			child.End(true)
			g.running[i] = false
		}
	}
	g.active = false
}

// Requirements implements Command.
func (g *DeadlineGroup) Requirements() []*domain.Subsystem {
	return g.requirements
}

// Interruptible implements Command.
func (g *DeadlineGroup) Interruptible() bool {
	return g.interruptible
}

// Name implements Command.
func (g *DeadlineGroup) Name() string {
	return fmt.Sprintf("deadline(%s)", joinNames(g.children))
}

func (g *DeadlineGroup) childCommands() []domain.Command { return g.children }
func (g *DeadlineGroup) scheduledNow() bool              { return g.active }
