package compose

import (
	"fmt"

	"github.com/rota-robotics/rota/pkg/domain"
)

// RaceGroup runs all children together and finishes as soon as any one of
// them does. The winner retires normally with End(false); every other
// still-running child is ended with interrupted=true when the group ends.
type RaceGroup struct {
	children      []domain.Command
	requirements  []*domain.Subsystem
	interruptible bool

	running  []bool
	finished bool
	active   bool
}

// Race composes children into a parallel race. Sibling requirement sets
// must be disjoint.
func Race(children ...domain.Command) (*RaceGroup, error) {
	if len(children) == 0 {
		return nil, fmt.Errorf("compose: race group needs at least one child")
	}
	if err := validateTree(children); err != nil {
		return nil, err
	}
	if err := validateDisjoint(children); err != nil {
		return nil, err
	}
	return &RaceGroup{
		children:      children,
		requirements:  unionRequirements(children),
		interruptible: allInterruptible(children),
	}, nil
}

// Initialize implements Command.
func (g *RaceGroup) Initialize() {
	g.running = make([]bool, len(g.children))
	g.finished = false
	g.active = true
	for i, child := range g.children {
		child.Initialize()
		g.running[i] = true
	}
}

// Execute implements Command.
func (g *RaceGroup) Execute() {
	for i, child := range g.children {
		if !g.running[i] {
			continue
		}
		child.Execute()
		if child.IsFinished() {
			child.End(false)
			g.running[i] = false
			g.finished = true
		}
	}
}

// IsFinished implements Command.
func (g *RaceGroup) IsFinished() bool {
	return g.finished
}

// End implements Command. Losers are interrupted regardless of whether the
// group itself finished normally or was cancelled.
func (g *RaceGroup) End(interrupted bool) {
	for i, child := range g.children {
		if g.running[i] {
			child.End(true)
			g.running[i] = false
		}
	}
	g.active = false
}

// Requirements implements Command.
func (g *RaceGroup) Requirements() []*domain.Subsystem {
	return g.requirements
}

// Interruptible implements Command.
func (g *RaceGroup) Interruptible() bool {
	return g.interruptible
}

// Name implements Command.
func (g *RaceGroup) Name() string {
	return fmt.Sprintf("race(%s)", joinNames(g.children))
}

func (g *RaceGroup) childCommands() []domain.Command { return g.children }
func (g *RaceGroup) scheduledNow() bool              { return g.active }
