package compose

import (
	"fmt"

	"github.com/rota-robotics/rota/pkg/domain"
)

// SequentialGroup runs its children one after another.
//
// When the current child reports finished, it is ended with End(false) and
// the group advances. The next child initializes on the following cycle, so
// every active child gets exactly one Execute per cycle. Cancelling the
// group ends only the in-flight child with interrupted=true; children that
// never started receive no lifecycle calls.
type SequentialGroup struct {
	children      []domain.Command
	requirements  []*domain.Subsystem
	interruptible bool

	index     int
	childInit bool
	active    bool
}

// Sequential composes children into a sequential group. The group's
// requirements are the union of its children's; overlap between children is
// fine since only one runs at a time.
func Sequential(children ...domain.Command) (*SequentialGroup, error) {
	if len(children) == 0 {
		return nil, fmt.Errorf("compose: sequential group needs at least one child")
	}
	if err := validateTree(children); err != nil {
		return nil, err
	}
	return &SequentialGroup{
		children:      children,
		requirements:  unionRequirements(children),
		interruptible: allInterruptible(children),
	}, nil
}

// Initialize implements Command. The first child initializes immediately.
func (g *SequentialGroup) Initialize() {
	g.index = 0
	g.childInit = false
	g.active = true
	if len(g.children) > 0 {
		g.children[0].Initialize()
		g.childInit = true
	}
}

// Execute implements Command.
func (g *SequentialGroup) Execute() {
	if g.index >= len(g.children) {
		return
	}
	current := g.children[g.index]
	if !g.childInit {
		current.Initialize()
		g.childInit = true
	}
	current.Execute()
	if current.IsFinished() {
		current.End(false)
		g.index++
		g.childInit = false
	}
}

// IsFinished implements Command.
func (g *SequentialGroup) IsFinished() bool {
	return g.index >= len(g.children)
}

// End implements Command.
func (g *SequentialGroup) End(interrupted bool) {
	if interrupted && g.index < len(g.children) && g.childInit {
		g.children[g.index].End(true)
	}
	g.active = false
}

// Requirements implements Command.
func (g *SequentialGroup) Requirements() []*domain.Subsystem {
	return g.requirements
}

// Interruptible implements Command.
func (g *SequentialGroup) Interruptible() bool {
	return g.interruptible
}

// Name implements Command.
func (g *SequentialGroup) Name() string {
	return fmt.Sprintf("sequential(%s)", joinNames(g.children))
}

func (g *SequentialGroup) childCommands() []domain.Command { return g.children }
func (g *SequentialGroup) scheduledNow() bool              { return g.active }
