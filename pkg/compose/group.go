package compose

import (
	"fmt"
	"strings"

	"github.com/rota-robotics/rota/pkg/domain"
)

// RequirementConflictError reports two sibling children of a
// parallel-family group that both require the same subsystem. Parallel
// siblings run in the same cycle, so overlapping requirements can never be
// satisfied and the group is rejected at construction.
type RequirementConflictError struct {
	Subsystem string
	First     string
	Second    string
}

func (e *RequirementConflictError) Error() string {
	return fmt.Sprintf("compose: commands %q and %q both require subsystem %q", e.First, e.Second, e.Subsystem)
}

// composite is implemented by the group types in this package so that
// validation can walk nested composition trees. Commands from outside the
// package are treated as atomic.
type composite interface {
	domain.Command
	childCommands() []domain.Command
	scheduledNow() bool
}

// validateTree rejects reused child instances and cyclic composition across
// the whole tree rooted at the new group's children.
func validateTree(children []domain.Command) error {
	seen := make(map[domain.Command]bool)
	onPath := make(map[domain.Command]bool)

	var walk func(cmd domain.Command) error
	walk = func(cmd domain.Command) error {
		if onPath[cmd] {
			return fmt.Errorf("%w: %q contains itself", domain.ErrCyclicComposition, cmd.Name())
		}
		if seen[cmd] {
			return fmt.Errorf("%w: %q", domain.ErrReusedChild, cmd.Name())
		}
		seen[cmd] = true

		group, ok := cmd.(composite)
		if !ok {
			return nil
		}
		onPath[cmd] = true
		for _, child := range group.childCommands() {
			if err := walk(child); err != nil {
				return err
			}
		}
		delete(onPath, cmd)
		return nil
	}

	for _, child := range children {
		if err := walk(child); err != nil {
			return err
		}
	}
	return nil
}

// validateDisjoint rejects sibling children whose requirement sets overlap.
func validateDisjoint(children []domain.Command) error {
	owners := make(map[*domain.Subsystem]string)
	for _, child := range children {
		for _, sub := range child.Requirements() {
			if first, taken := owners[sub]; taken {
				return &RequirementConflictError{
					Subsystem: sub.Name(),
					First:     first,
					Second:    child.Name(),
				}
			}
			owners[sub] = child.Name()
		}
	}
	return nil
}

// unionRequirements merges child requirements, deduplicated, preserving
// first-seen order.
func unionRequirements(children []domain.Command) []*domain.Subsystem {
	var union []*domain.Subsystem
	seen := make(map[*domain.Subsystem]bool)
	for _, child := range children {
		for _, sub := range child.Requirements() {
			if !seen[sub] {
				seen[sub] = true
				union = append(union, sub)
			}
		}
	}
	return union
}

// allInterruptible reports whether every child tolerates preemption. One
// non-interruptible child makes the whole group non-interruptible.
func allInterruptible(children []domain.Command) bool {
	for _, child := range children {
		if !child.Interruptible() {
			return false
		}
	}
	return true
}

func joinNames(children []domain.Command) string {
	names := make([]string, 0, len(children))
	for _, child := range children {
		names = append(names, child.Name())
	}
	return strings.Join(names, ", ")
}
