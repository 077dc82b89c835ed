package compose

import (
	"fmt"

	"github.com/rota-robotics/rota/pkg/domain"
)

// Then chains cmd and next into a sequential group. If cmd is already a
// SequentialGroup, next is appended to a flattened copy instead of nesting.
// Chaining onto a group that is currently scheduled is rejected.
func Then(cmd domain.Command, next domain.Command) (*SequentialGroup, error) {
	if group, ok := cmd.(*SequentialGroup); ok {
		if group.scheduledNow() {
			return nil, fmt.Errorf("cannot extend %q: %w", group.Name(), domain.ErrGroupRunning)
		}
		children := append(append([]domain.Command{}, group.children...), next)
		return Sequential(children...)
	}
	return Sequential(cmd, next)
}

// Alongside chains cmd and next into a parallel group, flattening when cmd
// is already a ParallelGroup. Chaining onto a running group is rejected.
func Alongside(cmd domain.Command, next domain.Command) (*ParallelGroup, error) {
	if group, ok := cmd.(*ParallelGroup); ok {
		if group.scheduledNow() {
			return nil, fmt.Errorf("cannot extend %q: %w", group.Name(), domain.ErrGroupRunning)
		}
		children := append(append([]domain.Command{}, group.children...), next)
		return Parallel(children...)
	}
	return Parallel(cmd, next)
}
