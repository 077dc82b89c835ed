package runtime

import "github.com/rota-robotics/rota/pkg/domain"

// IsScheduled reports whether cmd is currently active.
func (s *Scheduler) IsScheduled(cmd domain.Command) bool {
	_, active := s.index[cmd]
	return active
}

// ActiveCommands returns the active commands in stable FIFO order.
func (s *Scheduler) ActiveCommands() []domain.Command {
	cmds := make([]domain.Command, 0, len(s.active))
	for _, e := range s.active {
		cmds = append(cmds, e.command)
	}
	return cmds
}

// OwnerOf returns the command currently owning the subsystem, or nil.
func (s *Scheduler) OwnerOf(sub *domain.Subsystem) domain.Command {
	return s.owners[sub]
}

// Cycle returns the number of completed or in-progress cycles.
func (s *Scheduler) Cycle() uint64 {
	return s.cycle
}

// Snapshot returns a plain-data view of scheduler state for telemetry.
// Call it from the driver between cycles; the result is safe to share.
func (s *Scheduler) Snapshot() *domain.Snapshot {
	snap := &domain.Snapshot{
		Cycle:      s.cycle,
		Commands:   make([]domain.CommandStatus, 0, len(s.active)),
		Subsystems: make([]domain.SubsystemStatus, 0, len(s.subsystems)),
	}
	for _, e := range s.active {
		snap.Commands = append(snap.Commands, domain.CommandStatus{
			Name:       e.command.Name(),
			State:      e.state,
			Subsystems: domain.SubsystemNames(e.command.Requirements()),
		})
	}
	for _, sub := range s.subsystems {
		status := domain.SubsystemStatus{Name: sub.Name()}
		if owner := s.owners[sub]; owner != nil {
			status.Owner = owner.Name()
		}
		if def := s.defaults[sub]; def != nil {
			status.Default = def.Name()
		}
		snap.Subsystems = append(snap.Subsystems, status)
	}
	return snap
}
