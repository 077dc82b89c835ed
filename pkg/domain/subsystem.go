package domain

// Subsystem is a named handle for a physical resource (a drivetrain, an arm,
// a vision turret) over which command execution is mutually exclusive.
//
// Subsystems are created once at robot setup and registered with a
// scheduler. The subsystem itself carries no mutable state: the scheduler
// owns the subsystem-to-command ownership map, so independent scheduler
// instances (e.g. in tests) never interfere through shared handles.
type Subsystem struct {
	name string
}

// NewSubsystem creates a subsystem handle with the given name.
func NewSubsystem(name string) *Subsystem {
	return &Subsystem{name: name}
}

// Name returns the subsystem's name.
func (s *Subsystem) Name() string {
	return s.name
}

func (s *Subsystem) String() string {
	return s.name
}

// SubsystemNames is a convenience for logs and telemetry payloads.
func SubsystemNames(subs []*Subsystem) []string {
	if len(subs) == 0 {
		return nil
	}
	names := make([]string, 0, len(subs))
	for _, s := range subs {
		names = append(names, s.Name())
	}
	return names
}
