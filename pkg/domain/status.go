package domain

// CommandStatus is a read-only view of one active command.
type CommandStatus struct {
	Name       string         `json:"name"`
	State      LifecycleState `json:"state"`
	Subsystems []string       `json:"subsystems,omitempty"`
}

// SubsystemStatus is a read-only view of one registered subsystem.
type SubsystemStatus struct {
	Name    string `json:"name"`
	Owner   string `json:"owner,omitempty"`
	Default string `json:"default,omitempty"`
}

// Snapshot captures scheduler state at the end of a cycle for telemetry
// consumers. It holds plain data only, safe to hand across goroutines.
type Snapshot struct {
	Cycle      uint64            `json:"cycle"`
	Commands   []CommandStatus   `json:"commands"`
	Subsystems []SubsystemStatus `json:"subsystems"`
}
