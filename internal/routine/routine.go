// Package routine loads declarative routine files: a YAML description of
// subsystems, commands, groups and trigger bindings that the rota CLI can
// drive without writing Go. Routines are how example robots and bench
// tests are defined.
package routine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the top-level routine document.
type File struct {
	Name     string `yaml:"name"`
	PeriodMS int    `yaml:"period_ms"`
	// Cycles bounds the run; zero means run until interrupted.
	Cycles int `yaml:"cycles"`

	Subsystems []SubsystemDef `yaml:"subsystems"`
	Commands   []CommandDef   `yaml:"commands"`
	Groups     []GroupDef     `yaml:"groups"`
	Triggers   []TriggerDef   `yaml:"triggers"`

	// Schedule lists command or group names activated on the first cycle.
	Schedule []string `yaml:"schedule"`
}

// SubsystemDef declares a subsystem and its optional default command.
type SubsystemDef struct {
	Name    string `yaml:"name"`
	Default string `yaml:"default,omitempty"`
}

// CommandDef declares an atomic command. Kind-specific settings go in
// Params and are decoded per kind (wait: cycles, print: message).
type CommandDef struct {
	Name             string         `yaml:"name"`
	Kind             string         `yaml:"kind"`
	Requires         []string       `yaml:"requires,omitempty"`
	NonInterruptible bool           `yaml:"non_interruptible,omitempty"`
	Params           map[string]any `yaml:"params,omitempty"`
}

// GroupDef composes previously declared commands or groups.
type GroupDef struct {
	Name     string   `yaml:"name"`
	Kind     string   `yaml:"kind"` // sequential | parallel | race | deadline
	Children []string `yaml:"children"`
	// Deadline names the deadline child for deadline groups.
	Deadline string `yaml:"deadline,omitempty"`
}

// TriggerDef binds a boolean source to a command via an edge binding.
type TriggerDef struct {
	Source   SourceDef `yaml:"source"`
	Binding  string    `yaml:"binding"` // onTrue | onFalse | whileTrue | whileFalse | toggleOnTrue
	Command  string    `yaml:"command"`
	Debounce int       `yaml:"debounce,omitempty"`
}

// SourceDef declares where a trigger's boolean comes from. Kind-specific
// settings go in Params (after: cycle, redis: addr/key).
type SourceDef struct {
	Kind   string         `yaml:"kind"` // after | always | redis
	Params map[string]any `yaml:"params,omitempty"`
}

// Load reads and validates a routine file.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read routine: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse routine: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("routine %q: %w", path, err)
	}
	return &f, nil
}

func (f *File) validate() error {
	if f.PeriodMS < 0 {
		return fmt.Errorf("period_ms must not be negative")
	}

	names := make(map[string]bool)
	declare := func(name, what string) error {
		if name == "" {
			return fmt.Errorf("%s with empty name", what)
		}
		if names[name] {
			return fmt.Errorf("duplicate name %q", name)
		}
		names[name] = true
		return nil
	}

	subs := make(map[string]bool)
	for _, s := range f.Subsystems {
		if err := declare(s.Name, "subsystem"); err != nil {
			return err
		}
		subs[s.Name] = true
	}
	for _, c := range f.Commands {
		if err := declare(c.Name, "command"); err != nil {
			return err
		}
		for _, r := range c.Requires {
			if !subs[r] {
				return fmt.Errorf("command %q requires unknown subsystem %q", c.Name, r)
			}
		}
	}
	for _, g := range f.Groups {
		if err := declare(g.Name, "group"); err != nil {
			return err
		}
		if len(g.Children) == 0 {
			return fmt.Errorf("group %q has no children", g.Name)
		}
		for _, child := range g.Children {
			if !names[child] || child == g.Name {
				return fmt.Errorf("group %q references unknown child %q", g.Name, child)
			}
		}
		if g.Kind == "deadline" && g.Deadline == "" {
			return fmt.Errorf("deadline group %q needs a deadline child", g.Name)
		}
	}
	for i, t := range f.Triggers {
		if !names[t.Command] {
			return fmt.Errorf("trigger %d targets unknown command %q", i, t.Command)
		}
	}
	for _, s := range f.Schedule {
		if !names[s] {
			return fmt.Errorf("schedule references unknown command %q", s)
		}
	}

	// Subsystem defaults must name declared commands; requirement checks
	// happen at registration time.
	for _, s := range f.Subsystems {
		if s.Default != "" && !names[s.Default] {
			return fmt.Errorf("subsystem %q defaults to unknown command %q", s.Name, s.Default)
		}
	}
	return nil
}
