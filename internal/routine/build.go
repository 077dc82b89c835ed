package routine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mitchellh/mapstructure"
	backend "github.com/redis/go-redis/v9"

	"github.com/rota-robotics/rota"
	redisflag "github.com/rota-robotics/rota/pkg/adapters/redis"
	"github.com/rota-robotics/rota/pkg/compose"
	"github.com/rota-robotics/rota/pkg/domain"
	"github.com/rota-robotics/rota/pkg/trigger"
)

type waitParams struct {
	Cycles int `mapstructure:"cycles"`
}

type printParams struct {
	Message string `mapstructure:"message"`
}

type afterParams struct {
	Cycle int `mapstructure:"cycle"`
}

type redisParams struct {
	Addr string `mapstructure:"addr"`
	Key  string `mapstructure:"key"`
}

// Build wires the routine into the scheduler: subsystems, commands,
// groups, triggers and the initial schedule. The returned cleanup stops
// any background condition sources and must be called when the run ends.
func Build(f *File, sched *rota.Scheduler, logger *slog.Logger) (cleanup func(), err error) {
	ctx, cancel := context.WithCancel(context.Background())
	var flags []*redisflag.Flag
	cleanup = func() {
		cancel()
		for _, fl := range flags {
			fl.Close()
		}
	}
	defer func() {
		if err != nil {
			cleanup()
		}
	}()

	subs := make(map[string]*domain.Subsystem, len(f.Subsystems))
	for _, def := range f.Subsystems {
		subs[def.Name] = domain.NewSubsystem(def.Name)
	}

	cmds := make(map[string]domain.Command, len(f.Commands)+len(f.Groups))
	for _, def := range f.Commands {
		cmd, buildErr := buildCommand(def, subs, logger)
		if buildErr != nil {
			return cleanup, buildErr
		}
		cmds[def.Name] = cmd
	}
	for _, def := range f.Groups {
		group, buildErr := buildGroup(def, cmds)
		if buildErr != nil {
			return cleanup, buildErr
		}
		cmds[def.Name] = group
	}

	for _, def := range f.Subsystems {
		var defaultCmd domain.Command
		if def.Default != "" {
			defaultCmd = cmds[def.Default]
		}
		if regErr := sched.RegisterSubsystem(subs[def.Name], defaultCmd); regErr != nil {
			return cleanup, regErr
		}
	}

	for i, def := range f.Triggers {
		source, fl, srcErr := buildSource(ctx, def.Source, sched, logger)
		if srcErr != nil {
			return cleanup, fmt.Errorf("trigger %d: %w", i, srcErr)
		}
		if fl != nil {
			flags = append(flags, fl)
		}
		t := trigger.New(source)
		if def.Debounce > 1 {
			t = t.Debounce(def.Debounce)
		}
		if bindErr := bind(t, def.Binding, cmds[def.Command]); bindErr != nil {
			return cleanup, fmt.Errorf("trigger %d: %w", i, bindErr)
		}
		sched.AddTrigger(t)
	}

	for _, name := range f.Schedule {
		if schedErr := sched.Schedule(cmds[name]); schedErr != nil {
			return cleanup, schedErr
		}
	}
	return cleanup, nil
}

func buildCommand(def CommandDef, subs map[string]*domain.Subsystem, logger *slog.Logger) (domain.Command, error) {
	opts := []domain.FuncOption{}
	if len(def.Requires) > 0 {
		reqs := make([]*domain.Subsystem, 0, len(def.Requires))
		for _, name := range def.Requires {
			reqs = append(reqs, subs[name])
		}
		opts = append(opts, domain.WithRequirements(reqs...))
	}
	if def.NonInterruptible {
		opts = append(opts, domain.NonInterruptible())
	}

	switch def.Kind {
	case "idle":
		return domain.NewFunc(def.Name, func() {}, nil, opts...), nil
	case "wait":
		var p waitParams
		if err := mapstructure.Decode(def.Params, &p); err != nil {
			return nil, fmt.Errorf("command %q: %w", def.Name, err)
		}
		if p.Cycles <= 0 {
			return nil, fmt.Errorf("command %q: wait needs a positive cycles param", def.Name)
		}
		return domain.WaitCycles(def.Name, p.Cycles, opts...), nil
	case "print":
		var p printParams
		if err := mapstructure.Decode(def.Params, &p); err != nil {
			return nil, fmt.Errorf("command %q: %w", def.Name, err)
		}
		return domain.RunOnce(def.Name, func() {
			logger.Info(p.Message, "command", def.Name)
		}, opts...), nil
	default:
		return nil, fmt.Errorf("command %q: unknown kind %q", def.Name, def.Kind)
	}
}

func buildGroup(def GroupDef, cmds map[string]domain.Command) (domain.Command, error) {
	children := make([]domain.Command, 0, len(def.Children))
	for _, name := range def.Children {
		children = append(children, cmds[name])
	}

	switch def.Kind {
	case "sequential":
		return compose.Sequential(children...)
	case "parallel":
		return compose.Parallel(children...)
	case "race":
		return compose.Race(children...)
	case "deadline":
		deadline, rest := splitDeadline(def.Deadline, def.Children, children)
		if deadline == nil {
			return nil, fmt.Errorf("group %q: deadline %q is not among its children", def.Name, def.Deadline)
		}
		return compose.Deadline(deadline, rest...)
	default:
		return nil, fmt.Errorf("group %q: unknown kind %q", def.Name, def.Kind)
	}
}

func splitDeadline(name string, names []string, children []domain.Command) (domain.Command, []domain.Command) {
	var deadline domain.Command
	var rest []domain.Command
	for i, childName := range names {
		if childName == name && deadline == nil {
			deadline = children[i]
			continue
		}
		rest = append(rest, children[i])
	}
	return deadline, rest
}

func buildSource(ctx context.Context, def SourceDef, sched *rota.Scheduler, logger *slog.Logger) (func() bool, *redisflag.Flag, error) {
	switch def.Kind {
	case "always":
		return func() bool { return true }, nil, nil
	case "after":
		var p afterParams
		if err := mapstructure.Decode(def.Params, &p); err != nil {
			return nil, nil, err
		}
		threshold := uint64(p.Cycle)
		return func() bool { return sched.Cycle() >= threshold }, nil, nil
	case "redis":
		var p redisParams
		if err := mapstructure.Decode(def.Params, &p); err != nil {
			return nil, nil, err
		}
		if p.Addr == "" || p.Key == "" {
			return nil, nil, fmt.Errorf("redis source needs addr and key")
		}
		client := backend.NewClient(&backend.Options{Addr: p.Addr})
		fl := redisflag.NewFlag(ctx, client, p.Key, redisflag.WithLogger(logger))
		return fl.Source(), fl, nil
	default:
		return nil, nil, fmt.Errorf("unknown source kind %q", def.Kind)
	}
}

func bind(t *trigger.Trigger, binding string, cmd domain.Command) error {
	switch binding {
	case "onTrue":
		t.OnTrue(cmd)
	case "onFalse":
		t.OnFalse(cmd)
	case "whileTrue":
		t.WhileTrue(cmd)
	case "whileFalse":
		t.WhileFalse(cmd)
	case "toggleOnTrue":
		t.ToggleOnTrue(cmd)
	default:
		return fmt.Errorf("unknown binding %q", binding)
	}
	return nil
}
