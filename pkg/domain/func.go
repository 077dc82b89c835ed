package domain

// FuncCommand is an atomic Command assembled from callbacks. It covers the
// common case where a behavior is a handful of closures over subsystem
// hardware and does not warrant a dedicated type.
type FuncCommand struct {
	name          string
	requirements  []*Subsystem
	interruptible bool

	onInit     func()
	onExecute  func()
	isFinished func() bool
	onEnd      func(interrupted bool)
}

// FuncOption configures a FuncCommand.
type FuncOption func(*FuncCommand)

// WithRequirements declares the subsystems the command needs exclusive
// access to.
func WithRequirements(subs ...*Subsystem) FuncOption {
	return func(c *FuncCommand) {
		c.requirements = append(c.requirements, subs...)
	}
}

// NonInterruptible marks the command as not preemptible: conflicting
// schedule requests are rejected while it runs.
func NonInterruptible() FuncOption {
	return func(c *FuncCommand) {
		c.interruptible = false
	}
}

// WithInit sets a callback invoked on Initialize.
func WithInit(f func()) FuncOption {
	return func(c *FuncCommand) {
		c.onInit = f
	}
}

// WithEnd sets a callback invoked on End.
func WithEnd(f func(interrupted bool)) FuncOption {
	return func(c *FuncCommand) {
		c.onEnd = f
	}
}

// NewFunc creates a command from an execute callback and a finish predicate.
// A nil isFinished means the command never finishes on its own (it runs
// until cancelled or preempted), which is the usual shape for default
// commands.
func NewFunc(name string, execute func(), isFinished func() bool, opts ...FuncOption) *FuncCommand {
	c := &FuncCommand{
		name:          name,
		onExecute:     execute,
		isFinished:    isFinished,
		interruptible: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RunOnce creates a command that executes fn a single time and finishes.
func RunOnce(name string, fn func(), opts ...FuncOption) *FuncCommand {
	done := false
	c := NewFunc(name,
		func() {
			fn()
			done = true
		},
		func() bool { return done },
		opts...)
	prevInit := c.onInit
	c.onInit = func() {
		done = false
		if prevInit != nil {
			prevInit()
		}
	}
	return c
}

// WaitCycles creates a command that idles for n cycles and then finishes.
// The scheduler has no built-in timeouts; commands that want one count
// cycles themselves, and this is that counter in reusable form.
func WaitCycles(name string, n int, opts ...FuncOption) *FuncCommand {
	elapsed := 0
	c := NewFunc(name,
		func() { elapsed++ },
		func() bool { return elapsed >= n },
		opts...)
	prevInit := c.onInit
	c.onInit = func() {
		elapsed = 0
		if prevInit != nil {
			prevInit()
		}
	}
	return c
}

// Idle creates a never-finishing command holding the given subsystems,
// suitable as a default command.
func Idle(name string, subs ...*Subsystem) *FuncCommand {
	return NewFunc(name, func() {}, nil, WithRequirements(subs...))
}

// Initialize implements Command.
func (c *FuncCommand) Initialize() {
	if c.onInit != nil {
		c.onInit()
	}
}

// Execute implements Command.
func (c *FuncCommand) Execute() {
	if c.onExecute != nil {
		c.onExecute()
	}
}

// IsFinished implements Command.
func (c *FuncCommand) IsFinished() bool {
	if c.isFinished == nil {
		return false
	}
	return c.isFinished()
}

// End implements Command.
func (c *FuncCommand) End(interrupted bool) {
	if c.onEnd != nil {
		c.onEnd(interrupted)
	}
}

// Requirements implements Command.
func (c *FuncCommand) Requirements() []*Subsystem {
	return c.requirements
}

// Interruptible implements Command.
func (c *FuncCommand) Interruptible() bool {
	return c.interruptible
}

// Name implements Command.
func (c *FuncCommand) Name() string {
	return c.name
}
