// Package testutils provides scriptable commands for scheduler tests.
package testutils

import (
	"fmt"
	"sync"

	"github.com/rota-robotics/rota/pkg/domain"
)

// Journal collects lifecycle entries from several recorders in call order,
// so tests can assert exact sequencing across commands.
type Journal struct {
	mu      sync.Mutex
	entries []string
}

func (j *Journal) add(entry string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, entry)
}

// Entries returns the recorded entries in order.
func (j *Journal) Entries() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.entries...)
}

// Recorder is a command that journals every lifecycle call. By default it
// never finishes and is interruptible.
type Recorder struct {
	name            string
	journal         *Journal
	finishAfter     int
	requirements    []*domain.Subsystem
	uninterruptible bool

	execsSinceInit int

	// Counters for coarse assertions.
	Inits      int
	Execs      int
	Ends       int
	Interrupts int
}

// NewRecorder creates a recorder journaling into j. A nil journal is fine
// when only the counters matter.
func NewRecorder(name string, j *Journal) *Recorder {
	if j == nil {
		j = &Journal{}
	}
	return &Recorder{name: name, journal: j}
}

// Requires declares subsystem requirements. Returns the recorder for
// chaining.
func (r *Recorder) Requires(subs ...*domain.Subsystem) *Recorder {
	r.requirements = append(r.requirements, subs...)
	return r
}

// FinishAfter makes IsFinished report true once Execute has run n times
// since the last Initialize.
func (r *Recorder) FinishAfter(n int) *Recorder {
	r.finishAfter = n
	return r
}

// Uninterruptible marks the recorder non-interruptible.
func (r *Recorder) Uninterruptible() *Recorder {
	r.uninterruptible = true
	return r
}

// Initialize implements domain.Command.
func (r *Recorder) Initialize() {
	r.Inits++
	r.execsSinceInit = 0
	r.journal.add("init " + r.name)
}

// Execute implements domain.Command.
func (r *Recorder) Execute() {
	r.Execs++
	r.execsSinceInit++
	r.journal.add("exec " + r.name)
}

// IsFinished implements domain.Command.
func (r *Recorder) IsFinished() bool {
	return r.finishAfter > 0 && r.execsSinceInit >= r.finishAfter
}

// End implements domain.Command.
func (r *Recorder) End(interrupted bool) {
	r.Ends++
	if interrupted {
		r.Interrupts++
	}
	r.journal.add(fmt.Sprintf("end %s interrupted=%t", r.name, interrupted))
}

// Requirements implements domain.Command.
func (r *Recorder) Requirements() []*domain.Subsystem {
	return r.requirements
}

// Interruptible implements domain.Command.
func (r *Recorder) Interruptible() bool {
	return !r.uninterruptible
}

// Name implements domain.Command.
func (r *Recorder) Name() string {
	return r.name
}
