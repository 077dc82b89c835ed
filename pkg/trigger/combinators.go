package trigger

// And returns a new trigger that is true while both t and other sample
// true. Neither operand is mutated; the result has its own edge state and
// no bindings.
func (t *Trigger) And(other *Trigger) *Trigger {
	a, b := t.source, other.source
	return New(func() bool {
		// Sample both sides unconditionally so stateful sources (like
		// Debounce) advance even when the left side is false.
		av, bv := a(), b()
		return av && bv
	})
}

// Or returns a new trigger that is true while either operand samples true.
func (t *Trigger) Or(other *Trigger) *Trigger {
	a, b := t.source, other.source
	return New(func() bool {
		av, bv := a(), b()
		return av || bv
	})
}

// Negate returns a new trigger with the inverted condition.
func (t *Trigger) Negate() *Trigger {
	src := t.source
	return New(func() bool { return !src() })
}

// Debounce returns a new trigger whose value only follows the underlying
// source after the source has held steady for the given number of
// consecutive samples. A cycles value of zero or one is a passthrough.
func (t *Trigger) Debounce(cycles int) *Trigger {
	src := t.source
	if cycles <= 1 {
		return New(src)
	}

	var (
		primed  bool
		lastRaw bool
		stable  int
		output  bool
	)
	return New(func() bool {
		cur := src()
		if !primed {
			primed = true
			lastRaw = cur
			output = cur
			stable = 1
			return output
		}
		if cur == lastRaw {
			stable++
		} else {
			lastRaw = cur
			stable = 1
		}
		if stable >= cycles {
			output = cur
		}
		return output
	})
}
