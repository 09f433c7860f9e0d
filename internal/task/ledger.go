package task

import (
	"fmt"
	"time"
)

// Change records one status transition. It is never edited once written.
type Change struct {
	From Status    `yaml:"from"`
	To   Status    `yaml:"to"`
	On   time.Time `yaml:"on"`
}

// Ledger is the append-only history of a task's changes.
type Ledger []Change

// Last returns the most recent change.
func (l Ledger) Last() (Change, bool) {
	if len(l) == 0 {
		return Change{}, false
	}
	return l[len(l)-1], true
}

// Status derives the current status from the ledger.
func (l Ledger) Status() Status {
	last, ok := l.Last()
	if !ok {
		return StatusTodo
	}
	return last.To
}

// Append adds c to the ledger. Time must not move backwards.
func (l *Ledger) Append(c Change) error {
	if last, ok := l.Last(); ok && c.On.Before(last.On) {
		return &ClockSkewError{Last: last.On, Next: c.On}
	}
	*l = append(*l, c)
	return nil
}

// Verify checks that the ledger is a continuous walk of allowed edges
// starting at Todo, with non-decreasing timestamps.
func (l Ledger) Verify() error {
	prev := StatusTodo
	var prevOn time.Time
	for i, c := range l {
		if c.From != prev {
			return fmt.Errorf("changes[%d]: from %s does not follow %s", i, c.From, prev)
		}
		if !CanTransition(c.From, c.To) {
			return fmt.Errorf("changes[%d]: %w", i, &TransitionError{From: c.From, To: c.To})
		}
		if i > 0 && c.On.Before(prevOn) {
			return fmt.Errorf("changes[%d]: %w", i, &ClockSkewError{Last: prevOn, Next: c.On})
		}
		prev = c.To
		prevOn = c.On
	}
	return nil
}

// Clone returns a copy that does not share backing storage.
func (l Ledger) Clone() Ledger {
	if l == nil {
		return Ledger{}
	}
	out := make(Ledger, len(l))
	copy(out, l)
	return out
}
