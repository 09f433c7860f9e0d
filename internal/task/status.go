package task

import (
	"fmt"
	"strings"
	"time"
)

// Status represents a task status.
type Status string

const (
	StatusTodo  Status = "Todo"
	StatusDoing Status = "Doing"
	StatusDone  Status = "Done"
)

// Statuses returns every status in board order.
func Statuses() []Status {
	return []Status{StatusTodo, StatusDoing, StatusDone}
}

// transitions lists the allowed edges: the forward chain plus a single step back.
var transitions = map[Status][]Status{
	StatusTodo:  {StatusDoing},
	StatusDoing: {StatusDone, StatusTodo},
	StatusDone:  {StatusDoing},
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// ParseStatus parses a status name case-insensitively.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "todo":
		return StatusTodo, nil
	case "doing":
		return StatusDoing, nil
	case "done":
		return StatusDone, nil
	default:
		return "", fmt.Errorf("invalid status %q, must be one of: todo, doing, done", s)
	}
}

// CanTransition reports whether from -> to is an allowed edge.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition moves t to status `to`, recording the change at `on`.
// On error t is left unmodified.
func Transition(t *Task, to Status, on time.Time) error {
	if !CanTransition(t.Status, to) {
		return &TransitionError{ID: t.ID, From: t.Status, To: to}
	}
	if err := t.Changes.Append(Change{From: t.Status, To: to, On: on}); err != nil {
		return fmt.Errorf("task %d: %w", t.ID, err)
	}
	t.Status = to
	return nil
}
