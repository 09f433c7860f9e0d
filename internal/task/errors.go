package task

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrCorruptState reports an index/task file mismatch or unparseable content.
	ErrCorruptState = errors.New("corrupt state")
	// ErrInvalidTransition reports a status edge that is not permitted.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrDuplicateID reports two records sharing one task id.
	ErrDuplicateID = errors.New("duplicate task id")
	// ErrAlreadyInitialized reports an init over an existing tracking directory.
	ErrAlreadyInitialized = errors.New("already initialized")
	// ErrNotInitialized reports a load from a root without a tracking directory.
	ErrNotInitialized = errors.New("not initialized")
	// ErrClockSkew reports a change timestamped before the last ledger entry.
	ErrClockSkew = errors.New("clock skew")
	// ErrTaskNotFound reports a lookup of an unknown id.
	ErrTaskNotFound = errors.New("task not found")
)

// CorruptStateError wraps a load failure with the offending path.
// It matches ErrCorruptState and whatever Err wraps.
type CorruptStateError struct {
	Path string
	Err  error
}

func (e *CorruptStateError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("corrupt state: %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("corrupt state: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *CorruptStateError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrCorruptState.
func (e *CorruptStateError) Is(target error) bool {
	return target == ErrCorruptState
}

func corrupt(path string, format string, args ...any) error {
	return &CorruptStateError{Path: path, Err: fmt.Errorf(format, args...)}
}

// TransitionError describes a rejected status change.
type TransitionError struct {
	ID   int
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	if e.ID > 0 {
		return fmt.Sprintf("task %d: cannot move from %s to %s", e.ID, e.From, e.To)
	}
	return fmt.Sprintf("cannot move from %s to %s", e.From, e.To)
}

// Is reports whether target is ErrInvalidTransition.
func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// ClockSkewError describes a change older than the ledger's last entry.
type ClockSkewError struct {
	Last time.Time
	Next time.Time
}

func (e *ClockSkewError) Error() string {
	return fmt.Sprintf("change at %s is earlier than last change at %s",
		e.Next.Format(time.RFC3339Nano), e.Last.Format(time.RFC3339Nano))
}

// Is reports whether target is ErrClockSkew.
func (e *ClockSkewError) Is(target error) bool {
	return target == ErrClockSkew
}
