package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrQuit signals that the editor should exit normally.
	ErrQuit = errors.New("quit requested")

	// ErrAlreadyRunning indicates the editor is already running.
	ErrAlreadyRunning = errors.New("editor already running")

	// ErrNotRunning indicates the editor is not running.
	ErrNotRunning = errors.New("editor not running")

	// ErrNoBackend indicates Run was called without a backend.
	ErrNoBackend = errors.New("no backend set")

	// ErrReadOnly indicates an edit was attempted on a read-only
	// document.
	ErrReadOnly = errors.New("document is read-only")

	// ErrNoPath indicates a save was attempted on a scratch document.
	ErrNoPath = errors.New("document has no path")
)

// OperationError represents an error from a specific operation.
type OperationError struct {
	Op     string // operation name, like "save" or "open"
	Target string // target of the operation, usually a path
	Err    error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{Op: op, Target: target, Err: err}
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches both the wrapper itself and the wrapped error.
func (e *OperationError) Is(target error) bool {
	if e == nil {
		return false
	}
	if t, ok := target.(*OperationError); ok {
		return e == t
	}
	return errors.Is(e.Err, target)
}
