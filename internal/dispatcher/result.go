package dispatcher

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/textstorm/internal/engine/buffer"
)

// Status indicates the outcome of dispatching an event.
type Status uint8

const (
	// StatusOK indicates the event changed editor state.
	StatusOK Status = iota
	// StatusNoOp indicates the event had no effect.
	StatusNoOp
	// StatusError indicates an error occurred.
	StatusError
)

// String returns a string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoOp:
		return "no-op"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// EditGroup bundles the changes one event produced so the caller's
// undo machinery can treat them as a single step.
type EditGroup struct {
	// ID uniquely identifies the group.
	ID uuid.UUID

	// Changes are the applied changes in application order.
	Changes []buffer.Change
}

// NewEditGroup creates a group around the given changes.
func NewEditGroup(changes []buffer.Change) EditGroup {
	return EditGroup{ID: uuid.New(), Changes: changes}
}

// IsEmpty reports whether the group carries no changes.
func (g EditGroup) IsEmpty() bool {
	return len(g.Changes) == 0
}

// Result is the outcome of dispatching one event.
type Result struct {
	// Status indicates the result status.
	Status Status

	// Error contains any error that occurred.
	Error error

	// Caret is the primary cursor position after the event.
	Caret buffer.ByteOffset

	// Group holds the buffer changes the event produced.
	Group EditGroup

	// Redraw indicates the whole view needs redrawing.
	Redraw bool

	// RedrawLines lists specific lines that need redrawing.
	RedrawLines []uint32
}

// IsOK returns true if the result indicates success.
func (r Result) IsOK() bool {
	return r.Status == StatusOK
}

// IsError returns true if the result indicates an error.
func (r Result) IsError() bool {
	return r.Status == StatusError
}

// HasEdits returns true if the event changed the buffer.
func (r Result) HasEdits() bool {
	return !r.Group.IsEmpty()
}

// Success creates a successful result.
func Success() Result {
	return Result{Status: StatusOK}
}

// NoOp creates a no-operation result.
func NoOp() Result {
	return Result{Status: StatusNoOp}
}

// Error creates an error result.
func Error(err error) Result {
	return Result{Status: StatusError, Error: err}
}

// Errorf creates an error result with a formatted message.
func Errorf(format string, args ...any) Result {
	return Result{Status: StatusError, Error: fmt.Errorf(format, args...)}
}

// WithCaret returns a copy of the result with the caret position set.
func (r Result) WithCaret(pos buffer.ByteOffset) Result {
	r.Caret = pos
	return r
}

// WithEdits returns a copy of the result carrying an edit group.
func (r Result) WithEdits(group EditGroup) Result {
	r.Group = group
	return r
}

// WithRedraw returns a copy of the result requesting a full redraw.
func (r Result) WithRedraw() Result {
	r.Redraw = true
	return r
}

// WithRedrawLines returns a copy of the result with specific lines to
// redraw.
func (r Result) WithRedrawLines(lines ...uint32) Result {
	r.RedrawLines = append(r.RedrawLines, lines...)
	return r
}
