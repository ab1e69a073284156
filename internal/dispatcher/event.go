package dispatcher

import "github.com/dshills/textstorm/internal/engine/buffer"

// EventKind identifies the input event being dispatched.
type EventKind uint8

const (
	// EventChar is a printable character press.
	EventChar EventKind = iota
	// EventEnter is the newline key.
	EventEnter
	// EventTab is the tab key.
	EventTab
	// EventBackspace deletes backward.
	EventBackspace
	// EventDelete deletes forward.
	EventDelete
	// EventEscape cancels multi-cursor and block selection state.
	EventEscape
	// EventAddCursorAbove spawns cursors one line up.
	EventAddCursorAbove
	// EventAddCursorBelow spawns cursors one line down.
	EventAddCursorBelow
	// EventMouseDown is a primary button press.
	EventMouseDown
	// EventMouseDrag is a primary button move while held.
	EventMouseDrag
	// EventMouseUp is a primary button release.
	EventMouseUp
)

// String returns a short name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventChar:
		return "char"
	case EventEnter:
		return "enter"
	case EventTab:
		return "tab"
	case EventBackspace:
		return "backspace"
	case EventDelete:
		return "delete"
	case EventEscape:
		return "escape"
	case EventAddCursorAbove:
		return "add-cursor-above"
	case EventAddCursorBelow:
		return "add-cursor-below"
	case EventMouseDown:
		return "mouse-down"
	case EventMouseDrag:
		return "mouse-drag"
	case EventMouseUp:
		return "mouse-up"
	default:
		return "unknown"
	}
}

// Event is one input event for the coordinator.
type Event struct {
	// Kind identifies the event.
	Kind EventKind

	// Ch is the typed character for EventChar.
	Ch rune

	// Pos is the buffer position for mouse events. Columns past a
	// line's end are allowed; block selection clamps per line.
	Pos buffer.Point

	// Alt and Shift are the modifier states for mouse events.
	Alt   bool
	Shift bool

	// Selection is the caller-owned linear selection, if any. A quote
	// typed while it is non-empty wraps the selected text.
	Selection *buffer.Range
}

// Char creates a character event.
func Char(ch rune) Event {
	return Event{Kind: EventChar, Ch: ch}
}

// CharWithSelection creates a character event carrying the caller's
// linear selection.
func CharWithSelection(ch rune, sel buffer.Range) Event {
	return Event{Kind: EventChar, Ch: ch, Selection: &sel}
}

// Enter creates a newline event.
func Enter() Event {
	return Event{Kind: EventEnter}
}

// Tab creates a tab event.
func Tab() Event {
	return Event{Kind: EventTab}
}

// Backspace creates a backward delete event.
func Backspace() Event {
	return Event{Kind: EventBackspace}
}

// Delete creates a forward delete event.
func Delete() Event {
	return Event{Kind: EventDelete}
}

// Escape creates a cancel event.
func Escape() Event {
	return Event{Kind: EventEscape}
}

// AddCursorAbove creates an event that spawns cursors one line up.
func AddCursorAbove() Event {
	return Event{Kind: EventAddCursorAbove}
}

// AddCursorBelow creates an event that spawns cursors one line down.
func AddCursorBelow() Event {
	return Event{Kind: EventAddCursorBelow}
}

// MouseDown creates a button press event at pos.
func MouseDown(pos buffer.Point, alt, shift bool) Event {
	return Event{Kind: EventMouseDown, Pos: pos, Alt: alt, Shift: shift}
}

// MouseDrag creates a drag event at pos.
func MouseDrag(pos buffer.Point) Event {
	return Event{Kind: EventMouseDrag, Pos: pos}
}

// MouseUp creates a button release event.
func MouseUp() Event {
	return Event{Kind: EventMouseUp}
}
