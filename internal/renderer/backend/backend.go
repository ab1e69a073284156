// Package backend abstracts the terminal surface the shell draws on.
// Terminal renders through tcell; Null keeps an in-memory grid for
// tests.
package backend

import "github.com/dshills/textstorm/internal/input/key"

// EventType identifies the kind of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventMouse
	EventResize
	// EventWakeup is delivered after Wakeup and carries no data. It
	// lets another goroutine break a PollEvent wait.
	EventWakeup
)

// MouseButton identifies which button a mouse event reports.
type MouseButton int

const (
	ButtonNone MouseButton = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
	WheelUp
	WheelDown
)

// Event is a terminal event. Only the fields for its Type are set.
type Event struct {
	Type EventType

	// Key event fields
	Key key.Event

	// Mouse event fields
	MouseX, MouseY int
	Button         MouseButton
	Mods           key.Modifier

	// Resize event fields
	Width, Height int
}

// Backend is a drawable terminal surface with an event queue.
type Backend interface {
	// Init prepares the surface. Must be called before any other
	// method.
	Init() error

	// Shutdown releases the surface and restores terminal state.
	Shutdown()

	// Size returns the current dimensions in cells.
	Size() (width, height int)

	// SetCell writes one cell. Positions outside the surface are
	// ignored.
	SetCell(x, y int, r rune, style Style)

	// Clear resets every cell to a blank with the default style.
	Clear()

	// Show flushes pending writes to the display.
	Show()

	// ShowCursor positions and displays the hardware cursor.
	ShowCursor(x, y int)

	// HideCursor hides the hardware cursor.
	HideCursor()

	// PollEvent blocks until the next event arrives.
	PollEvent() Event

	// Wakeup queues an EventWakeup. Safe to call from any goroutine.
	Wakeup()

	// Beep sounds the terminal bell.
	Beep()
}
