// Package mouse classifies raw terminal mouse reports into press,
// drag, release, and move events, and counts click sequences for
// double and triple clicks.
package mouse

import (
	"time"

	"github.com/dshills/textstorm/internal/input/key"
)

// Button represents a mouse button.
type Button uint8

const (
	// ButtonNone indicates no button.
	ButtonNone Button = iota
	// ButtonLeft is the primary mouse button.
	ButtonLeft
	// ButtonMiddle is the middle mouse button.
	ButtonMiddle
	// ButtonRight is the secondary mouse button.
	ButtonRight
	// WheelUp is a scroll wheel tick away from the user.
	WheelUp
	// WheelDown is a scroll wheel tick toward the user.
	WheelDown
)

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	case WheelUp:
		return "wheel-up"
	case WheelDown:
		return "wheel-down"
	default:
		return "none"
	}
}

// IsWheel returns true if this is a scroll wheel button.
func (b Button) IsWheel() bool {
	return b == WheelUp || b == WheelDown
}

// Action represents the type of mouse action.
type Action uint8

const (
	// ActionNone indicates no action.
	ActionNone Action = iota
	// ActionPress indicates a button press.
	ActionPress
	// ActionRelease indicates a button release.
	ActionRelease
	// ActionMove indicates motion with no button held.
	ActionMove
	// ActionDrag indicates motion with a button held.
	ActionDrag
)

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionPress:
		return "press"
	case ActionRelease:
		return "release"
	case ActionMove:
		return "move"
	case ActionDrag:
		return "drag"
	default:
		return "none"
	}
}

// Position is a screen coordinate in cells.
type Position struct {
	X int
	Y int
}

// Equal returns true if two positions are equal.
func (p Position) Equal(other Position) bool {
	return p.X == other.X && p.Y == other.Y
}

// Distance returns the Manhattan distance between two positions. Click
// proximity checks use it because it is cheap and close enough for
// cell grids.
func (p Position) Distance(other Position) int {
	dx := p.X - other.X
	if dx < 0 {
		dx = -dx
	}
	dy := p.Y - other.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Event is a classified mouse event.
type Event struct {
	// Position is the screen coordinate of the event.
	Position Position

	// Button is the button involved. For drags and releases it is the
	// button that started the gesture.
	Button Button

	// Modifiers are the keyboard modifiers held during the event.
	Modifiers key.Modifier

	// Action is what the pointer did.
	Action Action

	// Clicks is the click sequence count for presses: 1 for a single
	// click, 2 for a double, 3 for a triple. Zero for other actions.
	Clicks int

	// When is the event time.
	When time.Time
}
