package mouse

import (
	"sync"
	"time"

	"github.com/dshills/textstorm/internal/input/key"
)

// Config configures click sequence detection.
type Config struct {
	// MultiClickTime is the maximum time between presses that still
	// extends a click sequence.
	MultiClickTime time.Duration

	// MultiClickDistance is the maximum distance between presses that
	// still extends a click sequence.
	MultiClickDistance int
}

// DefaultConfig returns the default tracker configuration.
func DefaultConfig() Config {
	return Config{
		MultiClickTime:     400 * time.Millisecond,
		MultiClickDistance: 4,
	}
}

// Tracker turns raw button-state reports into classified events.
// Terminals report the buttons currently held, not transitions; the
// tracker keeps the previous state and derives presses, drags, and
// releases from the changes.
type Tracker struct {
	mu  sync.Mutex
	cfg Config

	held    Button
	start   Position
	current Position

	lastClickPos  Position
	lastClickTime time.Time
	clicks        int
}

// NewTracker creates a tracker with the given configuration.
func NewTracker(cfg Config) *Tracker {
	return &Tracker{cfg: cfg}
}

// Track classifies one raw report. button is the button currently
// held, or ButtonNone for motion and releases.
func (t *Tracker) Track(pos Position, button Button, mods key.Modifier, when time.Time) Event {
	t.mu.Lock()
	defer t.mu.Unlock()

	ev := Event{Position: pos, Modifiers: mods, When: when}

	switch {
	case button.IsWheel():
		// Wheel ticks never report a release and never drag.
		ev.Button = button
		ev.Action = ActionPress

	case t.held == ButtonNone && button != ButtonNone:
		t.held = button
		t.start = pos
		t.current = pos
		ev.Button = button
		ev.Action = ActionPress
		ev.Clicks = t.countClick(pos, when)

	case t.held != ButtonNone && button == ButtonNone:
		ev.Button = t.held
		ev.Action = ActionRelease
		t.held = ButtonNone

	case t.held != ButtonNone:
		// Motion with a button held. A button switch mid-gesture is
		// folded into the drag.
		t.current = pos
		ev.Button = t.held
		ev.Action = ActionDrag

	default:
		ev.Action = ActionMove
	}

	return ev
}

// Dragging returns true if a button is held.
func (t *Tracker) Dragging() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.held != ButtonNone
}

// DragStart returns the position where the current gesture started.
func (t *Tracker) DragStart() (Position, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.held == ButtonNone {
		return Position{}, false
	}
	return t.start, true
}

// Reset clears all tracking state.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.held = ButtonNone
	t.start = Position{}
	t.current = Position{}
	t.clicks = 0
	t.lastClickTime = time.Time{}
	t.lastClickPos = Position{}
}

// countClick records a press and returns the sequence count. The
// count wraps back to 1 after a triple click. Caller must hold the
// lock.
func (t *Tracker) countClick(pos Position, when time.Time) int {
	if when.IsZero() {
		when = time.Now()
	}

	if t.sameSequence(pos, when) {
		t.clicks++
		if t.clicks > 3 {
			t.clicks = 1
		}
	} else {
		t.clicks = 1
	}

	t.lastClickPos = pos
	t.lastClickTime = when
	return t.clicks
}

// sameSequence reports whether a press at pos extends the current
// click sequence.
func (t *Tracker) sameSequence(pos Position, when time.Time) bool {
	if t.clicks == 0 || t.lastClickTime.IsZero() {
		return false
	}
	elapsed := when.Sub(t.lastClickTime)
	if elapsed < 0 || elapsed > t.cfg.MultiClickTime {
		return false
	}
	return pos.Distance(t.lastClickPos) <= t.cfg.MultiClickDistance
}
