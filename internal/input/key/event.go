package key

import (
	"strings"
	"unicode"
)

// Event represents a single key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(key Key, mods Modifier) Event {
	return Event{Key: key, Modifiers: mods}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true if this event inserts text: a printable
// character without Ctrl or Meta held. Shift is part of the character
// itself and Alt is reserved for chords.
func (e Event) IsChar() bool {
	return e.IsRune() && unicode.IsPrint(e.Rune) &&
		e.Modifiers&(ModCtrl|ModAlt|ModMeta) == 0
}

// Chord returns the canonical chord string used for keymap lookup,
// like "C-d", "A-S-Up", or "Esc". For character keys Shift is folded
// into the rune and omitted from the prefix.
func (e Event) Chord() string {
	mods := e.Modifiers
	if e.IsRune() {
		mods = mods.Without(ModShift)
	}

	var parts []string
	if s := mods.String(); s != "" {
		parts = append(parts, s)
	}

	switch {
	case e.Key == KeyRune && e.Rune == ' ':
		parts = append(parts, "Space")
	case e.Key == KeyRune:
		parts = append(parts, string(e.Rune))
	default:
		parts = append(parts, e.Key.String())
	}

	return strings.Join(parts, "-")
}

// String returns the chord form.
func (e Event) String() string {
	return e.Chord()
}

// Equals returns true if two events represent the same key press.
func (e Event) Equals(other Event) bool {
	return e.Key == other.Key &&
		e.Rune == other.Rune &&
		e.Modifiers == other.Modifiers
}
