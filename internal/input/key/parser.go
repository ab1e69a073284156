package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Parse errors.
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification string into an Event.
//
// Supported formats:
//   - Single character: "a", "A", "{"
//   - Key names: "Enter", "Esc", "Tab", "Up", "Space"
//   - Modifier chords: "C-d", "A-S-Up", "Ctrl+Shift+P"
//
// The dash and plus forms are interchangeable; modifier names may be
// single letters (C, A, S, M) or full names (ctrl, alt, shift, meta).
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	if strings.Contains(spec, "+") {
		return parseChord(spec, "+")
	}
	if len(spec) > 1 && strings.Contains(spec, "-") {
		return parseChord(spec, "-")
	}
	return parseKeyPart(spec, ModNone)
}

// MustParse parses a key specification and panics on error. Use only
// for known-valid specs in initialization code.
func MustParse(spec string) Event {
	ev, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return ev
}

// parseChord parses a separator-joined chord. All parts but the last
// must be modifier names; the last is the key.
func parseChord(spec, sep string) (Event, error) {
	parts := strings.Split(spec, sep)
	if len(parts) < 2 {
		return Event{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
	}

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}

	return parseKeyPart(parts[len(parts)-1], mods)
}

// parseKeyPart parses the key portion of a spec with already-known
// modifiers.
func parseKeyPart(part string, mods Modifier) (Event, error) {
	part = strings.TrimSpace(part)
	if part == "" {
		return Event{}, ErrInvalidSpec
	}

	if k := KeyFromName(part); k != KeyNone {
		return NewSpecialEvent(k, mods), nil
	}
	if strings.EqualFold(part, "space") {
		return NewRuneEvent(' ', mods), nil
	}

	runes := []rune(part)
	if len(runes) != 1 {
		return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, part)
	}

	r := runes[0]
	// Ctrl chords are case-insensitive on terminals.
	if mods.HasCtrl() {
		r = unicode.ToLower(r)
	}
	return NewRuneEvent(r, mods), nil
}
