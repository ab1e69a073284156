// Package input turns raw terminal key and mouse events into editing
// events.
//
// Key events resolve against a keymap first, so chords like A-S-Up
// reach their bound action before any built-in meaning. Unbound keys
// fall through to their literal role: printable characters insert,
// Enter splits, Tab indents, Backspace and Delete remove. Keys with no
// editing meaning are reported as unhandled and left to the caller.
//
// Mouse events arrive pre-classified by the mouse package. Left-button
// gestures map onto the caret and selection operations; every other
// button is left to the caller.
package input

import (
	"github.com/dshills/textstorm/internal/dispatcher"
	"github.com/dshills/textstorm/internal/engine/buffer"
	"github.com/dshills/textstorm/internal/input/key"
	"github.com/dshills/textstorm/internal/input/keymap"
	"github.com/dshills/textstorm/internal/input/mouse"
)

// Translator maps raw input onto dispatcher events using a keymap.
type Translator struct {
	km *keymap.Keymap
}

// NewTranslator creates a translator. A nil keymap uses the defaults.
func NewTranslator(km *keymap.Keymap) *Translator {
	if km == nil {
		km = keymap.Default()
	}
	return &Translator{km: km}
}

// SetKeymap replaces the active keymap.
func (t *Translator) SetKeymap(km *keymap.Keymap) {
	if km != nil {
		t.km = km
	}
}

// TranslateKey resolves a key event. Returns false for keys with no
// editing meaning.
func (t *Translator) TranslateKey(ev key.Event) (dispatcher.Event, bool) {
	if action, ok := t.km.Lookup(ev); ok {
		return actionEvent(action)
	}

	switch ev.Key {
	case key.KeyEnter:
		return dispatcher.Enter(), true
	case key.KeyTab:
		return dispatcher.Tab(), true
	case key.KeyBackspace:
		return dispatcher.Backspace(), true
	case key.KeyDelete:
		return dispatcher.Delete(), true
	case key.KeyEscape:
		return dispatcher.Escape(), true
	}

	if ev.IsChar() {
		return dispatcher.Char(ev.Rune), true
	}
	return dispatcher.Event{}, false
}

// TranslateMouse resolves a classified mouse event. at is the event
// position mapped into the buffer. Only left-button gestures carry
// editing meaning; wheel ticks, hover motion, and the other buttons
// are reported as unhandled.
func (t *Translator) TranslateMouse(ev mouse.Event, at buffer.Point) (dispatcher.Event, bool) {
	if ev.Button != mouse.ButtonLeft {
		return dispatcher.Event{}, false
	}

	switch ev.Action {
	case mouse.ActionPress:
		return dispatcher.MouseDown(at, ev.Modifiers.HasAlt(), ev.Modifiers.HasShift()), true
	case mouse.ActionDrag:
		return dispatcher.MouseDrag(at), true
	case mouse.ActionRelease:
		return dispatcher.MouseUp(), true
	}
	return dispatcher.Event{}, false
}

// actionEvent maps a keymap action onto its dispatcher event.
func actionEvent(a keymap.Action) (dispatcher.Event, bool) {
	switch a {
	case keymap.ActionAddCursorAbove:
		return dispatcher.AddCursorAbove(), true
	case keymap.ActionAddCursorBelow:
		return dispatcher.AddCursorBelow(), true
	case keymap.ActionClearCursors:
		return dispatcher.Escape(), true
	}
	return dispatcher.Event{}, false
}
