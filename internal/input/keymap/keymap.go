// Package keymap binds key chords to editor actions.
package keymap

import (
	"fmt"

	"github.com/dshills/textstorm/internal/input/key"
)

// Action names an editor operation a chord can invoke.
type Action string

// Actions a keymap may bind.
const (
	// ActionAddCursorAbove places a cursor on the line above each caret.
	ActionAddCursorAbove Action = "cursor.addAbove"

	// ActionAddCursorBelow places a cursor on the line below each caret.
	ActionAddCursorBelow Action = "cursor.addBelow"

	// ActionClearCursors collapses to the primary caret and drops any
	// block selection.
	ActionClearCursors Action = "cursor.clear"
)

// knownActions lists every action a binding may name.
var knownActions = map[Action]bool{
	ActionAddCursorAbove: true,
	ActionAddCursorBelow: true,
	ActionClearCursors:   true,
}

// Valid returns true for a recognized action name.
func (a Action) Valid() bool {
	return knownActions[a]
}

// Binding pairs a key chord with an action.
type Binding struct {
	// Keys is the chord specification, like "A-S-Up" or "ctrl+d".
	Keys string `yaml:"keys"`

	// Action names the operation the chord invokes.
	Action Action `yaml:"action"`

	// Description documents the binding.
	Description string `yaml:"description,omitempty"`
}

// Keymap is a named set of bindings with a compiled lookup table.
type Keymap struct {
	Name     string
	Bindings []Binding

	byChord map[string]Action
}

// New creates a keymap from bindings. Every chord must parse and every
// action must be known.
func New(name string, bindings []Binding) (*Keymap, error) {
	km := &Keymap{
		Name:     name,
		Bindings: bindings,
		byChord:  make(map[string]Action, len(bindings)),
	}
	for _, b := range bindings {
		ev, err := key.Parse(b.Keys)
		if err != nil {
			return nil, fmt.Errorf("binding %q: %w", b.Keys, err)
		}
		if !b.Action.Valid() {
			return nil, fmt.Errorf("binding %q: unknown action %q", b.Keys, b.Action)
		}
		km.byChord[ev.Chord()] = b.Action
	}
	return km, nil
}

// Default returns the built-in bindings.
func Default() *Keymap {
	km, err := New("default", []Binding{
		{Keys: "A-S-Up", Action: ActionAddCursorAbove, Description: "Add cursor above"},
		{Keys: "A-S-Down", Action: ActionAddCursorBelow, Description: "Add cursor below"},
		{Keys: "Esc", Action: ActionClearCursors, Description: "Collapse to a single cursor"},
	})
	if err != nil {
		panic("default keymap: " + err.Error())
	}
	return km
}

// Lookup returns the action bound to a key event.
func (k *Keymap) Lookup(ev key.Event) (Action, bool) {
	a, ok := k.byChord[ev.Chord()]
	return a, ok
}

// Merge returns a keymap with other's bindings layered over k's.
// Chords bound in both resolve to other's action.
func (k *Keymap) Merge(other *Keymap) *Keymap {
	if other == nil {
		return k
	}

	merged := &Keymap{
		Name:     other.Name,
		Bindings: make([]Binding, 0, len(k.Bindings)+len(other.Bindings)),
		byChord:  make(map[string]Action, len(k.byChord)+len(other.byChord)),
	}
	merged.Bindings = append(merged.Bindings, k.Bindings...)
	merged.Bindings = append(merged.Bindings, other.Bindings...)
	for chord, a := range k.byChord {
		merged.byChord[chord] = a
	}
	for chord, a := range other.byChord {
		merged.byChord[chord] = a
	}
	return merged
}
