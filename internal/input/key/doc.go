// Package key defines keyboard events and the chord notation used by
// keymaps.
//
// A chord string names modifiers in C, A, S, M order followed by the
// key: "C-d", "A-S-Up", "Esc". Plain characters stand alone: "x", "{".
// Parse accepts both the dash form and a "ctrl+shift+p" long form and
// normalizes either into an Event.
package key
