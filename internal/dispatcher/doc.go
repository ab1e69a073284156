// Package dispatcher routes input events through the editing engine.
//
// The coordinator is the hub that connects user input to the editing
// core. It owns the primary caret, the secondary cursor set, and the
// block selection, and resolves which typing assist each event
// triggers.
//
// # Event Priority
//
// Events pass through a fixed priority chain:
//
//  1. Escape clears multi-cursor and block selection state.
//  2. Add-cursor events spawn cursors above or below every current
//     cursor.
//  3. A character typed into an active block selection converts the
//     selection into one cursor per line, then continues as a
//     multi-cursor insert.
//  4. While the cursor set is active, edits apply as one batched
//     operation across all cursors; the single-caret assists below
//     are skipped.
//  5. Tab inserts the configured number of spaces.
//  6. Enter runs auto-indent, including the special case of opening a
//     bracket pair across three lines.
//  7. Backspace resolves in order: bracket pair delete, quote pair
//     delete, smart dedent, plain delete. Delete removes forward with
//     no assists.
//  8. A character resolves in order: quote wrap of the caller's
//     selection, skip over an existing closer, bracket auto-close,
//     quote auto-close, dedent before a typed closer, plain insert.
//
// # Mouse Events
//
// Mouse buttons manage cursor and selection state:
//
//   - alt+shift press clears the cursor set and starts a block
//     selection
//   - alt press adds a secondary cursor
//   - plain press clears cursors and block selection and moves the
//     caret
//   - drag grows the active block selection
//   - release is ignored
//
// # Results
//
// Every dispatch returns a Result carrying the new caret position,
// the buffer changes grouped for undo, and redraw hints. Events that
// cannot act return a no-op result rather than an error; errors are
// reserved for buffer failures.
//
// # Usage
//
//	coord := dispatcher.NewCoordinator(buf, cfg.Editor)
//	result := coord.Dispatch(dispatcher.Char('('))
//	spans := coord.Spans()
package dispatcher
