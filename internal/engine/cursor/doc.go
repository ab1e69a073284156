// Package cursor provides multi-cursor management for text editing.
//
// The cursor package handles:
//
//   - Secondary edit points tracked by CursorSet
//   - Atomic batched insert/delete across all cursors
//   - Offset transformation after buffer edits
//   - Spawning cursors on adjacent lines
//
// Primary and Secondary Cursors:
//
// The primary cursor always exists and is owned by the caller; CursorSet
// never stores it. Operations that involve the primary take its offset
// as an argument and return the transformed value. Secondaries are plain
// byte offsets kept sorted and unique; a secondary never shares an
// offset with another secondary or with the primary. The set is active
// exactly when at least one secondary exists.
//
// Batched Edits:
//
// ApplyBatchedEdit applies one edit primitive at every cursor within a
// single logical operation. Positions are processed in descending offset
// order so that each edit lands where its cursor points: an edit at a
// higher offset cannot shift a lower, not-yet-processed offset. After
// the batch, Reconcile drops secondaries that collapsed onto another
// cursor.
//
// Basic usage:
//
//	cs := cursor.NewCursorSet()
//	cs.Add(primary, 42)
//
//	result, ok := cs.ApplyBatchedEdit(buf, primary, cursor.Insert("x"))
//	if ok {
//		primary = result.Primary
//	}
//
// Thread Safety:
//
// CursorSet is not thread-safe. It is designed for single-threaded,
// event-driven use where one goroutine owns the buffer and all cursor
// state.
package cursor
