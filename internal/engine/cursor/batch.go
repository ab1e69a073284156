package cursor

import (
	"fmt"

	"github.com/dshills/textstorm/internal/engine/buffer"
)

type opKind uint8

const (
	opInsert opKind = iota
	opDelete
)

// Op is one edit primitive applied at every cursor position within a
// single batched operation.
type Op struct {
	kind     opKind
	text     string
	backward bool
}

// Insert returns an op that inserts text at each cursor.
func Insert(text string) Op {
	return Op{kind: opInsert, text: text}
}

// DeleteBackward returns an op that deletes the rune before each cursor.
func DeleteBackward() Op {
	return Op{kind: opDelete, backward: true}
}

// DeleteForward returns an op that deletes the rune after each cursor.
func DeleteForward() Op {
	return Op{kind: opDelete}
}

// String returns a string representation of the op.
func (op Op) String() string {
	switch op.kind {
	case opInsert:
		return fmt.Sprintf("Insert(%q)", op.text)
	case opDelete:
		if op.backward {
			return "DeleteBackward"
		}
		return "DeleteForward"
	}
	return "Op(?)"
}

// BatchResult reports the outcome of a batched edit.
type BatchResult struct {
	// Primary is the caller's primary offset transformed past every edit
	// in the batch.
	Primary ByteOffset

	// Changes lists the applied edits in application order, which is
	// descending by offset. Cursors whose edit was impossible (backward
	// delete at the buffer start, forward delete at the end) contribute
	// no change.
	Changes []buffer.Change
}

// ApplyBatchedEdit applies op at the primary cursor and at every
// secondary cursor in one logical operation, then reconciles the set.
//
// Positions are processed in descending offset order. Mutating at a
// higher offset never shifts a lower offset that has not been processed
// yet, so each edit lands exactly where its cursor points. The already
// processed positions live above the current edit and are transformed
// after each application.
//
// Returns false without touching the buffer if the set is inactive; the
// single-cursor path belongs to the caller.
func (cs *CursorSet) ApplyBatchedEdit(buf buffer.TextBuffer, primary ByteOffset, op Op) (BatchResult, bool) {
	if !cs.Active() {
		return BatchResult{Primary: primary}, false
	}

	positions := cs.AllPositions(primary)
	SortOffsetsDescending(positions)

	results := make([]ByteOffset, 0, len(positions))
	var changes []buffer.Change

	for _, pos := range positions {
		newPos := pos
		var change buffer.Change
		applied := false

		switch op.kind {
		case opInsert:
			if op.text == "" {
				break
			}
			delta, err := buf.Insert(pos, op.text)
			if err != nil {
				break
			}
			applied = true
			newPos = pos + delta
			change = buffer.Change{
				Type:     buffer.ChangeInsert,
				Range:    buffer.NewRange(pos, pos),
				NewRange: buffer.NewRange(pos, pos+delta),
				NewText:  buf.TextRange(pos, pos+delta),
			}

		case opDelete:
			start, end, ok := op.deleteBounds(buf, pos)
			if !ok {
				break
			}
			old := buf.TextRange(start, end)
			if _, err := buf.Delete(start, end); err != nil {
				break
			}
			applied = true
			newPos = start
			change = buffer.Change{
				Type:     buffer.ChangeDelete,
				Range:    buffer.NewRange(start, end),
				NewRange: buffer.NewRange(start, start),
				OldText:  old,
			}
		}

		if applied {
			edit := change.ToEdit()
			for i := range results {
				results[i] = TransformOffset(results[i], edit)
			}
			changes = append(changes, change)
		}
		results = append(results, newPos)
	}

	newPrimary := primary
	newSecondaries := make([]ByteOffset, 0, len(results))
	primaryTaken := false
	for i, pos := range positions {
		if !primaryTaken && pos == primary {
			newPrimary = results[i]
			primaryTaken = true
			continue
		}
		newSecondaries = append(newSecondaries, results[i])
	}

	cs.secondaries = newSecondaries
	cs.Reconcile(newPrimary)

	return BatchResult{Primary: newPrimary, Changes: changes}, true
}

// deleteBounds computes the byte range a delete op removes at pos.
// Returns false when there is nothing to delete in that direction.
func (op Op) deleteBounds(buf buffer.TextBuffer, pos ByteOffset) (ByteOffset, ByteOffset, bool) {
	if op.backward {
		_, size := buf.RuneBefore(pos)
		if size == 0 {
			return 0, 0, false
		}
		return pos - ByteOffset(size), pos, true
	}

	_, size := buf.RuneAt(pos)
	if size == 0 {
		return 0, 0, false
	}
	return pos, pos + ByteOffset(size), true
}
