package cursor

import (
	"github.com/dshills/textstorm/internal/engine/buffer"
)

// Movement identifies a cursor movement direction.
type Movement uint8

const (
	// MoveUp moves one line up, same column.
	MoveUp Movement = iota
	// MoveDown moves one line down, same column.
	MoveDown
	// MoveLineStart moves to column 0 of the current line.
	MoveLineStart
	// MoveLineEnd moves past the last character of the current line.
	MoveLineEnd
)

// String returns a string representation of the movement.
func (m Movement) String() string {
	switch m {
	case MoveUp:
		return "Up"
	case MoveDown:
		return "Down"
	case MoveLineStart:
		return "LineStart"
	case MoveLineEnd:
		return "LineEnd"
	}
	return "Movement(?)"
}

// Move computes the offset reached by applying a movement to pos.
// Vertical movements keep the column, clamped to the target line's
// length. Returns false when the movement is impossible: up on the top
// line, down on the bottom line.
func Move(buf buffer.TextBuffer, pos ByteOffset, m Movement) (ByteOffset, bool) {
	p := buf.OffsetToPoint(pos)

	switch m {
	case MoveUp:
		if p.Line == 0 {
			return pos, false
		}
		return buf.PointToOffset(buffer.Point{Line: p.Line - 1, Column: p.Column}), true
	case MoveDown:
		if p.Line+1 >= buf.LineCount() {
			return pos, false
		}
		return buf.PointToOffset(buffer.Point{Line: p.Line + 1, Column: p.Column}), true
	case MoveLineStart:
		return buf.LineStartOffset(p.Line), true
	case MoveLineEnd:
		return buf.LineEndOffset(p.Line), true
	}
	return pos, false
}

// AddAbove spawns a cursor one line above every current position,
// keeping each cursor's column where the target line is long enough.
// Positions already on the top line are skipped. Returns the number of
// cursors added.
func (cs *CursorSet) AddAbove(buf buffer.TextBuffer, primary ByteOffset) int {
	return cs.addMoved(buf, primary, MoveUp)
}

// AddBelow spawns a cursor one line below every current position,
// keeping each cursor's column where the target line is long enough.
// Positions already on the bottom line are skipped. Returns the number
// of cursors added.
func (cs *CursorSet) AddBelow(buf buffer.TextBuffer, primary ByteOffset) int {
	return cs.addMoved(buf, primary, MoveDown)
}

func (cs *CursorSet) addMoved(buf buffer.TextBuffer, primary ByteOffset, m Movement) int {
	added := 0
	for _, pos := range cs.AllPositions(primary) {
		target, ok := Move(buf, pos, m)
		if !ok {
			continue
		}
		if cs.Add(primary, target) {
			added++
		}
	}
	return added
}
