package buffer

// TextBuffer is the collaborator contract the editing core consumes.
// Components hold a TextBuffer rather than a concrete *Buffer so they can
// be unit-tested headlessly and hosted over any offset-addressed text
// store the surrounding application provides.
//
// Insert and Delete report the net change in buffer length; reads clamp
// out-of-range requests rather than failing.
type TextBuffer interface {
	// Read operations
	Len() ByteOffset
	TextRange(start, end ByteOffset) string
	RuneAt(offset ByteOffset) (rune, int)
	RuneBefore(offset ByteOffset) (rune, int)

	// Line operations
	LineCount() uint32
	LineText(line uint32) string
	LineLen(line uint32) uint32
	LineStartOffset(line uint32) ByteOffset
	LineEndOffset(line uint32) ByteOffset

	// Position conversion
	OffsetToPoint(offset ByteOffset) Point
	PointToOffset(point Point) ByteOffset

	// Write operations
	Insert(offset ByteOffset, text string) (ByteOffset, error)
	Delete(start, end ByteOffset) (ByteOffset, error)
}

// Ensure Buffer implements TextBuffer.
var _ TextBuffer = (*Buffer)(nil)
