package buffer

import (
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
)

// Buffer is a line-indexed text store. It keeps the full content as a
// string plus an index of line start offsets; the index is rebuilt after
// every mutation. All methods are thread-safe.
//
// Line endings are normalized to \n on load and on every insert, so line
// arithmetic never has to account for \r\n sequences.
type Buffer struct {
	mu         sync.RWMutex
	content    string
	lineStarts []ByteOffset
	revisionID RevisionID
}

// NewBuffer creates a new empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{
		lineStarts: []ByteOffset{0},
		revisionID: NewRevisionID(),
	}
}

// NewBufferFromString creates a buffer with initial content.
func NewBufferFromString(s string) *Buffer {
	b := NewBuffer()
	b.content = normalizeNewlines(s)
	b.lineStarts = buildLineIndex(b.content)
	return b
}

// NewBufferFromReader creates a buffer from an io.Reader.
func NewBufferFromReader(r io.Reader) (*Buffer, error) {
	// Read all content first so CRLF sequences split across read
	// boundaries normalize correctly.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewBufferFromString(string(data)), nil
}

// normalizeNewlines converts CRLF and bare CR line endings to LF.
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return s
}

// buildLineIndex returns the byte offsets of every line start in s.
// The first entry is always 0; text after the final newline counts as
// one more (possibly empty) line.
func buildLineIndex(s string) []ByteOffset {
	starts := make([]ByteOffset, 1, 16)
	starts[0] = 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			starts = append(starts, ByteOffset(i+1))
		}
	}
	return starts
}

// Read Operations

// Text returns the full buffer content as a string.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content
}

// TextRange returns text in the given byte range, clamped to the buffer
// bounds. An inverted or out-of-range request returns the empty string.
func (b *Buffer) TextRange(start, end ByteOffset) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	length := ByteOffset(len(b.content))
	if start < 0 {
		start = 0
	}
	if end > length {
		end = length
	}
	if start >= end {
		return ""
	}
	return b.content[start:end]
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ByteOffset(len(b.content))
}

// RuneAt returns the rune at the given byte offset.
// Returns utf8.RuneError and size 0 if offset is out of range.
func (b *Buffer) RuneAt(offset ByteOffset) (rune, int) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if offset < 0 || offset >= ByteOffset(len(b.content)) {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(b.content[offset:])
}

// RuneBefore returns the rune ending at the given byte offset.
// Returns utf8.RuneError and size 0 if offset is at the start of the
// buffer or out of range.
func (b *Buffer) RuneBefore(offset ByteOffset) (rune, int) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if offset <= 0 || offset > ByteOffset(len(b.content)) {
		return utf8.RuneError, 0
	}
	return utf8.DecodeLastRuneInString(b.content[:offset])
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() uint32 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return uint32(len(b.lineStarts))
}

// LineText returns the text of a specific line (without newline).
// Lines beyond the buffer end return the empty string.
func (b *Buffer) LineText(line uint32) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if int(line) >= len(b.lineStarts) {
		return ""
	}
	return b.content[b.lineStarts[line]:b.lineEndLocked(line)]
}

// LineLen returns the length of a specific line in bytes (without newline).
func (b *Buffer) LineLen(line uint32) uint32 {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if int(line) >= len(b.lineStarts) {
		return 0
	}
	return uint32(b.lineEndLocked(line) - b.lineStarts[line])
}

// LineStartOffset returns the byte offset of the start of a line.
// Lines beyond the buffer end return the buffer length.
func (b *Buffer) LineStartOffset(line uint32) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if int(line) >= len(b.lineStarts) {
		return ByteOffset(len(b.content))
	}
	return b.lineStarts[line]
}

// LineEndOffset returns the byte offset of the end of a line (before the
// newline). Lines beyond the buffer end return the buffer length.
func (b *Buffer) LineEndOffset(line uint32) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if int(line) >= len(b.lineStarts) {
		return ByteOffset(len(b.content))
	}
	return b.lineEndLocked(line)
}

// lineEndLocked returns the offset just before line's newline, or the
// buffer length for the final line. Caller must hold the lock.
func (b *Buffer) lineEndLocked(line uint32) ByteOffset {
	if int(line) >= len(b.lineStarts)-1 {
		return ByteOffset(len(b.content))
	}
	return b.lineStarts[line+1] - 1
}

// Coordinate Conversion

// OffsetToPoint converts a byte offset to line/column.
// Offsets outside the buffer clamp to the nearest valid position.
func (b *Buffer) OffsetToPoint(offset ByteOffset) Point {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if offset < 0 {
		offset = 0
	}
	if offset > ByteOffset(len(b.content)) {
		offset = ByteOffset(len(b.content))
	}

	// Find the last line start at or before offset.
	line := sort.Search(len(b.lineStarts), func(i int) bool {
		return b.lineStarts[i] > offset
	}) - 1

	return Point{Line: uint32(line), Column: uint32(offset - b.lineStarts[line])}
}

// PointToOffset converts line/column to a byte offset, clamping the line
// to the buffer and the column to the line length.
func (b *Buffer) PointToOffset(point Point) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if int(point.Line) >= len(b.lineStarts) {
		return ByteOffset(len(b.content))
	}

	start := b.lineStarts[point.Line]
	lineLen := b.lineEndLocked(point.Line) - start
	col := ByteOffset(point.Column)
	if col > lineLen {
		col = lineLen
	}
	return start + col
}

// Write Operations

// Insert inserts text at the given offset.
// Returns the net change in buffer length (the length of the normalized
// text).
func (b *Buffer) Insert(offset ByteOffset, text string) (ByteOffset, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if offset < 0 || offset > ByteOffset(len(b.content)) {
		return 0, ErrOffsetOutOfRange
	}

	text = normalizeNewlines(text)
	b.content = b.content[:offset] + text + b.content[offset:]
	b.lineStarts = buildLineIndex(b.content)
	b.revisionID = NewRevisionID()

	return ByteOffset(len(text)), nil
}

// Delete removes text in the given range.
// Returns the net change in buffer length (always <= 0).
func (b *Buffer) Delete(start, end ByteOffset) (ByteOffset, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if start < 0 || start > end || end > ByteOffset(len(b.content)) {
		return 0, ErrRangeInvalid
	}

	b.content = b.content[:start] + b.content[end:]
	b.lineStarts = buildLineIndex(b.content)
	b.revisionID = NewRevisionID()

	return start - end, nil
}

// Buffer State

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.content) == 0
}
