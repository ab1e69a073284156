// Package block implements rectangular selection spanning a range of
// lines and columns.
package block

import (
	"github.com/dshills/textstorm/internal/engine/buffer"
	"github.com/dshills/textstorm/internal/engine/cursor"
	"github.com/dshills/textstorm/internal/renderer/highlight"
)

// Region is a normalized rectangular area. Lines and columns are both
// inclusive-start, with EndCol exclusive when slicing text.
type Region struct {
	StartLine uint32
	EndLine   uint32
	StartCol  uint32
	EndCol    uint32
}

// Selection is a rectangular selection anchored at one corner and
// tracking the opposite corner as it moves. Corners may sit beyond
// line ends; all buffer access clamps per line.
type Selection struct {
	buf    buffer.TextBuffer
	anchor buffer.Point
	head   buffer.Point
	active bool
}

// NewSelection creates an inactive selection over buf.
func NewSelection(buf buffer.TextBuffer) *Selection {
	return &Selection{buf: buf}
}

// Start begins a selection with both corners at the given point.
func (s *Selection) Start(at buffer.Point) {
	s.anchor = at
	s.head = at
	s.active = true
}

// Update moves the tracking corner. No-op while inactive.
func (s *Selection) Update(to buffer.Point) {
	if !s.active {
		return
	}
	s.head = to
}

// Active reports whether a selection is in progress.
func (s *Selection) Active() bool {
	return s.active
}

// Clear deactivates the selection. Safe to call repeatedly.
func (s *Selection) Clear() {
	s.active = false
}

// Region returns the normalized rectangle between the two corners.
func (s *Selection) Region() (Region, bool) {
	if !s.active {
		return Region{}, false
	}
	return Region{
		StartLine: min(s.anchor.Line, s.head.Line),
		EndLine:   max(s.anchor.Line, s.head.Line),
		StartCol:  min(s.anchor.Column, s.head.Column),
		EndCol:    max(s.anchor.Column, s.head.Column),
	}, true
}

// SelectedText returns the selected slice of each line in the region.
// Lines shorter than the left edge contribute an empty string; lines
// past the end of the buffer are skipped.
func (s *Selection) SelectedText() []string {
	region, ok := s.Region()
	if !ok {
		return nil
	}

	var out []string
	s.eachLine(region, func(line uint32, colStart, colEnd uint32) {
		out = append(out, s.buf.LineText(line)[colStart:colEnd])
	})
	return out
}

// LineRanges returns the non-empty byte range each line contributes
// to the region.
func (s *Selection) LineRanges() []buffer.Range {
	region, ok := s.Region()
	if !ok {
		return nil
	}

	var out []buffer.Range
	s.eachLine(region, func(line uint32, colStart, colEnd uint32) {
		if colStart == colEnd {
			return
		}
		lineStart := s.buf.LineStartOffset(line)
		out = append(out, buffer.Range{
			Start: lineStart + buffer.ByteOffset(colStart),
			End:   lineStart + buffer.ByteOffset(colEnd),
		})
	})
	return out
}

// HighlightSpans returns one block-selection span per line with a
// non-empty clamped range.
func (s *Selection) HighlightSpans() []highlight.Span {
	ranges := s.LineRanges()
	if len(ranges) == 0 {
		return nil
	}

	spans := make([]highlight.Span, len(ranges))
	for i, r := range ranges {
		spans[i] = highlight.Span{
			Start:    r.Start,
			End:      r.End,
			Category: highlight.CategoryBlockSelection,
		}
	}
	return spans
}

// CreateCursors converts the selection into one cursor per line at
// the region's right edge, clamped to each line's length. The first
// line's position is returned as the new primary; the remaining
// positions are added to cs as secondaries. The selection is cleared
// whether or not any cursor was placed.
func (s *Selection) CreateCursors(cs *cursor.CursorSet) (buffer.ByteOffset, bool) {
	region, ok := s.Region()
	if !ok {
		return 0, false
	}
	defer s.Clear()

	var primary buffer.ByteOffset
	placed := false

	lineCount := s.buf.LineCount()
	for line := region.StartLine; line <= region.EndLine && line < lineCount; line++ {
		col := min(region.EndCol, s.buf.LineLen(line))
		pos := s.buf.PointToOffset(buffer.Point{Line: line, Column: col})
		if !placed {
			primary = pos
			placed = true
			continue
		}
		cs.Add(primary, pos)
	}

	if !placed {
		return 0, false
	}
	return primary, true
}

// eachLine visits every buffer line in the region with its clamped
// column bounds.
func (s *Selection) eachLine(region Region, visit func(line, colStart, colEnd uint32)) {
	lineCount := s.buf.LineCount()
	for line := region.StartLine; line <= region.EndLine && line < lineCount; line++ {
		lineLen := s.buf.LineLen(line)
		visit(line, min(region.StartCol, lineLen), min(region.EndCol, lineLen))
	}
}
