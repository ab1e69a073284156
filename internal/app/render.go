package app

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dshills/textstorm/internal/engine/buffer"
	"github.com/dshills/textstorm/internal/input/mouse"
	"github.com/dshills/textstorm/internal/renderer/backend"
	"github.com/dshills/textstorm/internal/renderer/highlight"
)

// Cell styles per highlight category.
var (
	styleSecondary   = backend.Style{Foreground: backend.ColorFromIndex(16), Background: backend.ColorFromIndex(208)}
	styleBlock       = backend.DefaultStyle().Reverse()
	styleSelection   = backend.DefaultStyle().Reverse()
	styleBracket     = backend.DefaultStyle().Bold().Underline()
	styleQuote       = backend.DefaultStyle().Underline()
	styleCurrentLine = backend.DefaultStyle().WithBackground(backend.ColorFromIndex(236))
	styleStatus      = backend.DefaultStyle().Reverse()
)

// render draws the buffer, the highlight spans, the status line, and
// the hardware cursor.
func (e *Editor) render() {
	e.draw(true)
}

// renderScrolled redraws without pulling the viewport back to the
// caret, so a wheel scroll can move past the caret's line.
func (e *Editor) renderScrolled() {
	e.draw(false)
}

func (e *Editor) draw(followCaret bool) {
	e.mu.RLock()
	b := e.backend
	e.mu.RUnlock()
	if b == nil {
		return
	}

	timer := StartTimer()

	width, height := b.Size()
	if width <= 0 || height <= 0 {
		return
	}
	rows := height - 1

	buf := e.doc.Buffer()
	caretPt := buf.OffsetToPoint(e.coord.Caret())
	if followCaret && rows > 0 {
		e.scrollTo(caretPt.Line, uint32(rows))
	}

	spans := e.coord.Spans()

	b.Clear()
	for row := 0; row < rows; row++ {
		line := e.topLine + uint32(row)
		if line >= buf.LineCount() {
			break
		}
		e.renderLine(b, width, row, line, spans)
	}
	e.renderStatus(b, width, height-1, caretPt)

	cx := int(caretPt.Column)
	cy := int(caretPt.Line) - int(e.topLine)
	if cy >= 0 && cy < rows && cx >= 0 && cx < width {
		b.ShowCursor(cx, cy)
	} else {
		b.HideCursor()
	}

	b.Show()
	e.metrics.RecordRender(timer.Elapsed())
}

// renderLine draws one buffer line at screen row.
func (e *Editor) renderLine(b backend.Backend, width, row int, line uint32, spans []highlight.Span) {
	buf := e.doc.Buffer()
	text := buf.LineText(line)
	off := buf.LineStartOffset(line)

	x := 0
	for _, r := range text {
		if x >= width {
			break
		}
		b.SetCell(x, row, r, e.styleAt(off, spans))
		x++
		off += buffer.ByteOffset(utf8.RuneLen(r))
	}

	// Zero-width spans mark carets sitting past the text; draw them
	// as a styled blank.
	for _, s := range spans {
		if !s.IsCaret() {
			continue
		}
		pt := buf.OffsetToPoint(s.Start)
		if pt.Line == line && int(pt.Column) < width {
			b.SetCell(int(pt.Column), row, ' ', styleFor(s.Category))
		}
	}
}

// renderStatus draws the status line on row y.
func (e *Editor) renderStatus(b backend.Backend, width, y int, caretPt buffer.Point) {
	left := " " + e.doc.Name
	if e.doc.Modified() {
		left += " [+]"
	}
	if e.doc.ReadOnly {
		left += " [ro]"
	}
	if e.coord.Block().Active() {
		left += "  BLOCK"
	}
	if n := e.coord.Cursors().Count(); n > 0 {
		left += fmt.Sprintf("  carets:%d", n+1)
	}

	right := fmt.Sprintf("Ln %d, Col %d ", caretPt.Line+1, caretPt.Column+1)

	gap := width - len(left) - len(right)
	if gap < 1 {
		gap = 1
	}
	status := left + strings.Repeat(" ", gap) + right

	x := 0
	for _, r := range status {
		if x >= width {
			break
		}
		b.SetCell(x, y, r, styleStatus)
		x++
	}
	for ; x < width; x++ {
		b.SetCell(x, y, ' ', styleStatus)
	}
}

// styleAt picks the style for the cell at off. The shell's linear
// selection wins; the core's spans follow their own priority.
func (e *Editor) styleAt(off buffer.ByteOffset, spans []highlight.Span) backend.Style {
	if e.selection != nil && e.selection.Contains(off) {
		return styleSelection
	}

	best := highlight.CategoryNone
	for _, s := range spans {
		if s.Start > off {
			break
		}
		if s.Contains(off) && spanPriority(s.Category) > spanPriority(best) {
			best = s.Category
		}
	}
	return styleFor(best)
}

// spanPriority orders categories for overlapping spans; higher wins.
func spanPriority(c highlight.Category) int {
	switch c {
	case highlight.CategorySecondaryCursor:
		return 5
	case highlight.CategoryBlockSelection:
		return 4
	case highlight.CategoryBracketMatch:
		return 3
	case highlight.CategoryQuoteMatch:
		return 2
	case highlight.CategoryCurrentLine:
		return 1
	default:
		return 0
	}
}

// styleFor maps a highlight category onto its cell style.
func styleFor(c highlight.Category) backend.Style {
	switch c {
	case highlight.CategorySecondaryCursor:
		return styleSecondary
	case highlight.CategoryBlockSelection:
		return styleBlock
	case highlight.CategoryBracketMatch:
		return styleBracket
	case highlight.CategoryQuoteMatch:
		return styleQuote
	case highlight.CategoryCurrentLine:
		return styleCurrentLine
	default:
		return backend.DefaultStyle()
	}
}

// scrollTo keeps line inside a viewport of rows lines.
func (e *Editor) scrollTo(line, rows uint32) {
	if line < e.topLine {
		e.topLine = line
	} else if line >= e.topLine+rows {
		e.topLine = line - rows + 1
	}
}

// scrollBy moves the viewport, clamped to the buffer.
func (e *Editor) scrollBy(delta int) {
	top := int64(e.topLine) + int64(delta)
	if max := int64(e.doc.Buffer().LineCount()) - 1; top > max {
		top = max
	}
	if top < 0 {
		top = 0
	}
	e.topLine = uint32(top)
}

// screenToBuffer maps a screen cell onto a buffer position. Rows past
// the content area clamp to the last content row; the buffer clamps
// columns itself.
func (e *Editor) screenToBuffer(pos mouse.Position) buffer.Point {
	x, y := pos.X, pos.Y
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	e.mu.RLock()
	b := e.backend
	e.mu.RUnlock()
	if b != nil {
		_, height := b.Size()
		if rows := height - 1; rows > 0 && y >= rows {
			y = rows - 1
		}
	}

	return buffer.Point{Line: e.topLine + uint32(y), Column: uint32(x)}
}
