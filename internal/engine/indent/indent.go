// Package indent computes automatic indentation for newly opened and
// edited lines.
package indent

import (
	"strings"

	"github.com/dshills/textstorm/internal/config"
	"github.com/dshills/textstorm/internal/engine/buffer"
	"github.com/dshills/textstorm/internal/engine/match"
)

// ByteOffset is a position in the buffer, re-exported for
// convenience.
type ByteOffset = buffer.ByteOffset

// Manager derives indentation from buffer content and the editor
// configuration. Widths are measured in columns, with a tab counting
// as one tab width.
type Manager struct {
	buf buffer.TextBuffer
	cfg config.Editor
}

// NewManager creates a manager over buf using the given editor
// configuration.
func NewManager(buf buffer.TextBuffer, cfg config.Editor) *Manager {
	return &Manager{buf: buf, cfg: cfg}
}

// SetConfig replaces the editor configuration.
func (m *Manager) SetConfig(cfg config.Editor) {
	m.cfg = cfg
}

// LineIndent returns the leading whitespace of a line.
func (m *Manager) LineIndent(line uint32) string {
	return leadingWhitespace(m.buf.LineText(line))
}

// IndentWidth returns the column width of a line's leading
// whitespace.
func (m *Manager) IndentWidth(line uint32) int {
	width := 0
	for _, r := range m.LineIndent(line) {
		if r == '\t' {
			width += m.cfg.TabWidth
		} else {
			width++
		}
	}
	return width
}

// DetectIndentChar scans the buffer for its indentation character.
// The first indented line decides: a leading tab selects tabs, a
// leading space selects spaces. Buffers without indentation default
// to spaces.
func (m *Manager) DetectIndentChar() rune {
	lineCount := m.buf.LineCount()
	for line := uint32(0); line < lineCount; line++ {
		text := m.buf.LineText(line)
		if len(text) == 0 {
			continue
		}
		switch text[0] {
		case '\t':
			return '\t'
		case ' ':
			return ' '
		}
	}
	return ' '
}

// IndentUnit returns one level of indentation using the detected
// indentation character.
func (m *Manager) IndentUnit() string {
	if m.DetectIndentChar() == '\t' {
		return "\t"
	}
	return strings.Repeat(" ", m.cfg.TabWidth)
}

// CalculateIndent returns the indentation for a new line opened at
// pos. The base is the current line's indentation; it deepens by one
// unit when the text before pos ends with an opening bracket or a
// colon. Returns the empty string when auto-indent is disabled.
func (m *Manager) CalculateIndent(pos ByteOffset) string {
	if !m.cfg.AutoIndent {
		return ""
	}

	point := m.buf.OffsetToPoint(pos)
	base := m.LineIndent(point.Line)

	prefix := m.buf.TextRange(m.buf.LineStartOffset(point.Line), pos)
	trimmed := strings.TrimRight(prefix, " \t")
	if len(trimmed) > 0 {
		switch trimmed[len(trimmed)-1] {
		case '{', '[', '(', ':':
			return base + m.IndentUnit()
		}
	}
	return base
}

// ShouldDecreaseIndent reports whether typing ch at pos should first
// pull the line back one indentation level. That is the case for a
// closing bracket typed while everything before pos on the line is
// whitespace.
func (m *Manager) ShouldDecreaseIndent(pos ByteOffset, ch rune) bool {
	if !m.cfg.AutoIndent || !match.IsCloseBracket(ch) {
		return false
	}

	point := m.buf.OffsetToPoint(pos)
	prefix := m.buf.TextRange(m.buf.LineStartOffset(point.Line), pos)
	if len(prefix) == 0 {
		return false
	}
	return strings.Trim(prefix, " \t") == ""
}

// DecreasedIndent returns the line's indentation reduced by one
// level. An indent shallower than one level reduces to nothing.
func (m *Manager) DecreasedIndent(line uint32) string {
	ws := m.LineIndent(line)
	if len(ws) == 0 {
		return ws
	}

	if ws[0] == '\t' {
		return ws[1:]
	}

	cut := m.cfg.TabWidth
	if cut > len(ws) {
		cut = len(ws)
	}
	for i := 0; i < cut; i++ {
		if ws[i] != ' ' {
			cut = i
			break
		}
	}
	return ws[cut:]
}

// PairIndents returns the indentation for the two lines created when
// a bracket pair is expanded across lines. The closing line aligns to
// the nearest full level at or below the current line; the content
// line sits one level deeper.
func (m *Manager) PairIndents(line uint32) (content, closing string) {
	tw := m.cfg.TabWidth
	closingWidth := (m.IndentWidth(line) / tw) * tw
	return m.renderIndent(closingWidth + tw), m.renderIndent(closingWidth)
}

// SmartDedentSpan returns the byte range a backspace at pos should
// remove to land on the previous indentation stop. It applies only
// when everything before pos on the line is spaces.
func (m *Manager) SmartDedentSpan(pos ByteOffset) (buffer.Range, bool) {
	if !m.cfg.SmartDedent {
		return buffer.Range{}, false
	}

	point := m.buf.OffsetToPoint(pos)
	lineStart := m.buf.LineStartOffset(point.Line)
	prefix := m.buf.TextRange(lineStart, pos)
	if len(prefix) == 0 || strings.Trim(prefix, " ") != "" {
		return buffer.Range{}, false
	}

	target := ((len(prefix) - 1) / m.cfg.TabWidth) * m.cfg.TabWidth
	return buffer.Range{Start: lineStart + ByteOffset(target), End: pos}, true
}

// renderIndent builds an indent of the given column width using the
// detected indentation character.
func (m *Manager) renderIndent(width int) string {
	if m.DetectIndentChar() == '\t' {
		return strings.Repeat("\t", width/m.cfg.TabWidth)
	}
	return strings.Repeat(" ", width)
}

// leadingWhitespace returns the run of spaces and tabs opening s.
func leadingWhitespace(s string) string {
	for i, r := range s {
		if r != ' ' && r != '\t' {
			return s[:i]
		}
	}
	return s
}
