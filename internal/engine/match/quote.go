package match

import (
	"github.com/dshills/textstorm/internal/config"
	"github.com/dshills/textstorm/internal/engine/buffer"
)

// QuoteMatcher resolves quote pairs and drives quote typing assists
// for a single buffer. All quote reasoning is confined to a single
// line.
type QuoteMatcher struct {
	buf buffer.TextBuffer
	cfg config.Editor
}

// NewQuoteMatcher creates a matcher over buf using the given editor
// configuration.
func NewQuoteMatcher(buf buffer.TextBuffer, cfg config.Editor) *QuoteMatcher {
	return &QuoteMatcher{buf: buf, cfg: cfg}
}

// SetConfig replaces the editor configuration.
func (m *QuoteMatcher) SetConfig(cfg config.Editor) {
	m.cfg = cfg
}

// FindMatching resolves the quote adjacent to pos and returns the
// offset of its counterpart on the same line. The rune ending at pos
// is checked before the rune starting at pos. Direction follows
// parity: a quote preceded by an even number of unescaped quotes on
// its line opens a string and matches forward, an odd one closes and
// matches backward.
func (m *QuoteMatcher) FindMatching(pos ByteOffset) (ByteOffset, bool) {
	quote, at, ok := m.quoteAt(pos)
	if !ok {
		return 0, false
	}
	return m.matchFrom(at, quote)
}

// FindPair resolves the quote adjacent to pos and returns both ends
// of its pair in normalized order.
func (m *QuoteMatcher) FindPair(pos ByteOffset) (Pair, bool) {
	quote, at, ok := m.quoteAt(pos)
	if !ok {
		return Pair{}, false
	}
	other, ok := m.matchFrom(at, quote)
	if !ok {
		return Pair{}, false
	}
	if at < other {
		return Pair{Open: at, Close: other}, true
	}
	return Pair{Open: other, Close: at}, true
}

// ShouldAutoClose reports whether typing the quote ch at pos should
// also insert a second ch. Auto-close requires that pos is outside any
// string on the line and that the adjacent runes are not alphanumeric;
// a preceding backslash also suppresses it.
func (m *QuoteMatcher) ShouldAutoClose(pos ByteOffset, ch rune) bool {
	if !m.cfg.AutoCloseQuotes || !IsQuote(ch) {
		return false
	}
	if m.insideString(pos, ch) {
		return false
	}
	if next, size := m.buf.RuneAt(pos); size > 0 && isAlphanumeric(next) {
		return false
	}
	if prev, size := m.buf.RuneBefore(pos); size > 0 && (isAlphanumeric(prev) || prev == '\\') {
		return false
	}
	return true
}

// ShouldSkipClosing reports whether typing the quote ch at pos should
// move the caret over an identical quote already in the buffer. That
// is the case when pos sits inside a string and the rune at pos would
// close it.
func (m *QuoteMatcher) ShouldSkipClosing(pos ByteOffset, ch rune) bool {
	if !m.cfg.AutoCloseQuotes || !IsQuote(ch) {
		return false
	}
	next, size := m.buf.RuneAt(pos)
	if size == 0 || next != ch {
		return false
	}
	return m.insideString(pos, ch)
}

// ShouldDeletePair reports whether a backspace at pos sits between a
// quote and an identical quote, in which case both are removed
// together.
func (m *QuoteMatcher) ShouldDeletePair(pos ByteOffset) bool {
	if !m.cfg.AutoCloseQuotes {
		return false
	}
	prev, size := m.buf.RuneBefore(pos)
	if size == 0 || !IsQuote(prev) {
		return false
	}
	next, nsize := m.buf.RuneAt(pos)
	return nsize > 0 && next == prev
}

// WrapSelection surrounds the selected text with the given quote and
// reports whether it acted. Empty selections and non-quote characters
// are rejected.
func (m *QuoteMatcher) WrapSelection(text string, quote rune) (string, bool) {
	if !m.cfg.AutoCloseQuotes || !IsQuote(quote) || text == "" {
		return "", false
	}
	return string(quote) + text + string(quote), true
}

// quoteAt finds the quote adjacent to pos, preferring the rune that
// ends at pos.
func (m *QuoteMatcher) quoteAt(pos ByteOffset) (rune, ByteOffset, bool) {
	if r, size := m.buf.RuneBefore(pos); size > 0 && IsQuote(r) {
		return r, pos - ByteOffset(size), true
	}
	if r, size := m.buf.RuneAt(pos); size > 0 && IsQuote(r) {
		return r, pos, true
	}
	return 0, 0, false
}

// matchFrom finds the counterpart of the quote at offset at within its
// line.
func (m *QuoteMatcher) matchFrom(at ByteOffset, quote rune) (ByteOffset, bool) {
	line := m.buf.OffsetToPoint(at).Line
	lineStart := m.buf.LineStartOffset(line)
	text := m.buf.LineText(line)
	rel := int(at - lineStart)

	if countUnescaped(text[:rel], quote)%2 == 0 {
		off, ok := nextUnescaped(text, rel+1, quote)
		if !ok {
			return 0, false
		}
		return lineStart + ByteOffset(off), true
	}

	off, ok := lastUnescaped(text[:rel], quote)
	if !ok {
		return 0, false
	}
	return lineStart + ByteOffset(off), true
}

// insideString reports whether pos is preceded by an odd number of
// unescaped ch quotes on its line.
func (m *QuoteMatcher) insideString(pos ByteOffset, ch rune) bool {
	line := m.buf.OffsetToPoint(pos).Line
	lineStart := m.buf.LineStartOffset(line)
	text := m.buf.LineText(line)
	rel := int(pos - lineStart)
	if rel > len(text) {
		rel = len(text)
	}
	return countUnescaped(text[:rel], ch)%2 != 0
}

// countUnescaped counts unescaped occurrences of quote in s.
func countUnescaped(s string, quote rune) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if rune(s[i]) == quote && !escapedAt(s, i) {
			n++
		}
	}
	return n
}

// nextUnescaped finds the first unescaped occurrence of quote in s at
// or after byte index from.
func nextUnescaped(s string, from int, quote rune) (int, bool) {
	for i := from; i < len(s); i++ {
		if rune(s[i]) == quote && !escapedAt(s, i) {
			return i, true
		}
	}
	return 0, false
}

// lastUnescaped finds the last unescaped occurrence of quote in s.
func lastUnescaped(s string, quote rune) (int, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if rune(s[i]) == quote && !escapedAt(s, i) {
			return i, true
		}
	}
	return 0, false
}

// escapedAt reports whether the character at byte index i is preceded
// by a backslash.
func escapedAt(s string, i int) bool {
	return i > 0 && s[i-1] == '\\'
}

// IsQuote reports whether r is a quote the matcher understands.
func IsQuote(r rune) bool {
	switch r {
	case '"', '\'', '`':
		return true
	}
	return false
}
