package match

import (
	"unicode/utf8"

	"github.com/dshills/textstorm/internal/config"
	"github.com/dshills/textstorm/internal/engine/buffer"
)

// BracketMatcher resolves bracket pairs and drives bracket typing
// assists for a single buffer.
type BracketMatcher struct {
	buf buffer.TextBuffer
	cfg config.Editor
}

// NewBracketMatcher creates a matcher over buf using the given editor
// configuration.
func NewBracketMatcher(buf buffer.TextBuffer, cfg config.Editor) *BracketMatcher {
	return &BracketMatcher{buf: buf, cfg: cfg}
}

// SetConfig replaces the editor configuration.
func (m *BracketMatcher) SetConfig(cfg config.Editor) {
	m.cfg = cfg
}

// FindMatching resolves the bracket adjacent to pos and returns the
// offset of its counterpart. The rune ending at pos is checked before
// the rune starting at pos, so a caret sitting just past a bracket
// still resolves it.
func (m *BracketMatcher) FindMatching(pos ByteOffset) (ByteOffset, bool) {
	bracket, at, ok := m.bracketAt(pos)
	if !ok {
		return 0, false
	}
	return m.scanFrom(at, bracket)
}

// FindPair resolves the bracket adjacent to pos and returns both ends
// of its pair in normalized order.
func (m *BracketMatcher) FindPair(pos ByteOffset) (Pair, bool) {
	bracket, at, ok := m.bracketAt(pos)
	if !ok {
		return Pair{}, false
	}
	other, ok := m.scanFrom(at, bracket)
	if !ok {
		return Pair{}, false
	}
	if at < other {
		return Pair{Open: at, Close: other}, true
	}
	return Pair{Open: other, Close: at}, true
}

// ShouldAutoClose reports whether typing the opening bracket ch at pos
// should also insert its closing counterpart. Auto-close is suppressed
// when the rune at pos is alphanumeric.
func (m *BracketMatcher) ShouldAutoClose(pos ByteOffset, ch rune) bool {
	if !m.cfg.AutoCloseBrackets || !IsOpenBracket(ch) {
		return false
	}
	next, size := m.buf.RuneAt(pos)
	if size == 0 {
		return true
	}
	return !isAlphanumeric(next)
}

// ShouldSkipClosing reports whether typing the closing bracket ch at
// pos should move the caret over an identical closer already in the
// buffer instead of inserting a new one.
func (m *BracketMatcher) ShouldSkipClosing(pos ByteOffset, ch rune) bool {
	if !m.cfg.AutoCloseBrackets || !IsCloseBracket(ch) {
		return false
	}
	next, size := m.buf.RuneAt(pos)
	return size > 0 && next == ch
}

// ShouldDeletePair reports whether a backspace at pos sits between an
// opening bracket and its closing counterpart, in which case both
// sides are removed together.
func (m *BracketMatcher) ShouldDeletePair(pos ByteOffset) bool {
	if !m.cfg.AutoCloseBrackets {
		return false
	}
	prev, size := m.buf.RuneBefore(pos)
	if size == 0 || !IsOpenBracket(prev) {
		return false
	}
	closing, _ := ClosingFor(prev)
	next, nsize := m.buf.RuneAt(pos)
	return nsize > 0 && next == closing
}

// bracketAt finds the bracket adjacent to pos, preferring the rune
// that ends at pos.
func (m *BracketMatcher) bracketAt(pos ByteOffset) (rune, ByteOffset, bool) {
	if r, size := m.buf.RuneBefore(pos); size > 0 && IsBracket(r) {
		return r, pos - ByteOffset(size), true
	}
	if r, size := m.buf.RuneAt(pos); size > 0 && IsBracket(r) {
		return r, pos, true
	}
	return 0, 0, false
}

// scanFrom runs a depth-counted scan for the counterpart of bracket,
// which sits at offset at.
func (m *BracketMatcher) scanFrom(at ByteOffset, bracket rune) (ByteOffset, bool) {
	counterpart, forward, ok := matchingBracketFor(bracket)
	if !ok {
		return 0, false
	}

	text := m.buf.TextRange(0, m.buf.Len())
	if forward {
		off, found := scanForward(text, int(at), bracket, counterpart)
		return ByteOffset(off), found
	}
	off, found := scanBackward(text, int(at), counterpart, bracket)
	return ByteOffset(off), found
}

// scanForward finds the closing bracket matching the opener at byte
// index at.
func scanForward(text string, at int, open, close rune) (int, bool) {
	depth := 1
	for i := at + utf8.RuneLen(open); i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		switch r {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i, true
			}
		}
		i += size
	}
	return 0, false
}

// scanBackward finds the opening bracket matching the closer at byte
// index at.
func scanBackward(text string, at int, open, close rune) (int, bool) {
	depth := 1
	for i := at; i > 0; {
		r, size := utf8.DecodeLastRuneInString(text[:i])
		i -= size
		switch r {
		case close:
			depth++
		case open:
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// IsBracket reports whether r is a bracket the matcher understands.
func IsBracket(r rune) bool {
	switch r {
	case '(', ')', '[', ']', '{', '}':
		return true
	}
	return false
}

// IsOpenBracket reports whether r opens a bracket pair.
func IsOpenBracket(r rune) bool {
	switch r {
	case '(', '[', '{':
		return true
	}
	return false
}

// IsCloseBracket reports whether r closes a bracket pair.
func IsCloseBracket(r rune) bool {
	switch r {
	case ')', ']', '}':
		return true
	}
	return false
}

// ClosingFor returns the closing counterpart of an opening bracket.
func ClosingFor(r rune) (rune, bool) {
	if !IsOpenBracket(r) {
		return 0, false
	}
	counterpart, _, _ := matchingBracketFor(r)
	return counterpart, true
}

// matchingBracketFor returns the counterpart of a bracket and whether
// the search for it runs forward.
func matchingBracketFor(r rune) (rune, bool, bool) {
	switch r {
	case '(':
		return ')', true, true
	case '[':
		return ']', true, true
	case '{':
		return '}', true, true
	case ')':
		return '(', false, true
	case ']':
		return '[', false, true
	case '}':
		return '{', false, true
	}
	return 0, false, false
}
