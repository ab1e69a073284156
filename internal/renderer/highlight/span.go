// Package highlight describes byte ranges the renderer draws with
// special styling.
package highlight

import (
	"sort"

	"github.com/dshills/textstorm/internal/engine/buffer"
)

// Category classifies what a span highlights.
type Category uint8

// Categories emitted by the editing core.
const (
	CategoryNone Category = iota

	// CategorySecondaryCursor marks the cell of a secondary caret.
	CategorySecondaryCursor

	// CategoryBlockSelection marks one line's slice of a rectangular
	// selection.
	CategoryBlockSelection

	// CategoryBracketMatch marks both ends of a matched bracket pair.
	CategoryBracketMatch

	// CategoryQuoteMatch marks both ends of a matched quote pair.
	CategoryQuoteMatch

	// CategoryCurrentLine marks the line holding the primary caret.
	CategoryCurrentLine
)

// String returns the dotted scope name for the category.
func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "unknown"
}

// categoryNames maps categories to their scope names.
var categoryNames = []string{
	CategoryNone:            "none",
	CategorySecondaryCursor: "cursor.secondary",
	CategoryBlockSelection:  "selection.block",
	CategoryBracketMatch:    "bracket.match",
	CategoryQuoteMatch:      "quote.match",
	CategoryCurrentLine:     "cursor.line",
}

// Span marks a byte range to draw with a category.
type Span struct {
	// Start is the first byte of the span.
	Start buffer.ByteOffset

	// End is one past the last byte. A zero-width span marks a caret
	// position rather than a text run.
	End buffer.ByteOffset

	// Category selects the styling.
	Category Category
}

// Len returns the span's byte length.
func (s Span) Len() buffer.ByteOffset {
	return s.End - s.Start
}

// IsCaret reports whether the span marks a bare position.
func (s Span) IsCaret() bool {
	return s.Start == s.End
}

// Contains reports whether the offset falls inside the span.
func (s Span) Contains(off buffer.ByteOffset) bool {
	return off >= s.Start && off < s.End
}

// SortSpans orders spans by start offset, then end offset, then
// category.
func SortSpans(spans []Span) {
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start < spans[j].Start
		}
		if spans[i].End != spans[j].End {
			return spans[i].End < spans[j].End
		}
		return spans[i].Category < spans[j].Category
	})
}
