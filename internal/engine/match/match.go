package match

import (
	"unicode"

	"github.com/dshills/textstorm/internal/engine/buffer"
)

// ByteOffset is a position in the buffer, re-exported for
// convenience.
type ByteOffset = buffer.ByteOffset

// Pair is a matched pair of delimiter offsets, normalized so that
// Open < Close.
type Pair struct {
	Open  ByteOffset
	Close ByteOffset
}

func isAlphanumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
