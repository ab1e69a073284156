package cursor

import "sort"

// TransformOffset updates an offset after an edit.
// Returns the new offset position.
//
// Transformation rules:
//   - If edit is entirely before offset: adjust offset by the edit's delta
//   - If edit starts at or after offset: offset unchanged
//   - If edit spans offset: move offset to end of new text
func TransformOffset(offset ByteOffset, edit Edit) ByteOffset {
	// Edit is entirely before offset: adjust by delta
	if edit.Range.End <= offset {
		oldLen := edit.Range.End - edit.Range.Start
		newLen := ByteOffset(len(edit.NewText))
		return offset - oldLen + newLen
	}

	// Edit starts at or after offset: no change needed
	if edit.Range.Start >= offset {
		return offset
	}

	// Edit spans offset: move to end of new text
	return edit.Range.Start + ByteOffset(len(edit.NewText))
}

// TransformOffsets updates a slice of offsets after an edit, in place.
func TransformOffsets(offsets []ByteOffset, edit Edit) {
	for i, offset := range offsets {
		offsets[i] = TransformOffset(offset, edit)
	}
}

// SortOffsetsDescending sorts offsets in descending order in place.
// Batched edits are applied in this order: an edit at a higher offset
// never shifts a lower offset that has not been processed yet.
func SortOffsetsDescending(offsets []ByteOffset) {
	sort.Slice(offsets, func(i, j int) bool {
		return offsets[i] > offsets[j]
	})
}

// OffsetsInDescendingOrder returns true if offsets are strictly
// descending, the required application order for batched edits.
func OffsetsInDescendingOrder(offsets []ByteOffset) bool {
	for i := 1; i < len(offsets); i++ {
		if offsets[i] >= offsets[i-1] {
			return false
		}
	}
	return true
}
