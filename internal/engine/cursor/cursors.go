package cursor

import (
	"sort"

	"github.com/dshills/textstorm/internal/engine/buffer"
)

// ByteOffset is an alias for buffer.ByteOffset for convenience.
type ByteOffset = buffer.ByteOffset

// Range is an alias for buffer.Range for convenience.
type Range = buffer.Range

// Edit is an alias for buffer.Edit for convenience.
type Edit = buffer.Edit

// CursorSet tracks the secondary edit points that accompany the caller's
// primary cursor. The primary offset is owned by the caller: operations
// that need it take it as an argument and return its transformed value,
// it is never stored here. Secondaries are kept sorted and unique, and
// never coincide with the primary.
type CursorSet struct {
	secondaries []ByteOffset
}

// NewCursorSet creates an empty, inactive cursor set.
func NewCursorSet() *CursorSet {
	return &CursorSet{}
}

// Active returns true if at least one secondary cursor exists.
func (cs *CursorSet) Active() bool {
	return len(cs.secondaries) > 0
}

// Count returns the number of secondary cursors.
func (cs *CursorSet) Count() int {
	return len(cs.secondaries)
}

// Secondaries returns a copy of the secondary offsets in ascending order.
// The returned slice is safe to modify without affecting the CursorSet.
func (cs *CursorSet) Secondaries() []ByteOffset {
	result := make([]ByteOffset, len(cs.secondaries))
	copy(result, cs.secondaries)
	return result
}

// AllPositions returns the primary offset followed by all secondaries in
// ascending order. For an inactive set this is just the primary.
func (cs *CursorSet) AllPositions(primary ByteOffset) []ByteOffset {
	result := make([]ByteOffset, 0, len(cs.secondaries)+1)
	result = append(result, primary)
	result = append(result, cs.secondaries...)
	return result
}

// Contains returns true if a secondary cursor exists at the given offset.
func (cs *CursorSet) Contains(pos ByteOffset) bool {
	i := sort.Search(len(cs.secondaries), func(i int) bool {
		return cs.secondaries[i] >= pos
	})
	return i < len(cs.secondaries) && cs.secondaries[i] == pos
}

// Add adds a secondary cursor at the given offset, keeping the set sorted.
// Offsets already held by the set or equal to the primary are refused so
// that no two edit points ever share a position. Returns true if a cursor
// was added.
func (cs *CursorSet) Add(primary, pos ByteOffset) bool {
	if pos < 0 {
		pos = 0
	}
	if pos == primary || cs.Contains(pos) {
		return false
	}

	i := sort.Search(len(cs.secondaries), func(i int) bool {
		return cs.secondaries[i] >= pos
	})
	cs.secondaries = append(cs.secondaries, 0)
	copy(cs.secondaries[i+1:], cs.secondaries[i:])
	cs.secondaries[i] = pos
	return true
}

// Clear removes all secondary cursors, deactivating the set.
// Clearing an already-inactive set is a no-op.
func (cs *CursorSet) Clear() {
	cs.secondaries = nil
}

// Reconcile restores the uniqueness invariant after an edit may have
// collapsed cursors onto one another: secondaries that now coincide with
// the primary or with each other are dropped. An emptied set becomes
// inactive.
func (cs *CursorSet) Reconcile(primary ByteOffset) {
	if len(cs.secondaries) == 0 {
		return
	}

	sort.Slice(cs.secondaries, func(i, j int) bool {
		return cs.secondaries[i] < cs.secondaries[j]
	})

	out := cs.secondaries[:0]
	for _, pos := range cs.secondaries {
		if pos == primary {
			continue
		}
		if len(out) > 0 && out[len(out)-1] == pos {
			continue
		}
		out = append(out, pos)
	}
	cs.secondaries = out
	if len(cs.secondaries) == 0 {
		cs.secondaries = nil
	}
}

// Clamp clamps all secondaries to the valid range [0, maxOffset] and
// reconciles against the primary.
func (cs *CursorSet) Clamp(primary, maxOffset ByteOffset) {
	for i, pos := range cs.secondaries {
		if pos < 0 {
			cs.secondaries[i] = 0
		} else if pos > maxOffset {
			cs.secondaries[i] = maxOffset
		}
	}
	cs.Reconcile(primary)
}

// Clone returns a deep copy of the cursor set.
func (cs *CursorSet) Clone() *CursorSet {
	clone := &CursorSet{}
	if len(cs.secondaries) > 0 {
		clone.secondaries = make([]ByteOffset, len(cs.secondaries))
		copy(clone.secondaries, cs.secondaries)
	}
	return clone
}

// Equals returns true if two cursor sets hold the same secondaries.
func (cs *CursorSet) Equals(other *CursorSet) bool {
	if other == nil {
		return false
	}
	if len(cs.secondaries) != len(other.secondaries) {
		return false
	}
	for i, pos := range cs.secondaries {
		if other.secondaries[i] != pos {
			return false
		}
	}
	return true
}
