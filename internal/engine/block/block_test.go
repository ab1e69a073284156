package block

import (
	"testing"

	"github.com/dshills/textstorm/internal/engine/buffer"
	"github.com/dshills/textstorm/internal/engine/cursor"
	"github.com/dshills/textstorm/internal/renderer/highlight"
)

func pt(line, col uint32) buffer.Point {
	return buffer.Point{Line: line, Column: col}
}

func TestSelectionStartUpdate(t *testing.T) {
	s := NewSelection(buffer.NewBufferFromString(""))

	s.Start(pt(3, 10))
	if !s.Active() {
		t.Fatal("expected selection to be active after Start")
	}

	s.Update(pt(1, 2))
	region, ok := s.Region()
	if !ok {
		t.Fatal("expected a region while active")
	}

	expected := Region{StartLine: 1, EndLine: 3, StartCol: 2, EndCol: 10}
	if region != expected {
		t.Errorf("region = %+v, want %+v", region, expected)
	}
}

func TestSelectionInactive(t *testing.T) {
	s := NewSelection(buffer.NewBufferFromString("abc"))

	if s.Active() {
		t.Error("new selection should be inactive")
	}
	if _, ok := s.Region(); ok {
		t.Error("inactive selection has no region")
	}
	if got := s.SelectedText(); got != nil {
		t.Errorf("inactive selection has no text, got %v", got)
	}
	if got := s.LineRanges(); got != nil {
		t.Errorf("inactive selection has no ranges, got %v", got)
	}
	if got := s.HighlightSpans(); got != nil {
		t.Errorf("inactive selection has no spans, got %v", got)
	}

	// Update before Start is ignored.
	s.Update(pt(1, 1))
	if s.Active() {
		t.Error("Update must not activate a selection")
	}
}

func TestSelectionClearIdempotent(t *testing.T) {
	s := NewSelection(buffer.NewBufferFromString("abc"))
	s.Start(pt(0, 0))

	s.Clear()
	if s.Active() {
		t.Error("expected inactive after Clear")
	}
	s.Clear()
	if s.Active() {
		t.Error("expected Clear to stay inactive")
	}
}

func TestSelectedText(t *testing.T) {
	s := NewSelection(buffer.NewBufferFromString("alpha\nbrav\ncharlie"))
	s.Start(pt(0, 1))
	s.Update(pt(2, 4))

	got := s.SelectedText()
	expected := []string{"lph", "rav", "har"}
	if len(got) != len(expected) {
		t.Fatalf("expected %d lines, got %d", len(expected), len(got))
	}
	for i, want := range expected {
		if got[i] != want {
			t.Errorf("line %d = %q, want %q", i, got[i], want)
		}
	}
}

func TestSelectedTextClamped(t *testing.T) {
	s := NewSelection(buffer.NewBufferFromString("alpha\nab\ncharlie"))
	s.Start(pt(0, 3))
	s.Update(pt(2, 6))

	got := s.SelectedText()
	expected := []string{"ha", "", "rli"}
	if len(got) != len(expected) {
		t.Fatalf("expected %d lines, got %d", len(expected), len(got))
	}
	for i, want := range expected {
		if got[i] != want {
			t.Errorf("line %d = %q, want %q", i, got[i], want)
		}
	}
}

func TestSelectedTextZeroWidth(t *testing.T) {
	s := NewSelection(buffer.NewBufferFromString("ab\ncd"))
	s.Start(pt(0, 1))
	s.Update(pt(1, 1))

	got := s.SelectedText()
	if len(got) != 2 || got[0] != "" || got[1] != "" {
		t.Errorf("zero-width selection should yield empty strings, got %v", got)
	}
}

func TestSelectionSkipsLinesBeyondBuffer(t *testing.T) {
	s := NewSelection(buffer.NewBufferFromString("ab\ncd"))
	s.Start(pt(0, 0))
	s.Update(pt(5, 2))

	got := s.SelectedText()
	expected := []string{"ab", "cd"}
	if len(got) != len(expected) {
		t.Fatalf("expected %d lines, got %d", len(expected), len(got))
	}
	for i, want := range expected {
		if got[i] != want {
			t.Errorf("line %d = %q, want %q", i, got[i], want)
		}
	}
}

func TestLineRanges(t *testing.T) {
	s := NewSelection(buffer.NewBufferFromString("alpha\nab\ncharlie"))
	s.Start(pt(0, 3))
	s.Update(pt(2, 6))

	got := s.LineRanges()
	expected := []buffer.Range{
		{Start: 3, End: 5},
		{Start: 12, End: 15},
	}
	if len(got) != len(expected) {
		t.Fatalf("expected %d ranges, got %d: %v", len(expected), len(got), got)
	}
	for i, want := range expected {
		if got[i] != want {
			t.Errorf("range %d = %+v, want %+v", i, got[i], want)
		}
	}
}

func TestHighlightSpans(t *testing.T) {
	s := NewSelection(buffer.NewBufferFromString("alpha\nab\ncharlie"))
	s.Start(pt(0, 3))
	s.Update(pt(2, 6))

	spans := s.HighlightSpans()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	for _, span := range spans {
		if span.Category != highlight.CategoryBlockSelection {
			t.Errorf("expected block selection category, got %v", span.Category)
		}
	}
	if spans[0].Start != 3 || spans[0].End != 5 {
		t.Errorf("span 0 = %+v, want [3, 5)", spans[0])
	}
	if spans[1].Start != 12 || spans[1].End != 15 {
		t.Errorf("span 1 = %+v, want [12, 15)", spans[1])
	}
}

func TestCreateCursors(t *testing.T) {
	s := NewSelection(buffer.NewBufferFromString("alpha\nbravo\ncharl\ndelta"))
	s.Start(pt(0, 5))
	s.Update(pt(3, 5))

	cs := cursor.NewCursorSet()
	primary, ok := s.CreateCursors(cs)
	if !ok {
		t.Fatal("expected cursors from an active selection")
	}
	if primary != 5 {
		t.Errorf("primary = %d, want 5", primary)
	}

	secondaries := cs.Secondaries()
	expected := []buffer.ByteOffset{11, 17, 23}
	if len(secondaries) != len(expected) {
		t.Fatalf("expected %d secondaries, got %d: %v", len(expected), len(secondaries), secondaries)
	}
	for i, want := range expected {
		if secondaries[i] != want {
			t.Errorf("secondary %d = %d, want %d", i, secondaries[i], want)
		}
	}

	if s.Active() {
		t.Error("expected selection cleared after CreateCursors")
	}
}

func TestCreateCursorsClampsColumns(t *testing.T) {
	s := NewSelection(buffer.NewBufferFromString("abcdef\nab\nabcd"))
	s.Start(pt(0, 5))
	s.Update(pt(2, 5))

	cs := cursor.NewCursorSet()
	primary, ok := s.CreateCursors(cs)
	if !ok || primary != 5 {
		t.Fatalf("expected primary 5, got (%d, %v)", primary, ok)
	}

	secondaries := cs.Secondaries()
	expected := []buffer.ByteOffset{9, 14}
	if len(secondaries) != len(expected) {
		t.Fatalf("expected %d secondaries, got %v", len(expected), secondaries)
	}
	for i, want := range expected {
		if secondaries[i] != want {
			t.Errorf("secondary %d = %d, want %d", i, secondaries[i], want)
		}
	}
}

func TestCreateCursorsInactive(t *testing.T) {
	s := NewSelection(buffer.NewBufferFromString("abc"))

	cs := cursor.NewCursorSet()
	if _, ok := s.CreateCursors(cs); ok {
		t.Error("expected no cursors from an inactive selection")
	}
	if cs.Active() {
		t.Error("cursor set should be untouched")
	}
}

func TestCreateCursorsBeyondBuffer(t *testing.T) {
	s := NewSelection(buffer.NewBufferFromString("abc"))
	s.Start(pt(9, 0))
	s.Update(pt(9, 2))

	cs := cursor.NewCursorSet()
	if _, ok := s.CreateCursors(cs); ok {
		t.Error("expected no cursors when every line is beyond the buffer")
	}
	if s.Active() {
		t.Error("expected selection cleared even when nothing was placed")
	}
}
