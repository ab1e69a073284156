package backend

import (
	"testing"

	"github.com/dshills/textstorm/internal/input/key"
)

func TestNullSize(t *testing.T) {
	n := NewNull(80, 24)
	if err := n.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	w, h := n.Size()
	if w != 80 || h != 24 {
		t.Errorf("expected size (80, 24), got (%d, %d)", w, h)
	}
}

func TestNullSetCell(t *testing.T) {
	n := NewNull(80, 24)

	style := DefaultStyle().Bold()
	n.SetCell(10, 5, 'X', style)

	r, got := n.CellAt(10, 5)
	if r != 'X' || got != style {
		t.Errorf("CellAt(10, 5) = (%q, %+v)", r, got)
	}

	// Out of bounds writes are ignored; out of bounds reads are blank.
	n.SetCell(-1, 0, 'Y', style)
	n.SetCell(100, 0, 'Y', style)
	if r, got := n.CellAt(-1, 0); r != ' ' || got != DefaultStyle() {
		t.Errorf("out of bounds CellAt = (%q, %+v)", r, got)
	}
}

func TestNullLine(t *testing.T) {
	n := NewNull(20, 3)

	for i, r := range "hello" {
		n.SetCell(i, 1, r, DefaultStyle())
	}

	if got := n.Line(1); got != "hello" {
		t.Errorf("Line(1) = %q, want %q", got, "hello")
	}
	if got := n.Line(0); got != "" {
		t.Errorf("Line(0) = %q, want empty", got)
	}
	if got := n.Line(-1); got != "" {
		t.Errorf("Line(-1) = %q, want empty", got)
	}
}

func TestNullClear(t *testing.T) {
	n := NewNull(10, 2)

	n.SetCell(3, 0, 'X', DefaultStyle().Reverse())
	n.Clear()

	if r, style := n.CellAt(3, 0); r != ' ' || style != DefaultStyle() {
		t.Errorf("cell after Clear = (%q, %+v)", r, style)
	}
}

func TestNullCursor(t *testing.T) {
	n := NewNull(10, 10)

	n.ShowCursor(3, 4)
	x, y, visible := n.CursorPosition()
	if x != 3 || y != 4 || !visible {
		t.Errorf("cursor = (%d, %d, %v)", x, y, visible)
	}

	n.HideCursor()
	if _, _, visible := n.CursorPosition(); visible {
		t.Error("cursor still visible after HideCursor")
	}
}

func TestNullEvents(t *testing.T) {
	n := NewNull(10, 10)

	n.PostEvent(Event{Type: EventKey, Key: key.NewRuneEvent('x', key.ModNone)})
	n.Wakeup()

	ev := n.PollEvent()
	if ev.Type != EventKey || ev.Key.Rune != 'x' {
		t.Errorf("first event = %+v", ev)
	}
	if ev := n.PollEvent(); ev.Type != EventWakeup {
		t.Errorf("second event = %+v", ev)
	}
}

func TestNullResize(t *testing.T) {
	n := NewNull(80, 24)

	n.Resize(40, 10)
	if w, h := n.Size(); w != 40 || h != 10 {
		t.Errorf("size after Resize = (%d, %d)", w, h)
	}

	ev := n.PollEvent()
	if ev.Type != EventResize || ev.Width != 40 || ev.Height != 10 {
		t.Errorf("resize event = %+v", ev)
	}
}
