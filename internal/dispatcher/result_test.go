package dispatcher

import (
	"errors"
	"testing"

	"github.com/dshills/textstorm/internal/engine/buffer"
)

func TestResultConstructors(t *testing.T) {
	if r := Success(); !r.IsOK() || r.IsError() {
		t.Errorf("Success() = %+v, want ok", r)
	}
	if r := NoOp(); r.Status != StatusNoOp || r.IsError() {
		t.Errorf("NoOp() = %+v, want no-op", r)
	}

	err := errors.New("boom")
	r := Error(err)
	if !r.IsError() || !errors.Is(r.Error, err) {
		t.Errorf("Error() = %+v, want wrapped error", r)
	}
	r = Errorf("offset %d", 42)
	if !r.IsError() || r.Error.Error() != "offset 42" {
		t.Errorf("Errorf() = %+v", r)
	}
}

func TestResultBuilders(t *testing.T) {
	group := NewEditGroup([]buffer.Change{{Type: buffer.ChangeInsert}})
	r := Success().WithCaret(7).WithEdits(group).WithRedrawLines(2, 3)

	if r.Caret != 7 {
		t.Errorf("caret = %d, want 7", r.Caret)
	}
	if !r.HasEdits() {
		t.Error("expected edits")
	}
	if len(r.RedrawLines) != 2 {
		t.Errorf("redraw lines = %v, want [2 3]", r.RedrawLines)
	}
	if r.Redraw {
		t.Error("line-scoped redraw must not set the full flag")
	}

	if full := r.WithRedraw(); !full.Redraw {
		t.Error("WithRedraw must set the full flag")
	}
}

func TestEditGroupIdentity(t *testing.T) {
	a := NewEditGroup([]buffer.Change{{Type: buffer.ChangeInsert}})
	b := NewEditGroup([]buffer.Change{{Type: buffer.ChangeInsert}})
	if a.ID == b.ID {
		t.Error("edit groups must get distinct identifiers")
	}
	if a.IsEmpty() {
		t.Error("group with changes is not empty")
	}
	if !NewEditGroup(nil).IsEmpty() {
		t.Error("group without changes is empty")
	}
}

func TestEventKindString(t *testing.T) {
	tests := []struct {
		kind EventKind
		want string
	}{
		{EventChar, "char"},
		{EventEnter, "enter"},
		{EventBackspace, "backspace"},
		{EventMouseDown, "mouse-down"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("String(%d) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
