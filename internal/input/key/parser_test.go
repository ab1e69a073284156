package key

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		want Event
	}{
		{"a", NewRuneEvent('a', ModNone)},
		{"A", NewRuneEvent('A', ModNone)},
		{"{", NewRuneEvent('{', ModNone)},
		{"Space", NewRuneEvent(' ', ModNone)},
		{"Esc", NewSpecialEvent(KeyEscape, ModNone)},
		{"enter", NewSpecialEvent(KeyEnter, ModNone)},
		{"C-d", NewRuneEvent('d', ModCtrl)},
		{"C-D", NewRuneEvent('d', ModCtrl)},
		{"A-S-Up", NewSpecialEvent(KeyUp, ModAlt|ModShift)},
		{"A-S-Down", NewSpecialEvent(KeyDown, ModAlt|ModShift)},
		{"Ctrl+Shift+p", NewRuneEvent('p', ModCtrl|ModShift)},
		{"alt+enter", NewSpecialEvent(KeyEnter, ModAlt)},
		{"C-Space", NewRuneEvent(' ', ModCtrl)},
	}
	for _, tt := range tests {
		got, err := Parse(tt.spec)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.spec, err)
			continue
		}
		if !got.Equals(tt.want) {
			t.Errorf("Parse(%q) = %#v, want %#v", tt.spec, got, tt.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse(""); !errors.Is(err, ErrEmptySpec) {
		t.Errorf("empty spec error = %v", err)
	}
	for _, spec := range []string{"X-d", "bogus", "C-bogus"} {
		if _, err := Parse(spec); !errors.Is(err, ErrInvalidSpec) {
			t.Errorf("Parse(%q) error = %v, want ErrInvalidSpec", spec, err)
		}
	}
}

func TestParseChordRoundTrip(t *testing.T) {
	for _, spec := range []string{"C-d", "A-S-Up", "Esc", "x", "Space"} {
		ev := MustParse(spec)
		if got := ev.Chord(); got != spec {
			t.Errorf("Chord(Parse(%q)) = %q", spec, got)
		}
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse must panic on an invalid spec")
		}
	}()
	MustParse("not a key")
}

func TestEventIsChar(t *testing.T) {
	tests := []struct {
		ev   Event
		want bool
	}{
		{NewRuneEvent('x', ModNone), true},
		{NewRuneEvent('X', ModShift), true},
		{NewRuneEvent('x', ModCtrl), false},
		{NewRuneEvent('x', ModAlt), false},
		{NewSpecialEvent(KeyEnter, ModNone), false},
	}
	for _, tt := range tests {
		if got := tt.ev.IsChar(); got != tt.want {
			t.Errorf("IsChar(%v) = %v, want %v", tt.ev, got, tt.want)
		}
	}
}

func TestEventChordFoldsShiftForRunes(t *testing.T) {
	ev := NewRuneEvent('A', ModShift)
	if got := ev.Chord(); got != "A" {
		t.Errorf("Chord() = %q, want %q", got, "A")
	}

	ev = NewSpecialEvent(KeyUp, ModShift)
	if got := ev.Chord(); got != "S-Up" {
		t.Errorf("Chord() = %q, want %q", got, "S-Up")
	}
}
