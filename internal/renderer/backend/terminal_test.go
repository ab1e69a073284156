package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/textstorm/internal/input/key"
)

func TestConvertKeyRunes(t *testing.T) {
	ev := convertKey(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))
	if !ev.IsRune() || ev.Rune != 'x' || !ev.Modifiers.IsEmpty() {
		t.Errorf("convertKey('x') = %+v", ev)
	}

	ev = convertKey(tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModAlt))
	if ev.Rune != 'n' || !ev.Modifiers.HasAlt() {
		t.Errorf("convertKey(alt+n) = %+v", ev)
	}
}

func TestConvertKeySpecials(t *testing.T) {
	tests := []struct {
		tk   tcell.Key
		mods tcell.ModMask
		want key.Event
	}{
		{tcell.KeyEscape, tcell.ModNone, key.NewSpecialEvent(key.KeyEscape, key.ModNone)},
		{tcell.KeyEnter, tcell.ModNone, key.NewSpecialEvent(key.KeyEnter, key.ModNone)},
		{tcell.KeyTab, tcell.ModNone, key.NewSpecialEvent(key.KeyTab, key.ModNone)},
		{tcell.KeyBackspace2, tcell.ModNone, key.NewSpecialEvent(key.KeyBackspace, key.ModNone)},
		{tcell.KeyDelete, tcell.ModNone, key.NewSpecialEvent(key.KeyDelete, key.ModNone)},
		{tcell.KeyUp, tcell.ModAlt | tcell.ModShift, key.NewSpecialEvent(key.KeyUp, key.ModAlt|key.ModShift)},
		{tcell.KeyDown, tcell.ModAlt | tcell.ModShift, key.NewSpecialEvent(key.KeyDown, key.ModAlt|key.ModShift)},
		{tcell.KeyLeft, tcell.ModNone, key.NewSpecialEvent(key.KeyLeft, key.ModNone)},
		{tcell.KeyRight, tcell.ModNone, key.NewSpecialEvent(key.KeyRight, key.ModNone)},
	}
	for _, tt := range tests {
		got := convertKey(tcell.NewEventKey(tt.tk, 0, tt.mods))
		if !got.Equals(tt.want) {
			t.Errorf("convertKey(%v) = %+v, want %+v", tt.tk, got, tt.want)
		}
	}
}

func TestConvertKeyCtrlChords(t *testing.T) {
	ev := convertKey(tcell.NewEventKey(tcell.KeyCtrlD, 0x04, tcell.ModCtrl))
	if ev.Rune != 'd' || !ev.Modifiers.HasCtrl() {
		t.Errorf("convertKey(ctrl-d) = %+v", ev)
	}
	if got := ev.Chord(); got != "C-d" {
		t.Errorf("Chord() = %q, want %q", got, "C-d")
	}

	ev = convertKey(tcell.NewEventKey(tcell.KeyCtrlSpace, 0, tcell.ModCtrl))
	if ev.Rune != ' ' || !ev.Modifiers.HasCtrl() {
		t.Errorf("convertKey(ctrl-space) = %+v", ev)
	}

	// Unmapped keys come back as the zero event.
	ev = convertKey(tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone))
	if ev.Key != key.KeyNone {
		t.Errorf("convertKey(F5) = %+v, want zero event", ev)
	}
}

func TestConvertEventMouse(t *testing.T) {
	got := convertEvent(tcell.NewEventMouse(12, 3, tcell.Button1, tcell.ModAlt|tcell.ModShift))
	if got.Type != EventMouse || got.MouseX != 12 || got.MouseY != 3 {
		t.Errorf("mouse event = %+v", got)
	}
	if got.Button != ButtonLeft || !got.Mods.HasAlt() || !got.Mods.HasShift() {
		t.Errorf("mouse button/mods = %+v", got)
	}

	got = convertEvent(tcell.NewEventMouse(0, 0, tcell.ButtonNone, tcell.ModNone))
	if got.Button != ButtonNone {
		t.Errorf("release button = %v, want ButtonNone", got.Button)
	}

	got = convertEvent(tcell.NewEventMouse(0, 0, tcell.WheelUp, tcell.ModNone))
	if got.Button != WheelUp {
		t.Errorf("wheel button = %v, want WheelUp", got.Button)
	}
}

func TestConvertEventResize(t *testing.T) {
	got := convertEvent(tcell.NewEventResize(100, 40))
	if got.Type != EventResize || got.Width != 100 || got.Height != 40 {
		t.Errorf("resize event = %+v", got)
	}
}

func TestConvertEventInterrupt(t *testing.T) {
	if got := convertEvent(tcell.NewEventInterrupt(nil)); got.Type != EventWakeup {
		t.Errorf("interrupt event = %+v", got)
	}
}

func TestConvertStyle(t *testing.T) {
	if got := convertStyle(DefaultStyle()); got != tcell.StyleDefault {
		t.Error("default style must convert to tcell.StyleDefault")
	}

	fg, _, attrs := convertStyle(DefaultStyle().WithForeground(ColorFromRGB(10, 20, 30)).Bold()).Decompose()
	if fg != tcell.NewRGBColor(10, 20, 30) {
		t.Errorf("foreground = %v", fg)
	}
	if attrs&tcell.AttrBold == 0 {
		t.Error("bold attribute lost in conversion")
	}

	_, bg, attrs := convertStyle(DefaultStyle().WithBackground(ColorFromIndex(3)).Underline().Reverse()).Decompose()
	if bg != tcell.PaletteColor(3) {
		t.Errorf("background = %v", bg)
	}
	if attrs&tcell.AttrUnderline == 0 || attrs&tcell.AttrReverse == 0 {
		t.Errorf("attributes = %v", attrs)
	}
}
