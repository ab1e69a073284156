package keymap

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/textstorm/internal/input/key"
)

func TestDefaultBindings(t *testing.T) {
	km := Default()

	tests := []struct {
		ev   key.Event
		want Action
	}{
		{key.NewSpecialEvent(key.KeyUp, key.ModAlt|key.ModShift), ActionAddCursorAbove},
		{key.NewSpecialEvent(key.KeyDown, key.ModAlt|key.ModShift), ActionAddCursorBelow},
		{key.NewSpecialEvent(key.KeyEscape, key.ModNone), ActionClearCursors},
	}
	for _, tt := range tests {
		got, ok := km.Lookup(tt.ev)
		if !ok || got != tt.want {
			t.Errorf("Lookup(%v) = (%q, %v), want %q", tt.ev, got, ok, tt.want)
		}
	}

	if _, ok := km.Lookup(key.NewRuneEvent('x', key.ModNone)); ok {
		t.Error("unbound chord must not resolve")
	}
}

func TestNewRejectsBadBindings(t *testing.T) {
	if _, err := New("bad", []Binding{{Keys: "not a key", Action: ActionClearCursors}}); err == nil {
		t.Error("expected an error for an unparsable chord")
	}
	if _, err := New("bad", []Binding{{Keys: "C-d", Action: "bogus.action"}}); err == nil {
		t.Error("expected an error for an unknown action")
	}
}

func TestMergeOverridesChords(t *testing.T) {
	base := Default()
	user, err := New("user", []Binding{
		{Keys: "C-A-Up", Action: ActionAddCursorAbove},
		{Keys: "Esc", Action: ActionAddCursorBelow},
	})
	if err != nil {
		t.Fatal(err)
	}

	merged := base.Merge(user)

	// New chord added.
	if a, ok := merged.Lookup(key.NewSpecialEvent(key.KeyUp, key.ModCtrl|key.ModAlt)); !ok || a != ActionAddCursorAbove {
		t.Errorf("merged chord = (%q, %v)", a, ok)
	}
	// Existing chord rebound.
	if a, _ := merged.Lookup(key.NewSpecialEvent(key.KeyEscape, key.ModNone)); a != ActionAddCursorBelow {
		t.Errorf("rebound Esc = %q", a)
	}
	// Base chord kept.
	if _, ok := merged.Lookup(key.NewSpecialEvent(key.KeyDown, key.ModAlt|key.ModShift)); !ok {
		t.Error("base binding lost in merge")
	}
}

func TestLoadReader(t *testing.T) {
	src := `
name: custom
bindings:
  - keys: ctrl+alt+up
    action: cursor.addAbove
    description: Add cursor above
  - keys: C-g
    action: cursor.clear
`
	km, err := LoadReader(strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadReader() error = %v", err)
	}
	if km.Name != "custom" {
		t.Errorf("name = %q, want custom", km.Name)
	}

	if a, ok := km.Lookup(key.NewSpecialEvent(key.KeyUp, key.ModCtrl|key.ModAlt)); !ok || a != ActionAddCursorAbove {
		t.Errorf("Lookup = (%q, %v)", a, ok)
	}
	if a, ok := km.Lookup(key.NewRuneEvent('g', key.ModCtrl)); !ok || a != ActionClearCursors {
		t.Errorf("Lookup = (%q, %v)", a, ok)
	}
}

func TestLoadReaderRejectsInvalid(t *testing.T) {
	if _, err := LoadReader(strings.NewReader("bindings: [")); err == nil {
		t.Error("expected a YAML error")
	}
	bad := `
bindings:
  - keys: C-d
    action: no.such.action
`
	if _, err := LoadReader(strings.NewReader(bad)); err == nil {
		t.Error("expected an unknown-action error")
	}
}

func TestLoadOrDefault(t *testing.T) {
	// Empty path keeps the defaults.
	km, err := LoadOrDefault("")
	if err != nil {
		t.Fatalf("LoadOrDefault(\"\") error = %v", err)
	}
	if _, ok := km.Lookup(key.NewSpecialEvent(key.KeyEscape, key.ModNone)); !ok {
		t.Error("defaults missing")
	}

	// Missing file keeps the defaults.
	km, err = LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadOrDefault(missing) error = %v", err)
	}
	if _, ok := km.Lookup(key.NewSpecialEvent(key.KeyEscape, key.ModNone)); !ok {
		t.Error("defaults missing")
	}

	// A real file layers over the defaults.
	path := filepath.Join(t.TempDir(), "keymap.yaml")
	src := []byte("bindings:\n  - keys: C-g\n    action: cursor.clear\n")
	if err := os.WriteFile(path, src, 0o644); err != nil {
		t.Fatal(err)
	}
	km, err = LoadOrDefault(path)
	if err != nil {
		t.Fatalf("LoadOrDefault(file) error = %v", err)
	}
	if a, ok := km.Lookup(key.NewRuneEvent('g', key.ModCtrl)); !ok || a != ActionClearCursors {
		t.Errorf("user binding = (%q, %v)", a, ok)
	}
	if _, ok := km.Lookup(key.NewSpecialEvent(key.KeyUp, key.ModAlt|key.ModShift)); !ok {
		t.Error("default binding lost")
	}
}
