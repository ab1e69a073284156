package key

import "testing"

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{KeyEscape, "Esc"},
		{KeyEnter, "Enter"},
		{KeyBackspace, "BS"},
		{KeyUp, "Up"},
		{KeyRune, "Rune"},
		{Key(99), "Key(99)"},
	}
	for _, tt := range tests {
		if got := tt.key.String(); got != tt.want {
			t.Errorf("String(%d) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestKeyFromName(t *testing.T) {
	tests := []struct {
		name string
		want Key
	}{
		{"esc", KeyEscape},
		{"Escape", KeyEscape},
		{"ENTER", KeyEnter},
		{"cr", KeyEnter},
		{"bs", KeyBackspace},
		{"up", KeyUp},
		{" down ", KeyDown},
		{"bogus", KeyNone},
	}
	for _, tt := range tests {
		if got := KeyFromName(tt.name); got != tt.want {
			t.Errorf("KeyFromName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestKeyClassification(t *testing.T) {
	if !KeyEscape.IsSpecial() {
		t.Error("Escape is special")
	}
	if KeyRune.IsSpecial() {
		t.Error("Rune is not special")
	}
	if !KeyLeft.IsArrow() {
		t.Error("Left is an arrow")
	}
	if KeyTab.IsArrow() {
		t.Error("Tab is not an arrow")
	}
}

func TestModifierOperations(t *testing.T) {
	m := ModNone.With(ModCtrl).With(ModShift)
	if !m.HasCtrl() || !m.HasShift() || m.HasAlt() {
		t.Errorf("modifiers = %v", m)
	}
	if m.Without(ModCtrl).HasCtrl() {
		t.Error("Without must remove the modifier")
	}
	if !ModNone.IsEmpty() {
		t.Error("ModNone is empty")
	}
	if got := (ModCtrl | ModAlt | ModShift).String(); got != "C-A-S" {
		t.Errorf("String() = %q, want C-A-S", got)
	}
}
