package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/textstorm/internal/config"
	"github.com/dshills/textstorm/internal/input/key"
	"github.com/dshills/textstorm/internal/renderer/backend"
)

// newTestEditor builds an editor with a quiet logger and a null
// backend ready for Run.
func newTestEditor(t *testing.T, opts Options) (*Editor, *backend.Null) {
	t.Helper()

	if opts.LogLevel == "" {
		opts.LogLevel = "error"
	}
	ed, err := New(opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(ed.Shutdown)

	null := backend.NewNull(40, 10)
	if err := ed.SetBackend(null); err != nil {
		t.Fatalf("SetBackend failed: %v", err)
	}
	return ed, null
}

func postRunes(n *backend.Null, s string) {
	for _, r := range s {
		n.PostEvent(backend.Event{Type: backend.EventKey, Key: key.NewRuneEvent(r, key.ModNone)})
	}
}

func postChord(n *backend.Null, r rune, mods key.Modifier) {
	n.PostEvent(backend.Event{Type: backend.EventKey, Key: key.NewRuneEvent(r, mods)})
}

func postQuit(n *backend.Null) {
	postChord(n, 'q', key.ModCtrl)
}

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestNewDefaults(t *testing.T) {
	ed, _ := newTestEditor(t, Options{})

	if ed.Document() == nil || !ed.Document().IsScratch() {
		t.Error("expected a scratch document")
	}
	if ed.Coordinator() == nil {
		t.Error("expected a coordinator")
	}
	if ed.Metrics() == nil {
		t.Error("expected metrics")
	}
	if ed.Logger() == nil {
		t.Error("expected a logger")
	}
	if ed.IsRunning() {
		t.Error("expected editor not running before Run")
	}
	if ed.Config().Editor.TabWidth != 4 {
		t.Errorf("expected default tab width 4, got %d", ed.Config().Editor.TabWidth)
	}
}

func TestNewWithFile(t *testing.T) {
	path := writeFixture(t, "open.txt", "hello\nworld\n")

	ed, _ := newTestEditor(t, Options{File: path})

	if ed.Document().Content() != "hello\nworld\n" {
		t.Errorf("unexpected content %q", ed.Document().Content())
	}
	if ed.Document().Name != "open.txt" {
		t.Errorf("unexpected name %q", ed.Document().Name)
	}
}

func TestNewReadOnly(t *testing.T) {
	path := writeFixture(t, "ro.txt", "locked")

	ed, _ := newTestEditor(t, Options{File: path, ReadOnly: true})

	if !ed.Document().ReadOnly {
		t.Error("expected read-only document")
	}
}

func TestNewWithConfigFile(t *testing.T) {
	path := writeFixture(t, "config.toml", "[editor]\ntab_width = 8\n")

	ed, _ := newTestEditor(t, Options{ConfigPath: path})

	if ed.Config().Editor.TabWidth != 8 {
		t.Errorf("expected tab width 8 from file, got %d", ed.Config().Editor.TabWidth)
	}
}

func TestNewWithBadConfig(t *testing.T) {
	path := writeFixture(t, "config.toml", "[editor]\ntab_width = -1\n")

	_, err := New(Options{ConfigPath: path, LogLevel: "error"})
	if err == nil {
		t.Fatal("expected error for invalid config")
	}
}

func TestRunWithoutBackend(t *testing.T) {
	ed, err := New(Options{LogLevel: "error"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer ed.Shutdown()

	if err := ed.Run(); !errors.Is(err, ErrNoBackend) {
		t.Errorf("expected ErrNoBackend, got %v", err)
	}
}

func TestRunQuitChord(t *testing.T) {
	ed, null := newTestEditor(t, Options{})

	postRunes(null, "hi")
	postQuit(null)

	if err := ed.Run(); !errors.Is(err, ErrQuit) {
		t.Fatalf("expected ErrQuit, got %v", err)
	}

	if ed.Document().Content() != "hi" {
		t.Errorf("expected typed text in document, got %q", ed.Document().Content())
	}
	if got := null.Line(0); got != "hi" {
		t.Errorf("expected screen line %q, got %q", "hi", got)
	}
	x, y, visible := null.CursorPosition()
	if !visible || x != 2 || y != 0 {
		t.Errorf("expected cursor at (2,0) visible, got (%d,%d) %v", x, y, visible)
	}
	if ed.IsRunning() {
		t.Error("expected editor stopped after quit")
	}
}

func TestRunStatusLine(t *testing.T) {
	ed, null := newTestEditor(t, Options{})

	postRunes(null, "ab")
	postQuit(null)

	if err := ed.Run(); !errors.Is(err, ErrQuit) {
		t.Fatalf("expected ErrQuit, got %v", err)
	}

	status := null.Line(9)
	if !strings.Contains(status, "untitled") {
		t.Errorf("expected document name in status, got %q", status)
	}
	if !strings.Contains(status, "[+]") {
		t.Errorf("expected modified marker in status, got %q", status)
	}
	if !strings.Contains(status, "Ln 1, Col 3") {
		t.Errorf("expected caret position in status, got %q", status)
	}
}

func TestRunSaveChord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.txt")
	ed, null := newTestEditor(t, Options{File: path})

	postRunes(null, "ok")
	postChord(null, 's', key.ModCtrl)
	postQuit(null)

	if err := ed.Run(); !errors.Is(err, ErrQuit) {
		t.Fatalf("expected ErrQuit, got %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected file written: %v", err)
	}
	if string(content) != "ok" {
		t.Errorf("expected saved content %q, got %q", "ok", content)
	}
	if ed.Document().Modified() {
		t.Error("expected document unmodified after save")
	}
	if !strings.Contains(null.Line(9), "saved.txt") {
		t.Errorf("expected file name in status, got %q", null.Line(9))
	}
	if strings.Contains(null.Line(9), "[+]") {
		t.Errorf("expected modified marker cleared, got %q", null.Line(9))
	}
	if ed.Metrics().Snapshot().SaveCount != 1 {
		t.Errorf("expected 1 save recorded, got %d", ed.Metrics().Snapshot().SaveCount)
	}
}

func TestRunSaveReadOnlyKeepsRunning(t *testing.T) {
	path := writeFixture(t, "ro.txt", "locked")
	ed, null := newTestEditor(t, Options{File: path, ReadOnly: true})

	postChord(null, 's', key.ModCtrl)
	postQuit(null)

	if err := ed.Run(); !errors.Is(err, ErrQuit) {
		t.Fatalf("expected ErrQuit, got %v", err)
	}
	if ed.Metrics().Snapshot().SaveCount != 0 {
		t.Error("expected no save recorded for read-only document")
	}
}

func TestRunMouseSetsCaret(t *testing.T) {
	path := writeFixture(t, "two.txt", "hello\nworld")
	ed, null := newTestEditor(t, Options{File: path})

	null.PostEvent(backend.Event{Type: backend.EventMouse, MouseX: 2, MouseY: 1, Button: backend.ButtonLeft})
	null.PostEvent(backend.Event{Type: backend.EventMouse, MouseX: 2, MouseY: 1, Button: backend.ButtonNone})
	postQuit(null)

	if err := ed.Run(); !errors.Is(err, ErrQuit) {
		t.Fatalf("expected ErrQuit, got %v", err)
	}

	if got := ed.Coordinator().Caret(); got != 8 {
		t.Errorf("expected caret at offset 8, got %d", got)
	}
	x, y, visible := null.CursorPosition()
	if !visible || x != 2 || y != 1 {
		t.Errorf("expected cursor at (2,1) visible, got (%d,%d) %v", x, y, visible)
	}
}

func TestRunDragSelectsAndQuoteWraps(t *testing.T) {
	path := writeFixture(t, "drag.txt", "hello world")
	ed, null := newTestEditor(t, Options{File: path})

	// Press at the start, drag to the end of the first word, release,
	// then type a quote to wrap the selection.
	null.PostEvent(backend.Event{Type: backend.EventMouse, MouseX: 0, MouseY: 0, Button: backend.ButtonLeft})
	null.PostEvent(backend.Event{Type: backend.EventMouse, MouseX: 5, MouseY: 0, Button: backend.ButtonLeft})
	null.PostEvent(backend.Event{Type: backend.EventMouse, MouseX: 5, MouseY: 0, Button: backend.ButtonNone})
	postRunes(null, `"`)
	postQuit(null)

	if err := ed.Run(); !errors.Is(err, ErrQuit) {
		t.Fatalf("expected ErrQuit, got %v", err)
	}

	if got := ed.Document().Content(); got != `"hello" world` {
		t.Errorf("expected wrapped content, got %q", got)
	}
	if ed.Selection() != nil {
		t.Error("expected selection cleared after typing")
	}
}

func TestRunDoubleClickSelectsWord(t *testing.T) {
	path := writeFixture(t, "dbl.txt", "hello world")
	ed, null := newTestEditor(t, Options{File: path})

	press := backend.Event{Type: backend.EventMouse, MouseX: 2, MouseY: 0, Button: backend.ButtonLeft}
	release := backend.Event{Type: backend.EventMouse, MouseX: 2, MouseY: 0, Button: backend.ButtonNone}
	null.PostEvent(press)
	null.PostEvent(release)
	null.PostEvent(press)
	null.PostEvent(release)
	postRunes(null, `"`)
	postQuit(null)

	if err := ed.Run(); !errors.Is(err, ErrQuit) {
		t.Fatalf("expected ErrQuit, got %v", err)
	}

	if got := ed.Document().Content(); got != `"hello" world` {
		t.Errorf("expected word wrapped in quotes, got %q", got)
	}
}

func TestRunWheelScrollsViewport(t *testing.T) {
	var lines []string
	for i := 0; i < 30; i++ {
		lines = append(lines, "line")
	}
	path := writeFixture(t, "long.txt", strings.Join(lines, "\n"))
	ed, null := newTestEditor(t, Options{File: path})

	null.PostEvent(backend.Event{Type: backend.EventMouse, Button: backend.WheelDown})
	postQuit(null)

	if err := ed.Run(); !errors.Is(err, ErrQuit) {
		t.Fatalf("expected ErrQuit, got %v", err)
	}
	if ed.topLine != wheelScrollLines {
		t.Errorf("expected viewport scrolled to line %d, got %d", wheelScrollLines, ed.topLine)
	}
}

func TestRunResize(t *testing.T) {
	ed, null := newTestEditor(t, Options{})

	postRunes(null, "x")
	null.Resize(20, 5)
	postQuit(null)

	if err := ed.Run(); !errors.Is(err, ErrQuit) {
		t.Fatalf("expected ErrQuit, got %v", err)
	}
	if got := null.Line(0); got != "x" {
		t.Errorf("expected text redrawn after resize, got %q", got)
	}
}

func TestRunWakeupAppliesPendingConfig(t *testing.T) {
	ed, null := newTestEditor(t, Options{})

	cfg := config.Default()
	cfg.Editor.TabWidth = 8
	cfg.Log.Level = "error"
	ed.mu.Lock()
	ed.pendingCfg = &cfg
	ed.mu.Unlock()

	null.PostEvent(backend.Event{Type: backend.EventWakeup})
	postQuit(null)

	if err := ed.Run(); !errors.Is(err, ErrQuit) {
		t.Fatalf("expected ErrQuit, got %v", err)
	}

	if ed.Config().Editor.TabWidth != 8 {
		t.Errorf("expected reloaded tab width 8, got %d", ed.Config().Editor.TabWidth)
	}
	if ed.Metrics().Snapshot().ReloadCount != 1 {
		t.Errorf("expected 1 reload recorded, got %d", ed.Metrics().Snapshot().ReloadCount)
	}
}

func TestShutdownStopsRun(t *testing.T) {
	ed, null := newTestEditor(t, Options{})

	errc := make(chan error, 1)
	go func() { errc <- ed.Run() }()

	deadline := time.Now().Add(2 * time.Second)
	for !ed.IsRunning() {
		if time.Now().After(deadline) {
			t.Fatal("editor never started")
		}
		time.Sleep(time.Millisecond)
	}

	if err := ed.SetBackend(null); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("expected ErrAlreadyRunning from SetBackend, got %v", err)
	}
	if err := ed.Run(); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("expected ErrAlreadyRunning from second Run, got %v", err)
	}

	ed.Shutdown()

	select {
	case err := <-errc:
		if err != nil {
			t.Errorf("expected clean stop, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Shutdown")
	}

	if ed.IsRunning() {
		t.Error("expected editor stopped")
	}

	// Shutdown is idempotent.
	ed.Shutdown()
}

func TestRunUnhandledKeyCounted(t *testing.T) {
	ed, null := newTestEditor(t, Options{})

	// A bare F-key style chord no keymap entry covers.
	postChord(null, 'z', key.ModMeta)
	postQuit(null)

	if err := ed.Run(); !errors.Is(err, ErrQuit) {
		t.Fatalf("expected ErrQuit, got %v", err)
	}
	if ed.Metrics().Snapshot().InputUnhandled == 0 {
		t.Error("expected unhandled input recorded")
	}
}
