// Package app wires the editing engine, the input plumbing, and the
// terminal backend into a runnable editor and owns its event loop.
package app

import (
	"errors"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/dshills/textstorm/internal/config"
	"github.com/dshills/textstorm/internal/config/loader"
	"github.com/dshills/textstorm/internal/config/watcher"
	"github.com/dshills/textstorm/internal/dispatcher"
	"github.com/dshills/textstorm/internal/engine/buffer"
	"github.com/dshills/textstorm/internal/input"
	"github.com/dshills/textstorm/internal/input/keymap"
	"github.com/dshills/textstorm/internal/input/mouse"
	"github.com/dshills/textstorm/internal/renderer/backend"
	"github.com/dshills/textstorm/internal/script"
)

// Editor is the central coordinator for the shell. It owns the open
// document, routes backend events through the translator to the
// dispatcher, and renders the result.
type Editor struct {
	mu sync.RWMutex

	opts Options
	cfg  config.Config

	logger  *Logger
	logFile io.Closer
	metrics *Metrics

	doc        *Document
	coord      *dispatcher.Coordinator
	translator *input.Translator
	tracker    *mouse.Tracker

	backend backend.Backend
	watcher *watcher.Watcher
	scripts *script.Engine

	// pendingCfg carries a config swap from the watcher goroutine to
	// the event loop, applied on the next wakeup.
	pendingCfg *config.Config

	// Viewport state. topLine is the first buffer line on screen.
	topLine uint32

	// Linear selection owned by the shell. The dispatcher consumes it
	// for quote wrapping; everything else here just deselects.
	selAnchor buffer.ByteOffset
	selecting bool
	selection *buffer.Range

	running  atomic.Bool
	done     chan struct{}
	stopOnce sync.Once
}

// Options configures the editor.
type Options struct {
	// ConfigPath is the path to the TOML configuration file. Empty
	// runs on defaults without a watcher.
	ConfigPath string

	// KeymapPath is the path to a YAML keymap overlay. Empty keeps
	// the default bindings.
	KeymapPath string

	// LogLevel overrides the configured log level when non-empty.
	LogLevel string

	// LogFile overrides the configured log path when non-empty.
	LogFile string

	// File is the file to open. Empty opens a scratch buffer.
	File string

	// ReadOnly blocks saving.
	ReadOnly bool
}

// New creates an editor with the given options. The terminal backend
// is attached separately with SetBackend.
func New(opts Options) (*Editor, error) {
	e := &Editor{
		opts:    opts,
		metrics: NewMetrics(),
		done:    make(chan struct{}),
	}

	if err := e.bootstrap(); err != nil {
		e.closeComponents()
		return nil, err
	}
	return e, nil
}

// bootstrap initializes components in dependency order.
func (e *Editor) bootstrap() error {
	cfg, ld, err := e.loadConfig()
	if err != nil {
		return err
	}
	e.cfg = cfg

	if err := e.openLog(); err != nil {
		return err
	}
	e.logger.WithComponent("app").Debug("configuration loaded (tab_width=%d)", cfg.Editor.TabWidth)

	if err := e.openDocument(); err != nil {
		return err
	}

	e.coord = dispatcher.NewCoordinator(e.doc.Buffer(), e.cfg.Editor)

	km, err := keymap.LoadOrDefault(e.opts.KeymapPath)
	if err != nil {
		return NewOperationError("load keymap", e.opts.KeymapPath, err)
	}
	e.translator = input.NewTranslator(km)
	e.tracker = mouse.NewTracker(mouse.DefaultConfig())

	e.loadIndentRule()

	if ld != nil {
		if err := e.startWatcher(ld); err != nil {
			// Live reload is a convenience; run without it.
			e.logger.WithComponent("config").Warn("config watcher unavailable: %v", err)
		}
	}

	return nil
}

// loadConfig loads the configuration file, falling back to defaults
// when no path is given. The returned loader is nil when nothing can
// be watched.
func (e *Editor) loadConfig() (config.Config, *loader.TOMLLoader, error) {
	if e.opts.ConfigPath == "" {
		return config.Default(), nil, nil
	}

	ld := loader.NewTOMLLoader(e.opts.ConfigPath)
	cfg, err := ld.Load()
	if err != nil {
		return config.Config{}, nil, NewOperationError("load config", e.opts.ConfigPath, err)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, NewOperationError("validate config", e.opts.ConfigPath, err)
	}
	return cfg, ld, nil
}

// openLog builds the logger from config and option overrides.
func (e *Editor) openLog() error {
	lcfg := DefaultLoggerConfig()
	lcfg.Level = ParseLogLevel(e.cfg.Log.Level)
	if e.opts.LogLevel != "" {
		lcfg.Level = ParseLogLevel(e.opts.LogLevel)
	}

	path := e.cfg.Log.File
	if e.opts.LogFile != "" {
		path = e.opts.LogFile
	}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, filePerm)
		if err != nil {
			return NewOperationError("open log", path, err)
		}
		lcfg.Output = f
		e.logFile = f
	}

	e.logger = NewLogger(lcfg)
	return nil
}

// openDocument opens the requested file or a scratch buffer.
func (e *Editor) openDocument() error {
	if e.opts.File == "" {
		e.doc = NewScratchDocument()
	} else {
		doc, err := LoadDocument(e.opts.File)
		if err != nil {
			return err
		}
		e.doc = doc
	}
	e.doc.ReadOnly = e.opts.ReadOnly

	e.logger.WithComponent("app").Info("opened %s (%d bytes)", e.doc.Name, e.doc.Buffer().Len())
	return nil
}

// loadIndentRule attaches the scripted indent rule when configured.
// Script problems are logged and the built-in rules keep working.
func (e *Editor) loadIndentRule() {
	path := e.cfg.Script.IndentRulePath
	if path == "" {
		return
	}

	eng := script.NewEngine()
	if err := eng.LoadFile(path); err != nil {
		e.logger.WithComponent("script").Warn("indent rule %s: %v", path, err)
		_ = eng.Close()
		return
	}
	e.scripts = eng
	e.coord.SetIndentRule(eng)
	e.logger.WithComponent("script").Info("indent rule loaded from %s", path)
}

// startWatcher begins watching the config file. Reloads are handed to
// the event loop through pendingCfg and a backend wakeup.
func (e *Editor) startWatcher(ld *loader.TOMLLoader) error {
	w, err := watcher.New(ld)
	if err != nil {
		return err
	}
	e.watcher = w

	w.OnReload(func(cfg config.Config) {
		if err := cfg.Validate(); err != nil {
			e.logger.WithComponent("config").Warn("reload rejected: %v", err)
			return
		}
		e.mu.Lock()
		e.pendingCfg = &cfg
		b := e.backend
		e.mu.Unlock()
		if b != nil {
			b.Wakeup()
		}
	})

	go func() {
		for err := range w.Errors() {
			e.logger.WithComponent("config").Warn("watch: %v", err)
		}
	}()

	return nil
}

// SetBackend attaches the terminal backend. Must be called before
// Run.
func (e *Editor) SetBackend(b backend.Backend) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running.Load() {
		return ErrAlreadyRunning
	}
	e.backend = b
	return nil
}

// Run initializes the backend and blocks in the event loop until quit
// or Shutdown. Returns ErrQuit on a user-requested exit.
func (e *Editor) Run() error {
	if !e.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer e.running.Store(false)

	e.mu.RLock()
	b := e.backend
	e.mu.RUnlock()
	if b == nil {
		return ErrNoBackend
	}

	if err := b.Init(); err != nil {
		return NewOperationError("init backend", "", err)
	}
	defer b.Shutdown()

	e.logger.WithComponent("app").Info("running")
	e.render()

	return e.loop()
}

// Shutdown stops the event loop and releases components. Safe to call
// multiple times and from any goroutine.
func (e *Editor) Shutdown() {
	e.stopOnce.Do(func() {
		close(e.done)

		e.mu.RLock()
		b := e.backend
		e.mu.RUnlock()
		if b != nil {
			b.Wakeup()
		}

		e.closeComponents()
		e.logger.WithComponent("app").Info("shutdown")
	})
}

// closeComponents releases the watcher, the script engine, and the
// log file.
func (e *Editor) closeComponents() {
	if e.watcher != nil {
		_ = e.watcher.Close()
		e.watcher = nil
	}
	if e.scripts != nil {
		_ = e.scripts.Close()
		e.scripts = nil
	}
	if e.logFile != nil {
		_ = e.logFile.Close()
		e.logFile = nil
	}
}

// IsRunning returns true while Run is executing.
func (e *Editor) IsRunning() bool {
	return e.running.Load()
}

// Document returns the open document.
func (e *Editor) Document() *Document {
	return e.doc
}

// Coordinator returns the dispatch coordinator.
func (e *Editor) Coordinator() *dispatcher.Coordinator {
	return e.coord
}

// Config returns the active configuration snapshot.
func (e *Editor) Config() config.Config {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cfg
}

// Logger returns the editor's logger.
func (e *Editor) Logger() *Logger {
	return e.logger
}

// Metrics returns the editor's metrics.
func (e *Editor) Metrics() *Metrics {
	return e.metrics
}

// Selection returns the shell's linear selection, or nil.
func (e *Editor) Selection() *buffer.Range {
	if e.selection == nil {
		return nil
	}
	sel := *e.selection
	return &sel
}

// applyPendingConfig installs a config swap left by the watcher.
func (e *Editor) applyPendingConfig() bool {
	e.mu.Lock()
	cfg := e.pendingCfg
	e.pendingCfg = nil
	if cfg != nil {
		e.cfg = *cfg
	}
	e.mu.Unlock()

	if cfg == nil {
		return false
	}

	e.coord.SetConfig(cfg.Editor)
	e.logger.SetLevel(ParseLogLevel(cfg.Log.Level))
	e.metrics.RecordConfigReload()
	e.logger.WithComponent("config").Info("configuration reloaded (tab_width=%d)", cfg.Editor.TabWidth)
	return true
}

// saveDocument writes the document and reports the outcome on the
// status line's behalf via logs and the bell.
func (e *Editor) saveDocument() {
	err := e.doc.Save()
	switch {
	case err == nil:
		e.metrics.RecordSave()
		e.logger.WithComponent("app").Info("saved %s", e.doc.Path)
	case errors.Is(err, ErrNoPath):
		e.logger.WithComponent("app").Warn("cannot save an untitled buffer")
		e.beep()
	case errors.Is(err, ErrReadOnly):
		e.logger.WithComponent("app").Warn("%s is read-only", e.doc.Name)
		e.beep()
	default:
		e.logger.WithComponent("app").Error("save failed: %v", err)
		e.beep()
	}
}

// beep sounds the bell when a backend is attached.
func (e *Editor) beep() {
	e.mu.RLock()
	b := e.backend
	e.mu.RUnlock()
	if b != nil {
		b.Beep()
	}
}
