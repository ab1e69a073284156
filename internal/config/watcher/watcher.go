// Package watcher reloads configuration when the file on disk changes.
//
// The watcher observes the directory containing the config file rather
// than the file itself; editors often replace the file on save, and a
// directory watch sees the replacement as a create event. Change bursts
// are debounced so a single save triggers a single reload.
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/textstorm/internal/config"
	"github.com/dshills/textstorm/internal/config/loader"
)

// DefaultDebounce is the quiet period required after the last file
// event before a reload runs.
const DefaultDebounce = 100 * time.Millisecond

// Handler receives the freshly loaded configuration after a reload.
type Handler func(cfg config.Config)

// Watcher watches a config file and notifies handlers on change.
type Watcher struct {
	loader   *loader.TOMLLoader
	fsw      *fsnotify.Watcher
	path     string
	debounce time.Duration

	mu       sync.Mutex
	handlers []Handler
	closed   bool

	closeCh chan struct{}
	wg      sync.WaitGroup
	errs    chan error
}

// New creates a watcher for the loader's config path using
// DefaultDebounce.
func New(l *loader.TOMLLoader) (*Watcher, error) {
	return NewWithDebounce(l, DefaultDebounce)
}

// NewWithDebounce creates a watcher with an explicit debounce window.
// The directory containing the config file must exist; the file itself
// may not, in which case the first write to it triggers a reload.
func NewWithDebounce(l *loader.TOMLLoader, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	dir := filepath.Dir(l.Path())
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	w := &Watcher{
		loader:   l,
		fsw:      fsw,
		path:     filepath.Clean(l.Path()),
		debounce: debounce,
		closeCh:  make(chan struct{}),
		errs:     make(chan error, 8),
	}

	w.wg.Add(1)
	go w.watchLoop()

	return w, nil
}

// OnReload registers a handler called after each successful reload.
// Handlers run on the watch goroutine and should return quickly.
func (w *Watcher) OnReload(h Handler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, h)
}

// Errors returns load and watch errors. The channel is buffered;
// errors are dropped when no one is receiving.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Close stops watching. It is safe to call multiple times.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	close(w.closeCh)
	err := w.fsw.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) watchLoop() {
	defer w.wg.Done()

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timerC:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			w.reload()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.sendError(err)

		case <-w.closeCh:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := w.loader.Load()
	if err != nil {
		w.sendError(err)
		return
	}

	w.mu.Lock()
	handlers := make([]Handler, len(w.handlers))
	copy(handlers, w.handlers)
	w.mu.Unlock()

	for _, h := range handlers {
		safeCallHandler(h, cfg)
	}
}

// safeCallHandler keeps a panicking handler from killing the watch
// loop.
func safeCallHandler(h Handler, cfg config.Config) {
	defer func() {
		_ = recover()
	}()
	h(cfg)
}

func (w *Watcher) sendError(err error) {
	select {
	case w.errs <- err:
	default:
	}
}
