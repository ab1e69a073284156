package script

import (
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/textstorm/internal/dispatcher"
)

// IndentFunc is the global function a rule script must define. It is
// called as indent(line, base, tab_width) and returns the new indent
// width in columns, or nil to keep the built-in width.
const IndentFunc = "indent"

// Engine hosts a Lua indent rule and answers indent queries from the
// dispatcher.
//
// gopher-lua's LState is not goroutine-safe. The mutex serializes
// access from Go code; Lua execution itself is single-threaded.
type Engine struct {
	mu     sync.Mutex
	L      *lua.LState
	loaded bool
	closed bool
	errs   chan error
}

var _ dispatcher.IndentRule = (*Engine)(nil)

// NewEngine creates a sandboxed engine with no rule loaded.
func NewEngine() *Engine {
	L := lua.NewState(lua.Options{
		SkipOpenLibs: true,
	})
	openSafeLibraries(L)
	stripUnsafeGlobals(L)

	return &Engine{
		L:    L,
		errs: make(chan error, 8),
	}
}

// openSafeLibraries opens only the standard libraries a rule needs.
// io, os, debug, and package stay closed.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// stripUnsafeGlobals removes the base-library loaders that could pull
// arbitrary code into the state.
func stripUnsafeGlobals(L *lua.LState) {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// LoadFile executes a rule script from disk. The script must leave a
// global indent function behind.
func (e *Engine) LoadFile(path string) error {
	return e.load(func() error { return e.L.DoFile(path) })
}

// LoadString executes rule source directly.
func (e *Engine) LoadString(code string) error {
	return e.load(func() error { return e.L.DoString(code) })
}

func (e *Engine) load(run func() error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrEngineClosed
	}
	if err := withRecovery(run); err != nil {
		return err
	}

	if e.L.GetGlobal(IndentFunc).Type() != lua.LTFunction {
		return fmt.Errorf("%s: %w", IndentFunc, ErrNoIndentRule)
	}
	e.loaded = true
	return nil
}

// withRecovery executes a function with panic recovery.
func withRecovery(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// Eval asks the loaded rule for an indent width. It declines when no
// rule is loaded, when the rule returns nil or a negative number, or
// when the call fails. Failures are reported on Errors.
func (e *Engine) Eval(line string, base, tabWidth int) (int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || !e.loaded {
		return 0, false
	}

	fn := e.L.GetGlobal(IndentFunc)
	if fn.Type() != lua.LTFunction {
		return 0, false
	}

	e.L.Push(fn)
	e.L.Push(lua.LString(line))
	e.L.Push(lua.LNumber(base))
	e.L.Push(lua.LNumber(tabWidth))

	var callErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				callErr = fmt.Errorf("lua panic: %v", r)
			}
		}()
		callErr = e.L.PCall(3, 1, nil)
	}()
	if callErr != nil {
		e.sendError(callErr)
		return 0, false
	}

	ret := e.L.Get(-1)
	e.L.Pop(1)

	num, ok := ret.(lua.LNumber)
	if !ok {
		return 0, false
	}
	width := int(num)
	if width < 0 {
		return 0, false
	}
	return width, true
}

// Loaded returns true once a rule script has been installed.
func (e *Engine) Loaded() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loaded
}

// Errors reports rule call failures. Sends never block; an undrained
// channel drops them.
func (e *Engine) Errors() <-chan error {
	return e.errs
}

// IsClosed returns true if the engine has been closed.
func (e *Engine) IsClosed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

// Close releases the Lua state. Close is idempotent.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.L.Close()
	e.closed = true
	return nil
}

func (e *Engine) sendError(err error) {
	select {
	case e.errs <- err:
	default:
	}
}
