package app

import (
	"time"
	"unicode"

	"github.com/dshills/textstorm/internal/dispatcher"
	"github.com/dshills/textstorm/internal/engine/buffer"
	"github.com/dshills/textstorm/internal/input/key"
	"github.com/dshills/textstorm/internal/input/mouse"
	"github.com/dshills/textstorm/internal/renderer/backend"
)

// wheelScrollLines is how far one wheel tick moves the viewport.
const wheelScrollLines = 3

// loop polls backend events until quit or shutdown.
func (e *Editor) loop() error {
	for {
		select {
		case <-e.done:
			return nil
		default:
		}

		ev := e.backend.PollEvent()
		if err := e.handleEvent(ev); err != nil {
			return err
		}
	}
}

// handleEvent routes one backend event. Only a quit request returns
// an error; everything else is logged and the loop continues.
func (e *Editor) handleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		return e.handleKey(ev.Key)
	case backend.EventMouse:
		e.handleMouse(ev)
		return nil
	case backend.EventResize:
		e.handleResize(ev)
		return nil
	case backend.EventWakeup:
		e.handleWakeup()
		return nil
	default:
		return nil
	}
}

// handleKey resolves shell chords first, then hands the key to the
// translator. Unhandled keys are counted and dropped.
func (e *Editor) handleKey(ev key.Event) error {
	e.metrics.RecordInput()

	switch ev.Chord() {
	case "C-q":
		e.logger.WithComponent("input").Debug("quit chord")
		return ErrQuit
	case "C-s":
		e.saveDocument()
		e.render()
		return nil
	}

	dev, ok := e.translator.TranslateKey(ev)
	if !ok {
		e.metrics.RecordUnhandled()
		e.logger.WithComponent("input").Debug("unhandled key %s", ev.Chord())
		return nil
	}

	// The typed character sees the shell's linear selection so a
	// quote press can wrap it.
	if dev.Kind == dispatcher.EventChar && e.selection != nil {
		sel := *e.selection
		dev.Selection = &sel
	}

	res := e.dispatch(dev)
	e.clearSelectionAfter(dev.Kind)
	if res.IsOK() {
		e.render()
	}
	return nil
}

// handleMouse classifies the raw report and routes the gesture.
// Wheel ticks scroll the viewport; left-button gestures reach the
// dispatcher; multi-clicks grow the linear selection.
func (e *Editor) handleMouse(ev backend.Event) {
	e.metrics.RecordInput()

	mev := e.tracker.Track(
		mouse.Position{X: ev.MouseX, Y: ev.MouseY},
		convertButton(ev.Button),
		ev.Mods,
		time.Now(),
	)

	if mev.Button.IsWheel() {
		delta := wheelScrollLines
		if mev.Button == mouse.WheelUp {
			delta = -delta
		}
		e.scrollBy(delta)
		e.renderScrolled()
		return
	}

	at := e.screenToBuffer(mev.Position)

	if mev.Action == mouse.ActionPress && mev.Button == mouse.ButtonLeft &&
		mev.Modifiers.IsEmpty() && mev.Clicks > 1 {
		e.selectAround(at, mev.Clicks)
		e.render()
		return
	}

	dev, ok := e.translator.TranslateMouse(mev, at)
	if !ok {
		e.metrics.RecordUnhandled()
		return
	}

	res := e.dispatch(dev)
	e.trackSelection(mev, res)
	if res.IsOK() {
		e.render()
	}
}

// handleResize redraws for the new dimensions.
func (e *Editor) handleResize(ev backend.Event) {
	e.logger.WithComponent("app").Debug("resize to %dx%d", ev.Width, ev.Height)
	e.render()
}

// handleWakeup applies pending work queued by other goroutines.
func (e *Editor) handleWakeup() {
	if e.applyPendingConfig() {
		e.render()
	}
}

// dispatch times one coordinator round trip and logs the outcome.
func (e *Editor) dispatch(dev dispatcher.Event) dispatcher.Result {
	timer := StartTimer()
	res := e.coord.Dispatch(dev)
	e.metrics.RecordDispatch(timer.Elapsed())

	if res.IsError() {
		e.logger.WithComponent("dispatch").Error("%s: %v", dev.Kind, res.Error)
		e.beep()
		return res
	}
	if res.HasEdits() {
		e.logger.WithComponent("dispatch").
			WithField("group", res.Group.ID).
			Debug("%s applied %d change(s)", dev.Kind, len(res.Group.Changes))
	}
	return res
}

// clearSelectionAfter drops the linear selection once an editing or
// cancel event has consumed it.
func (e *Editor) clearSelectionAfter(kind dispatcher.EventKind) {
	switch kind {
	case dispatcher.EventChar, dispatcher.EventEnter, dispatcher.EventTab,
		dispatcher.EventBackspace, dispatcher.EventDelete, dispatcher.EventEscape:
		e.selection = nil
		e.selecting = false
	}
}

// trackSelection maintains the shell's linear selection across a
// left-button gesture. Block selection and cursor spawning take
// priority; a plain press anchors, a plain drag extends.
func (e *Editor) trackSelection(mev mouse.Event, res dispatcher.Result) {
	switch mev.Action {
	case mouse.ActionPress:
		e.selection = nil
		if mev.Modifiers.IsEmpty() {
			e.selAnchor = res.Caret
			e.selecting = true
		} else {
			e.selecting = false
		}

	case mouse.ActionDrag:
		if !e.selecting || e.coord.Block().Active() {
			return
		}
		start, end := e.selAnchor, res.Caret
		if start > end {
			start, end = end, start
		}
		if start == end {
			e.selection = nil
			return
		}
		e.selection = &buffer.Range{Start: start, End: end}

	case mouse.ActionRelease:
		e.selecting = false
	}
}

// selectAround sets the linear selection to the word (double click)
// or the whole line (triple click) at the position.
func (e *Editor) selectAround(at buffer.Point, clicks int) {
	buf := e.doc.Buffer()

	var r buffer.Range
	if clicks == 2 {
		var ok bool
		r, ok = wordRangeAt(buf, buf.PointToOffset(at))
		if !ok {
			return
		}
	} else {
		r = buffer.Range{
			Start: buf.LineStartOffset(at.Line),
			End:   buf.LineEndOffset(at.Line),
		}
		if r.Start == r.End {
			return
		}
	}

	e.selection = &r
	e.selAnchor = r.Start
	e.coord.SetCaret(r.End)
}

// wordRangeAt expands around off to the surrounding word. Letters,
// digits, and underscores count as word runes.
func wordRangeAt(buf *buffer.Buffer, off buffer.ByteOffset) (buffer.Range, bool) {
	isWord := func(r rune) bool {
		return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
	}

	// Step back onto a word rune if the click landed just past one.
	start := off
	if r, _ := buf.RuneAt(start); !isWord(r) {
		if r, size := buf.RuneBefore(start); size > 0 && isWord(r) {
			start -= buffer.ByteOffset(size)
		} else {
			return buffer.Range{}, false
		}
	}

	for {
		r, size := buf.RuneBefore(start)
		if size == 0 || !isWord(r) {
			break
		}
		start -= buffer.ByteOffset(size)
	}

	end := start
	for {
		r, size := buf.RuneAt(end)
		if size == 0 || !isWord(r) {
			break
		}
		end += buffer.ByteOffset(size)
	}

	if start == end {
		return buffer.Range{}, false
	}
	return buffer.Range{Start: start, End: end}, true
}

// convertButton maps the backend's button code onto the mouse
// package's.
func convertButton(b backend.MouseButton) mouse.Button {
	switch b {
	case backend.ButtonLeft:
		return mouse.ButtonLeft
	case backend.ButtonMiddle:
		return mouse.ButtonMiddle
	case backend.ButtonRight:
		return mouse.ButtonRight
	case backend.WheelUp:
		return mouse.WheelUp
	case backend.WheelDown:
		return mouse.WheelDown
	default:
		return mouse.ButtonNone
	}
}
