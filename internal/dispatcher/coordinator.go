package dispatcher

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/textstorm/internal/config"
	"github.com/dshills/textstorm/internal/engine/block"
	"github.com/dshills/textstorm/internal/engine/buffer"
	"github.com/dshills/textstorm/internal/engine/cursor"
	"github.com/dshills/textstorm/internal/engine/indent"
	"github.com/dshills/textstorm/internal/engine/match"
	"github.com/dshills/textstorm/internal/renderer/highlight"
)

// IndentRule computes a custom indent width for the line opened by a
// newline. Implementations receive the text of the line being split,
// the width the built-in rules chose, and the configured tab width.
// Returning false keeps the built-in width.
type IndentRule interface {
	Eval(line string, base, tabWidth int) (int, bool)
}

// Coordinator routes input events to the editing engine. It owns the
// primary caret, the secondary cursor set, and the block selection,
// and decides which typing assist applies to each event.
//
// A Coordinator drives a single buffer and is not safe for concurrent
// use.
type Coordinator struct {
	buf      buffer.TextBuffer
	cfg      config.Editor
	primary  buffer.ByteOffset
	cursors  *cursor.CursorSet
	rect     *block.Selection
	brackets *match.BracketMatcher
	quotes   *match.QuoteMatcher
	indents  *indent.Manager
	rule     IndentRule
}

// NewCoordinator creates a coordinator over buf with the caret at the
// start of the buffer.
func NewCoordinator(buf buffer.TextBuffer, cfg config.Editor) *Coordinator {
	return &Coordinator{
		buf:      buf,
		cfg:      cfg,
		cursors:  cursor.NewCursorSet(),
		rect:     block.NewSelection(buf),
		brackets: match.NewBracketMatcher(buf, cfg),
		quotes:   match.NewQuoteMatcher(buf, cfg),
		indents:  indent.NewManager(buf, cfg),
	}
}

// SetConfig replaces the editor configuration on the coordinator and
// every component it drives.
func (c *Coordinator) SetConfig(cfg config.Editor) {
	c.cfg = cfg
	c.brackets.SetConfig(cfg)
	c.quotes.SetConfig(cfg)
	c.indents.SetConfig(cfg)
}

// SetIndentRule installs a scripted indent rule consulted on newline.
// A nil rule restores the built-in behavior.
func (c *Coordinator) SetIndentRule(rule IndentRule) {
	c.rule = rule
}

// Caret returns the primary cursor position.
func (c *Coordinator) Caret() buffer.ByteOffset {
	return c.primary
}

// SetCaret moves the primary cursor, clamped to the buffer.
func (c *Coordinator) SetCaret(pos buffer.ByteOffset) {
	if pos < 0 {
		pos = 0
	}
	if l := c.buf.Len(); pos > l {
		pos = l
	}
	c.primary = pos
}

// Cursors exposes the secondary cursor set.
func (c *Coordinator) Cursors() *cursor.CursorSet {
	return c.cursors
}

// Block exposes the rectangular selection.
func (c *Coordinator) Block() *block.Selection {
	return c.rect
}

// Dispatch applies one input event and reports what changed.
func (c *Coordinator) Dispatch(ev Event) Result {
	switch ev.Kind {
	case EventEscape:
		return c.escape()
	case EventAddCursorAbove, EventAddCursorBelow:
		return c.addCursors(ev.Kind)
	case EventMouseDown:
		return c.mouseDown(ev)
	case EventMouseDrag:
		return c.mouseDrag(ev)
	case EventMouseUp:
		return NoOp().WithCaret(c.primary)
	}

	// A character typed into a block selection first converts it into
	// one cursor per line; any other edit discards the selection.
	if c.rect.Active() {
		if ev.Kind == EventChar {
			if primary, ok := c.rect.CreateCursors(c.cursors); ok {
				c.primary = primary
			}
		} else {
			c.rect.Clear()
		}
	}

	if c.cursors.Active() {
		return c.batched(ev)
	}

	switch ev.Kind {
	case EventTab:
		return c.tab()
	case EventEnter:
		return c.enter()
	case EventBackspace:
		return c.backspace()
	case EventDelete:
		return c.deleteForward()
	case EventChar:
		return c.char(ev)
	}
	return NoOp().WithCaret(c.primary)
}

// Spans returns the highlight spans for the current editor state:
// block selection slices, secondary carets, the bracket and quote
// pairs adjacent to the primary caret, and the caret's line.
func (c *Coordinator) Spans() []highlight.Span {
	spans := c.rect.HighlightSpans()

	for _, pos := range c.cursors.Secondaries() {
		end := pos
		if _, size := c.buf.RuneAt(pos); size > 0 {
			end = pos + buffer.ByteOffset(size)
		}
		spans = append(spans, highlight.Span{
			Start:    pos,
			End:      end,
			Category: highlight.CategorySecondaryCursor,
		})
	}

	if pair, ok := c.brackets.FindPair(c.primary); ok {
		spans = append(spans,
			highlight.Span{Start: pair.Open, End: pair.Open + 1, Category: highlight.CategoryBracketMatch},
			highlight.Span{Start: pair.Close, End: pair.Close + 1, Category: highlight.CategoryBracketMatch},
		)
	}
	if pair, ok := c.quotes.FindPair(c.primary); ok {
		spans = append(spans,
			highlight.Span{Start: pair.Open, End: pair.Open + 1, Category: highlight.CategoryQuoteMatch},
			highlight.Span{Start: pair.Close, End: pair.Close + 1, Category: highlight.CategoryQuoteMatch},
		)
	}

	line := c.buf.OffsetToPoint(c.primary).Line
	spans = append(spans, highlight.Span{
		Start:    c.buf.LineStartOffset(line),
		End:      c.buf.LineEndOffset(line),
		Category: highlight.CategoryCurrentLine,
	})

	highlight.SortSpans(spans)
	return spans
}

func (c *Coordinator) escape() Result {
	acted := c.cursors.Active() || c.rect.Active()
	c.cursors.Clear()
	c.rect.Clear()
	if !acted {
		return NoOp().WithCaret(c.primary)
	}
	return Success().WithCaret(c.primary).WithRedraw()
}

func (c *Coordinator) addCursors(kind EventKind) Result {
	var added int
	if kind == EventAddCursorAbove {
		added = c.cursors.AddAbove(c.buf, c.primary)
	} else {
		added = c.cursors.AddBelow(c.buf, c.primary)
	}
	if added == 0 {
		return NoOp().WithCaret(c.primary)
	}
	return Success().WithCaret(c.primary).WithRedraw()
}

func (c *Coordinator) mouseDown(ev Event) Result {
	switch {
	case ev.Alt && ev.Shift:
		c.cursors.Clear()
		c.rect.Start(ev.Pos)
		return Success().WithCaret(c.primary).WithRedraw()

	case ev.Alt:
		if c.cursors.Add(c.primary, c.buf.PointToOffset(ev.Pos)) {
			return Success().WithCaret(c.primary).WithRedraw()
		}
		return NoOp().WithCaret(c.primary)

	default:
		c.cursors.Clear()
		c.rect.Clear()
		c.primary = c.buf.PointToOffset(ev.Pos)
		return Success().WithCaret(c.primary).WithRedraw()
	}
}

func (c *Coordinator) mouseDrag(ev Event) Result {
	if c.rect.Active() {
		c.rect.Update(ev.Pos)
		return Success().WithCaret(c.primary).WithRedraw()
	}

	// A plain drag moves the caret with the pointer. The shell reads
	// the caret back to grow its linear selection.
	pos := c.buf.PointToOffset(ev.Pos)
	if pos == c.primary {
		return NoOp().WithCaret(c.primary)
	}
	c.primary = pos
	return Success().WithCaret(c.primary).WithRedraw()
}

// batched applies one edit operation at every cursor, rightmost
// first.
func (c *Coordinator) batched(ev Event) Result {
	var op cursor.Op
	switch ev.Kind {
	case EventChar:
		op = cursor.Insert(string(ev.Ch))
	case EventEnter:
		op = cursor.Insert("\n")
	case EventTab:
		op = cursor.Insert(strings.Repeat(" ", c.cfg.TabWidth))
	case EventBackspace:
		op = cursor.DeleteBackward()
	case EventDelete:
		op = cursor.DeleteForward()
	default:
		return NoOp().WithCaret(c.primary)
	}

	res, ok := c.cursors.ApplyBatchedEdit(c.buf, c.primary, op)
	if !ok {
		return NoOp().WithCaret(c.primary)
	}
	c.primary = res.Primary
	if len(res.Changes) == 0 {
		return NoOp().WithCaret(c.primary)
	}
	return Success().WithCaret(c.primary).WithEdits(NewEditGroup(res.Changes)).WithRedraw()
}

func (c *Coordinator) tab() Result {
	pos := c.primary
	change, err := c.insertAt(pos, strings.Repeat(" ", c.cfg.TabWidth))
	if err != nil {
		return Error(err).WithCaret(pos)
	}
	c.primary = change.NewRange.End
	return Success().
		WithCaret(c.primary).
		WithEdits(NewEditGroup([]buffer.Change{change})).
		WithRedrawLines(c.buf.OffsetToPoint(pos).Line)
}

func (c *Coordinator) enter() Result {
	pos := c.primary

	// Enter between a bracket pair opens it across three lines with
	// the caret on the indented middle line.
	if c.cfg.AutoIndent && c.betweenBracketPair(pos) {
		line := c.buf.OffsetToPoint(pos).Line
		content, closing := c.indents.PairIndents(line)
		change, err := c.insertAt(pos, "\n"+content+"\n"+closing)
		if err != nil {
			return Error(err).WithCaret(pos)
		}
		c.primary = pos + 1 + buffer.ByteOffset(len(content))
		return Success().
			WithCaret(c.primary).
			WithEdits(NewEditGroup([]buffer.Change{change})).
			WithRedraw()
	}

	ind := c.indents.CalculateIndent(pos)
	if c.cfg.AutoIndent && c.rule != nil {
		line := c.buf.OffsetToPoint(pos).Line
		width, ok := c.rule.Eval(c.buf.LineText(line), indentWidth(ind, c.cfg.TabWidth), c.cfg.TabWidth)
		if ok && width >= 0 {
			ind = strings.Repeat(" ", width)
		}
	}

	change, err := c.insertAt(pos, "\n"+ind)
	if err != nil {
		return Error(err).WithCaret(pos)
	}
	c.primary = change.NewRange.End
	return Success().
		WithCaret(c.primary).
		WithEdits(NewEditGroup([]buffer.Change{change})).
		WithRedraw()
}

func (c *Coordinator) backspace() Result {
	pos := c.primary

	if c.brackets.ShouldDeletePair(pos) || c.quotes.ShouldDeletePair(pos) {
		change, err := c.deleteRange(pos-1, pos+1)
		if err != nil {
			return Error(err).WithCaret(pos)
		}
		c.primary = pos - 1
		return Success().
			WithCaret(c.primary).
			WithEdits(NewEditGroup([]buffer.Change{change})).
			WithRedrawLines(c.buf.OffsetToPoint(c.primary).Line)
	}

	if span, ok := c.indents.SmartDedentSpan(pos); ok {
		change, err := c.deleteRange(span.Start, span.End)
		if err != nil {
			return Error(err).WithCaret(pos)
		}
		c.primary = span.Start
		return Success().
			WithCaret(c.primary).
			WithEdits(NewEditGroup([]buffer.Change{change})).
			WithRedrawLines(c.buf.OffsetToPoint(c.primary).Line)
	}

	_, size := c.buf.RuneBefore(pos)
	if size == 0 {
		return NoOp().WithCaret(pos)
	}
	change, err := c.deleteRange(pos-buffer.ByteOffset(size), pos)
	if err != nil {
		return Error(err).WithCaret(pos)
	}
	c.primary = pos - buffer.ByteOffset(size)

	result := Success().
		WithCaret(c.primary).
		WithEdits(NewEditGroup([]buffer.Change{change}))
	if strings.Contains(change.OldText, "\n") {
		return result.WithRedraw()
	}
	return result.WithRedrawLines(c.buf.OffsetToPoint(c.primary).Line)
}

// deleteForward removes the rune after the caret. Unlike backspace it
// carries no pair or dedent smarts.
func (c *Coordinator) deleteForward() Result {
	pos := c.primary

	_, size := c.buf.RuneAt(pos)
	if size == 0 {
		return NoOp().WithCaret(pos)
	}
	change, err := c.deleteRange(pos, pos+buffer.ByteOffset(size))
	if err != nil {
		return Error(err).WithCaret(pos)
	}

	result := Success().
		WithCaret(pos).
		WithEdits(NewEditGroup([]buffer.Change{change}))
	if strings.Contains(change.OldText, "\n") {
		return result.WithRedraw()
	}
	return result.WithRedrawLines(c.buf.OffsetToPoint(pos).Line)
}

func (c *Coordinator) char(ev Event) Result {
	pos := c.primary
	ch := ev.Ch

	if ev.Selection != nil && !ev.Selection.IsEmpty() && match.IsQuote(ch) {
		sel := *ev.Selection
		text := c.buf.TextRange(sel.Start, sel.End)
		if wrapped, ok := c.quotes.WrapSelection(text, ch); ok {
			change, err := c.replaceRange(sel.Start, sel.End, wrapped)
			if err != nil {
				return Error(err).WithCaret(pos)
			}
			c.primary = change.NewRange.End
			return Success().
				WithCaret(c.primary).
				WithEdits(NewEditGroup([]buffer.Change{change})).
				WithRedraw()
		}
	}

	if c.brackets.ShouldSkipClosing(pos, ch) || c.quotes.ShouldSkipClosing(pos, ch) {
		c.primary = pos + buffer.ByteOffset(utf8.RuneLen(ch))
		return Success().WithCaret(c.primary)
	}

	if c.brackets.ShouldAutoClose(pos, ch) {
		closing, _ := match.ClosingFor(ch)
		change, err := c.insertAt(pos, string(ch)+string(closing))
		if err != nil {
			return Error(err).WithCaret(pos)
		}
		c.primary = pos + buffer.ByteOffset(utf8.RuneLen(ch))
		return Success().
			WithCaret(c.primary).
			WithEdits(NewEditGroup([]buffer.Change{change})).
			WithRedrawLines(c.buf.OffsetToPoint(pos).Line)
	}

	if c.quotes.ShouldAutoClose(pos, ch) {
		change, err := c.insertAt(pos, string(ch)+string(ch))
		if err != nil {
			return Error(err).WithCaret(pos)
		}
		c.primary = pos + buffer.ByteOffset(utf8.RuneLen(ch))
		return Success().
			WithCaret(c.primary).
			WithEdits(NewEditGroup([]buffer.Change{change})).
			WithRedrawLines(c.buf.OffsetToPoint(pos).Line)
	}

	if c.indents.ShouldDecreaseIndent(pos, ch) {
		line := c.buf.OffsetToPoint(pos).Line
		lineStart := c.buf.LineStartOffset(line)
		current := c.indents.LineIndent(line)
		decreased := c.indents.DecreasedIndent(line)

		change, err := c.replaceRange(lineStart, lineStart+buffer.ByteOffset(len(current)), decreased+string(ch))
		if err != nil {
			return Error(err).WithCaret(pos)
		}
		c.primary = change.NewRange.End
		return Success().
			WithCaret(c.primary).
			WithEdits(NewEditGroup([]buffer.Change{change})).
			WithRedrawLines(line)
	}

	change, err := c.insertAt(pos, string(ch))
	if err != nil {
		return Error(err).WithCaret(pos)
	}
	c.primary = change.NewRange.End
	return Success().
		WithCaret(c.primary).
		WithEdits(NewEditGroup([]buffer.Change{change})).
		WithRedrawLines(c.buf.OffsetToPoint(pos).Line)
}

// betweenBracketPair reports whether the caret sits directly between
// an opening bracket and its counterpart.
func (c *Coordinator) betweenBracketPair(pos buffer.ByteOffset) bool {
	prev, size := c.buf.RuneBefore(pos)
	if size == 0 {
		return false
	}
	closing, ok := match.ClosingFor(prev)
	if !ok {
		return false
	}
	next, nsize := c.buf.RuneAt(pos)
	return nsize > 0 && next == closing
}

// insertAt applies a single insert and records it as a change.
func (c *Coordinator) insertAt(pos buffer.ByteOffset, text string) (buffer.Change, error) {
	delta, err := c.buf.Insert(pos, text)
	if err != nil {
		return buffer.Change{}, err
	}
	return buffer.Change{
		Type:     buffer.ChangeInsert,
		Range:    buffer.NewRange(pos, pos),
		NewRange: buffer.NewRange(pos, pos+delta),
		NewText:  c.buf.TextRange(pos, pos+delta),
	}, nil
}

// deleteRange applies a single delete and records it as a change.
func (c *Coordinator) deleteRange(start, end buffer.ByteOffset) (buffer.Change, error) {
	old := c.buf.TextRange(start, end)
	if _, err := c.buf.Delete(start, end); err != nil {
		return buffer.Change{}, err
	}
	return buffer.Change{
		Type:     buffer.ChangeDelete,
		Range:    buffer.NewRange(start, end),
		NewRange: buffer.NewRange(start, start),
		OldText:  old,
	}, nil
}

// replaceRange swaps a range for new text, recorded as one change.
func (c *Coordinator) replaceRange(start, end buffer.ByteOffset, text string) (buffer.Change, error) {
	old := c.buf.TextRange(start, end)
	if _, err := c.buf.Delete(start, end); err != nil {
		return buffer.Change{}, err
	}
	delta, err := c.buf.Insert(start, text)
	if err != nil {
		return buffer.Change{}, err
	}
	return buffer.Change{
		Type:     buffer.ChangeReplace,
		Range:    buffer.NewRange(start, end),
		NewRange: buffer.NewRange(start, start+delta),
		OldText:  old,
		NewText:  c.buf.TextRange(start, start+delta),
	}, nil
}

// indentWidth measures an indent string in columns.
func indentWidth(s string, tabWidth int) int {
	width := 0
	for _, r := range s {
		if r == '\t' {
			width += tabWidth
		} else {
			width++
		}
	}
	return width
}
