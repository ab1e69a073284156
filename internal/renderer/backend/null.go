package backend

import "strings"

type nullCell struct {
	r     rune
	style Style
}

// Null is an in-memory backend for tests. PostEvent feeds the queue
// PollEvent drains.
type Null struct {
	width, height int
	cells         [][]nullCell
	cursorX       int
	cursorY       int
	cursorVisible bool
	events        chan Event
}

var _ Backend = (*Null)(nil)

// NewNull creates a null backend with the given dimensions.
func NewNull(width, height int) *Null {
	n := &Null{
		width:  width,
		height: height,
		events: make(chan Event, 64),
	}
	n.allocate()
	return n
}

func (n *Null) allocate() {
	n.cells = make([][]nullCell, n.height)
	for y := range n.cells {
		n.cells[y] = make([]nullCell, n.width)
		for x := range n.cells[y] {
			n.cells[y][x] = nullCell{r: ' ', style: DefaultStyle()}
		}
	}
}

func (n *Null) Init() error { return nil }

func (n *Null) Shutdown() {}

func (n *Null) Size() (int, int) {
	return n.width, n.height
}

func (n *Null) SetCell(x, y int, r rune, style Style) {
	if x < 0 || x >= n.width || y < 0 || y >= n.height {
		return
	}
	n.cells[y][x] = nullCell{r: r, style: style}
}

func (n *Null) Clear() {
	n.allocate()
}

func (n *Null) Show() {}

func (n *Null) ShowCursor(x, y int) {
	n.cursorX = x
	n.cursorY = y
	n.cursorVisible = true
}

func (n *Null) HideCursor() {
	n.cursorVisible = false
}

func (n *Null) PollEvent() Event {
	return <-n.events
}

func (n *Null) Wakeup() {
	n.post(Event{Type: EventWakeup})
}

func (n *Null) Beep() {}

// PostEvent queues an event for PollEvent. The event is dropped when
// the queue is full.
func (n *Null) PostEvent(ev Event) {
	n.post(ev)
}

func (n *Null) post(ev Event) {
	select {
	case n.events <- ev:
	default:
	}
}

// Resize changes the dimensions and queues an EventResize.
func (n *Null) Resize(width, height int) {
	n.width = width
	n.height = height
	n.allocate()
	n.post(Event{Type: EventResize, Width: width, Height: height})
}

// CellAt returns the rune and style at a position. Out-of-range
// positions read as blank cells.
func (n *Null) CellAt(x, y int) (rune, Style) {
	if x < 0 || x >= n.width || y < 0 || y >= n.height {
		return ' ', DefaultStyle()
	}
	c := n.cells[y][x]
	return c.r, c.style
}

// Line returns row y as a right-trimmed string.
func (n *Null) Line(y int) string {
	if y < 0 || y >= n.height {
		return ""
	}
	runes := make([]rune, n.width)
	for x, c := range n.cells[y] {
		runes[x] = c.r
	}
	return strings.TrimRight(string(runes), " ")
}

// CursorPosition reports the hardware cursor state.
func (n *Null) CursorPosition() (x, y int, visible bool) {
	return n.cursorX, n.cursorY, n.cursorVisible
}
