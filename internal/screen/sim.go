package screen

import (
	"strings"
	"time"
)

// SimBackend is an in-memory backend for tests: cells land in a grid,
// events come from a posted queue.
type SimBackend struct {
	width, height int
	cells         [][]Cell
	cursorX       int
	cursorY       int
	cursorVisible bool
	shown         int
	events        chan Event
}

// NewSimBackend creates a simulated backend with the given dimensions.
func NewSimBackend(width, height int) *SimBackend {
	return &SimBackend{
		width:  width,
		height: height,
		events: make(chan Event, 100),
	}
}

func (b *SimBackend) Init() error {
	b.allocate()
	return nil
}

func (b *SimBackend) allocate() {
	b.cells = make([][]Cell, b.height)
	for i := range b.cells {
		b.cells[i] = make([]Cell, b.width)
		for j := range b.cells[i] {
			b.cells[i][j] = EmptyCell()
		}
	}
}

func (b *SimBackend) Fini() {}

func (b *SimBackend) Size() (int, int) {
	return b.width, b.height
}

func (b *SimBackend) SetCell(x, y int, cell Cell) {
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		b.cells[y][x] = cell
	}
}

func (b *SimBackend) Show() {
	b.shown++
}

func (b *SimBackend) Clear() {
	b.allocate()
}

func (b *SimBackend) ShowCursor(x, y int) {
	b.cursorX = x
	b.cursorY = y
	b.cursorVisible = true
}

func (b *SimBackend) HideCursor() {
	b.cursorVisible = false
}

func (b *SimBackend) PollEvent(timeout time.Duration) (Event, bool) {
	select {
	case ev := <-b.events:
		return ev, true
	case <-time.After(timeout):
		return Event{}, false
	}
}

func (b *SimBackend) PostEvent(event Event) {
	select {
	case b.events <- event:
	default:
		// Queue full; drop. Tests never post this many.
	}
}

// PostKey posts a named key event.
func (b *SimBackend) PostKey(key Key) {
	b.PostEvent(Event{Type: EventKey, Key: key})
}

// PostRune posts a character key event.
func (b *SimBackend) PostRune(r rune) {
	b.PostEvent(Event{Type: EventKey, Key: KeyRune, Rune: r})
}

// Resize changes the simulated terminal size and posts a resize event.
func (b *SimBackend) Resize(width, height int) {
	b.width = width
	b.height = height
	b.allocate()
	b.PostEvent(Event{Type: EventResize, Width: width, Height: height})
}

// CursorPosition returns the current cursor state for assertions.
func (b *SimBackend) CursorPosition() (x, y int, visible bool) {
	return b.cursorX, b.cursorY, b.cursorVisible
}

// ShowCount returns how many times Show was called.
func (b *SimBackend) ShowCount() int {
	return b.shown
}

// Row returns the text content of a row, trailing spaces trimmed.
func (b *SimBackend) Row(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	var sb strings.Builder
	for x := 0; x < b.width; x++ {
		c := b.cells[y][x]
		if c.IsContinuation() {
			continue
		}
		sb.WriteRune(c.Rune)
	}
	return strings.TrimRight(sb.String(), " ")
}

// CellAt returns the cell at the position for assertions.
func (b *SimBackend) CellAt(x, y int) Cell {
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		return b.cells[y][x]
	}
	return EmptyCell()
}
