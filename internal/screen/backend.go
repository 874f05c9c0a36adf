package screen

import (
	"errors"
	"fmt"
	"time"
)

// ErrBackendClosed indicates use of a backend after Fini.
var ErrBackendClosed = errors.New("backend closed")

// RenderError wraps a failure at the terminal boundary.
type RenderError struct {
	Op  string // Operation name (e.g., "init", "poll")
	Err error  // Underlying error
}

// NewRenderError creates a new RenderError.
func NewRenderError(op string, err error) *RenderError {
	return &RenderError{Op: op, Err: err}
}

func (e *RenderError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("render: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("render: %s", e.Op)
}

func (e *RenderError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// EventType identifies the type of terminal event.
type EventType int

// Event types.
const (
	EventNone EventType = iota
	EventKey
	EventResize
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune
	Mod  ModMask

	// Resize event fields
	Width, Height int
}

// Key represents a keyboard key.
type Key int

// Key constants for special keys.
const (
	KeyNone Key = iota
	KeyRune     // Regular character (use Rune field)
	KeyEscape
	KeyEnter
	KeyTab
	KeyBacktab
	KeyBackspace
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlC
	KeyCtrlQ
	KeyCtrlU
)

// ModMask represents modifier key state.
type ModMask int

// Modifier flags.
const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
)

// Has returns true if the mask contains the given modifier.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// Backend is the terminal boundary. Implementations draw cells and
// deliver input events; the render loop owns all policy above it.
type Backend interface {
	// Init initializes the backend for use.
	// Must be called before any other methods.
	Init() error

	// Fini releases backend resources and restores terminal state.
	Fini()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// SetCell sets a single cell at the given position.
	// Positions outside the terminal are silently ignored.
	SetCell(x, y int, cell Cell)

	// Show flushes pending cell updates to the display.
	Show()

	// Clear clears the entire screen with the default style.
	Clear()

	// ShowCursor positions and displays the cursor.
	ShowCursor(x, y int)

	// HideCursor hides the cursor.
	HideCursor()

	// PollEvent waits up to timeout for the next event. The second
	// return is false when the timeout elapsed with no event.
	PollEvent(timeout time.Duration) (Event, bool)

	// PostEvent posts a synthetic event to the event queue.
	PostEvent(event Event)
}
