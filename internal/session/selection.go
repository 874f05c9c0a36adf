package session

// Mode selects single or multi item confirmation.
type Mode int

// Selection modes.
const (
	ModeSingle Mode = iota
	ModeMulti
)

// State is the selection state machine: query, cursor, multi-select
// marks and the terminal flag. It is driven only by the UI loop and
// needs no locking.
type State struct {
	mode     Mode
	query    []rune
	cursor   int
	visible  int
	selected map[string]bool
	done     bool
	outcome  Outcome
}

// NewState creates a state machine with an optional initial query.
func NewState(mode Mode, initialQuery string) *State {
	return &State{
		mode:     mode,
		query:    []rune(initialQuery),
		selected: make(map[string]bool),
	}
}

// Mode returns the selection mode.
func (st *State) Mode() Mode { return st.mode }

// Multi reports whether multi-select is enabled.
func (st *State) Multi() bool { return st.mode == ModeMulti }

// Query returns the current query string.
func (st *State) Query() string { return string(st.query) }

// Cursor returns the cursor position within the visible list.
func (st *State) Cursor() int { return st.cursor }

// Done reports whether a terminal operation happened.
func (st *State) Done() bool { return st.done }

// Outcome returns the terminal outcome. Valid only after Done.
func (st *State) Outcome() Outcome { return st.outcome }

// SetVisible records the visible match count and clamps the cursor
// into [0, n-1], or 0 for an empty list.
func (st *State) SetVisible(n int) {
	if n < 0 {
		n = 0
	}
	st.visible = n
	st.clamp()
}

func (st *State) clamp() {
	if st.visible == 0 {
		st.cursor = 0
		return
	}
	if st.cursor >= st.visible {
		st.cursor = st.visible - 1
	}
	if st.cursor < 0 {
		st.cursor = 0
	}
}

// MoveCursor moves by delta, wrapping around the visible list.
func (st *State) MoveCursor(delta int) {
	if st.done || st.visible == 0 {
		return
	}
	st.cursor = ((st.cursor+delta)%st.visible + st.visible) % st.visible
}

// MoveCursorClamped moves by delta, stopping at the list edges.
func (st *State) MoveCursorClamped(delta int) {
	if st.done || st.visible == 0 {
		return
	}
	st.cursor += delta
	st.clamp()
}

// ToggleSelection flips the mark on the given item text. Returns false
// outside multi mode or after a terminal operation.
func (st *State) ToggleSelection(text string) bool {
	if st.done || st.mode != ModeMulti || text == "" {
		return false
	}
	if st.selected[text] {
		delete(st.selected, text)
	} else {
		st.selected[text] = true
	}
	return true
}

// IsSelected reports whether the item text is marked.
func (st *State) IsSelected(text string) bool {
	return st.selected[text]
}

// SelectionCount returns the number of marked items.
func (st *State) SelectionCount() int {
	return len(st.selected)
}

// TypeRune appends r to the query and resets the cursor to the top.
// Returns true when a re-filter is needed.
func (st *State) TypeRune(r rune) bool {
	if st.done {
		return false
	}
	st.query = append(st.query, r)
	st.cursor = 0
	return true
}

// Backspace removes the last query rune. Returns true when the query
// changed.
func (st *State) Backspace() bool {
	if st.done || len(st.query) == 0 {
		return false
	}
	st.query = st.query[:len(st.query)-1]
	st.cursor = 0
	return true
}

// ClearQuery empties the query, the first stage of Escape. Returns
// true when the query was non-empty.
func (st *State) ClearQuery() bool {
	if st.done || len(st.query) == 0 {
		return false
	}
	st.query = st.query[:0]
	st.cursor = 0
	return true
}

// Confirm resolves the session. In multi mode, ordered is the marked
// items in insertion order and is the result even when empty;
// confirming nothing is a valid outcome. In single mode the item under
// the cursor is selected, or nothing for an empty list. Confirm is
// always terminal.
func (st *State) Confirm(current string, ordered []string) bool {
	if st.done {
		return false
	}
	switch {
	case st.mode == ModeMulti:
		st.outcome = Outcome{Selected: ordered}
	case current != "":
		st.outcome = Outcome{Selected: []string{current}}
	default:
		st.outcome = Outcome{}
	}
	st.done = true
	return true
}

// Cancel resolves the session as cancelled.
func (st *State) Cancel() bool {
	if st.done {
		return false
	}
	st.outcome = Outcome{Cancelled: true}
	st.done = true
	return true
}
